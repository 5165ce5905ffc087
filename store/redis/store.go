package redis

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/muaviaUsmani/Bananas"
	"github.com/muaviaUsmani/Bananas/job"
	"github.com/muaviaUsmani/Bananas/result"
)

// Compile-time interface checks.
var (
	_ job.Store    = (*QueueStore)(nil)
	_ result.Store = (*ResultStore)(nil)
)

// Defaults applied when no option overrides them.
const (
	DefaultSuccessTTL   = time.Hour
	DefaultFailureTTL   = 24 * time.Hour
	DefaultWaitTimeout  = 5 * time.Minute
	DefaultPollInterval = 100 * time.Millisecond
	DefaultGracePeriod  = 500 * time.Millisecond
)

type options struct {
	logger       *slog.Logger
	keys         Keys
	successTTL   time.Duration
	failureTTL   time.Duration
	waitTimeout  time.Duration
	pollInterval time.Duration
	gracePeriod  time.Duration
}

func defaultOptions() options {
	return options{
		logger:       slog.Default(),
		keys:         NewKeys(DefaultPrefix),
		successTTL:   DefaultSuccessTTL,
		failureTTL:   DefaultFailureTTL,
		waitTimeout:  DefaultWaitTimeout,
		pollInterval: DefaultPollInterval,
		gracePeriod:  DefaultGracePeriod,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures a QueueStore or ResultStore. Options that do not apply
// to a store are ignored by it.
type Option func(*options)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithPrefix sets the key namespace prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.keys = NewKeys(prefix) }
}

// WithSuccessTTL sets the expiry of completed results.
func WithSuccessTTL(d time.Duration) Option {
	return func(o *options) { o.successTTL = d }
}

// WithFailureTTL sets the expiry of failed results.
func WithFailureTTL(d time.Duration) Option {
	return func(o *options) { o.failureTTL = d }
}

// WithWaitTimeout sets the timeout used by WaitForResult when the caller
// passes a non-positive one.
func WithWaitTimeout(d time.Duration) Option {
	return func(o *options) { o.waitTimeout = d }
}

// WithPollInterval bounds each blocking receive of the wait loop.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) { o.pollInterval = d }
}

// WithGracePeriod sets how long the wait loop relies on notifications alone
// before it also polls on every iteration.
func WithGracePeriod(d time.Duration) Option {
	return func(o *options) { o.gracePeriod = d }
}

// WithConfig applies the prefix, TTLs and wait settings of cfg.
func WithConfig(cfg bananas.Config) Option {
	return func(o *options) {
		o.keys = NewKeys(cfg.KeyPrefix)
		o.successTTL = cfg.SuccessTTL
		o.failureTTL = cfg.FailureTTL
		o.waitTimeout = cfg.WaitTimeout
		o.pollInterval = cfg.PollInterval
		o.gracePeriod = cfg.GracePeriod
	}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("bananas/redis: %s: %w: %w", op, bananas.ErrStore, err)
}
