package client

import (
	"log/slog"
	"time"

	"github.com/muaviaUsmani/Bananas"
	"github.com/muaviaUsmani/Bananas/id"
	"github.com/muaviaUsmani/Bananas/middleware"
	redisstore "github.com/muaviaUsmani/Bananas/store/redis"
)

type options struct {
	logger     *slog.Logger
	middleware []middleware.Middleware
	idGen      id.Generator
	store      []redisstore.Option
}

func buildOptions(opts []Option) options {
	o := options{
		logger: slog.Default(),
		idGen:  id.UUID,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// storeOptions returns the options forwarded to the Redis stores. The
// logger goes first so an explicit store option can still override it.
func (o options) storeOptions() []redisstore.Option {
	return append([]redisstore.Option{redisstore.WithLogger(o.logger)}, o.store...)
}

// Option configures a Client.
type Option func(*options)

// WithLogger sets the structured logger used by the client and its stores.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMiddleware appends middleware to the chain every operation runs
// through. The first middleware given is the outermost.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(o *options) { o.middleware = append(o.middleware, mws...) }
}

// WithIDGenerator sets how job ids are generated. Defaults to id.UUID.
func WithIDGenerator(gen id.Generator) Option {
	return func(o *options) { o.idGen = gen }
}

// WithConfig applies the key prefix, result TTLs and wait settings of cfg.
// The connection target is used only by DialConfig.
func WithConfig(cfg bananas.Config) Option {
	return withStore(redisstore.WithConfig(cfg))
}

// WithPrefix sets the key namespace prefix. Defaults to "bananas".
func WithPrefix(prefix string) Option {
	return withStore(redisstore.WithPrefix(prefix))
}

// WithSuccessTTL sets how long completed results stay readable.
func WithSuccessTTL(d time.Duration) Option {
	return withStore(redisstore.WithSuccessTTL(d))
}

// WithFailureTTL sets how long failed results stay readable.
func WithFailureTTL(d time.Duration) Option {
	return withStore(redisstore.WithFailureTTL(d))
}

// WithWaitTimeout sets the timeout used when WaitForResult is given a
// non-positive one.
func WithWaitTimeout(d time.Duration) Option {
	return withStore(redisstore.WithWaitTimeout(d))
}

// WithPollInterval bounds each blocking receive of the wait loop.
func WithPollInterval(d time.Duration) Option {
	return withStore(redisstore.WithPollInterval(d))
}

// WithGracePeriod sets how long the wait loop relies on notifications alone.
func WithGracePeriod(d time.Duration) Option {
	return withStore(redisstore.WithGracePeriod(d))
}

func withStore(opt redisstore.Option) Option {
	return func(o *options) { o.store = append(o.store, opt) }
}
