package bananas

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces every environment variable read by ConfigFromEnv.
const envPrefix = "bananas"

// Config holds client-side protocol settings shared by producers, workers
// and this client. The key prefix and TTLs must agree across every process
// talking to the same store.
type Config struct {
	// RedisURL is the store connection target, e.g. redis://localhost:6379/0.
	RedisURL string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`

	// KeyPrefix namespaces every key and channel name.
	KeyPrefix string `envconfig:"KEY_PREFIX" default:"bananas"`

	// SuccessTTL is how long a completed job's result stays readable.
	SuccessTTL time.Duration `envconfig:"RESULT_TTL_SUCCESS" default:"1h"`

	// FailureTTL is how long a failed job's result stays readable. Failures
	// are kept longer for diagnosis.
	FailureTTL time.Duration `envconfig:"RESULT_TTL_FAILURE" default:"24h"`

	// WaitTimeout is the default upper bound for WaitForResult.
	WaitTimeout time.Duration `envconfig:"WAIT_TIMEOUT" default:"5m"`

	// PollInterval bounds each blocking receive on the notification channel.
	PollInterval time.Duration `envconfig:"WAIT_POLL_INTERVAL" default:"100ms"`

	// GracePeriod is how long the wait loop trusts notifications alone
	// before it also re-reads the result on every iteration.
	GracePeriod time.Duration `envconfig:"WAIT_GRACE_PERIOD" default:"500ms"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RedisURL:     "redis://localhost:6379/0",
		KeyPrefix:    "bananas",
		SuccessTTL:   1 * time.Hour,
		FailureTTL:   24 * time.Hour,
		WaitTimeout:  5 * time.Minute,
		PollInterval: 100 * time.Millisecond,
		GracePeriod:  500 * time.Millisecond,
	}
}

// ConfigFromEnv loads a Config from BANANAS_* environment variables.
// Unset variables keep their defaults.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("bananas: load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.RedisURL == "" {
		errs = append(errs, errors.New("redis url is empty"))
	}
	if c.KeyPrefix == "" {
		errs = append(errs, errors.New("key prefix is empty"))
	}
	for _, f := range []struct {
		name string
		d    time.Duration
	}{
		{"success ttl", c.SuccessTTL},
		{"failure ttl", c.FailureTTL},
		{"wait timeout", c.WaitTimeout},
		{"poll interval", c.PollInterval},
	} {
		if f.d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", f.name, f.d))
		}
	}
	if c.GracePeriod < 0 {
		errs = append(errs, fmt.Errorf("grace period must not be negative, got %s", c.GracePeriod))
	}
	if len(errs) > 0 {
		return fmt.Errorf("bananas: invalid config: %w", errors.Join(errs...))
	}
	return nil
}
