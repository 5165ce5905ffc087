package job

import (
	"time"

	"github.com/muaviaUsmani/Bananas/id"
)

// Options configures a job at construction time.
type Options struct {
	// ID fixes the job id. Empty means IDGenerator is used.
	ID string

	// IDGenerator produces the id when ID is empty.
	IDGenerator id.Generator

	// Description is free text shown by tooling.
	Description string

	// RoutingKey steers the job to a worker pool. Empty means any worker.
	RoutingKey string

	// MaxRetries is the retry budget workers apply on failure.
	MaxRetries int

	// ScheduledFor defers execution until the given time. Zero means the
	// job is immediately eligible.
	ScheduledFor time.Time
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IDGenerator: id.UUID,
		MaxRetries:  DefaultMaxRetries,
	}
}

// Option is a functional option for configuring a job.
type Option func(*Options)

// WithID sets an explicit job id.
func WithID(jobID string) Option {
	return func(o *Options) {
		o.ID = jobID
	}
}

// WithIDGenerator sets the id generator used when no explicit id is given.
func WithIDGenerator(gen id.Generator) Option {
	return func(o *Options) {
		if gen != nil {
			o.IDGenerator = gen
		}
	}
}

// WithDescription sets a human-readable description.
func WithDescription(desc string) Option {
	return func(o *Options) {
		o.Description = desc
	}
}

// WithRoutingKey steers the job to workers subscribed to key.
func WithRoutingKey(key string) Option {
	return func(o *Options) {
		o.RoutingKey = key
	}
}

// WithMaxRetries sets the maximum number of retry attempts.
func WithMaxRetries(n int) Option {
	return func(o *Options) {
		o.MaxRetries = n
	}
}

// WithScheduledFor defers the job until t. The job is created with
// StatusScheduled.
func WithScheduledFor(t time.Time) Option {
	return func(o *Options) {
		o.ScheduledFor = t
	}
}
