package result

import (
	"context"
	"time"
)

// Store defines the persistence contract for job results.
type Store interface {
	// SetResult writes r and its expiry as one atomic batch, then publishes
	// r's status on the job's notification channel.
	SetResult(ctx context.Context, r *Result) error

	// GetResult reads a result. It returns nil, nil when none is stored,
	// which is the normal state while a job is still running or after its
	// result expired.
	GetResult(ctx context.Context, jobID string) (*Result, error)

	// WaitForResult blocks until a result for jobID is readable or timeout
	// elapses. A timeout returns nil, nil; errors are reserved for store
	// failures and context cancellation. A non-positive timeout selects the
	// store's default.
	WaitForResult(ctx context.Context, jobID string, timeout time.Duration) (*Result, error)

	// DeleteResult removes a stored result. Deleting an absent result is not
	// an error.
	DeleteResult(ctx context.Context, jobID string) error

	// Ping checks store connectivity.
	Ping(ctx context.Context) error
}
