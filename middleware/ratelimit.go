package middleware

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimit returns middleware that throttles job submissions through
// limiter. Reads are never throttled. A submission blocks until a token is
// available or ctx ends, in which case the job is not written.
func RateLimit(limiter *rate.Limiter) Middleware {
	return func(ctx context.Context, op *Op, next Handler) error {
		if !op.Kind.IsSubmit() {
			return next(ctx)
		}
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit %s: %w", op.JobID, err)
		}
		return next(ctx)
	}
}
