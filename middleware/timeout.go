package middleware

import (
	"context"
	"time"
)

// Timeout returns middleware that bounds every operation except
// WaitForResult, which carries its own timeout, with context.WithTimeout.
// A non-positive d disables it.
func Timeout(d time.Duration) Middleware {
	return func(ctx context.Context, op *Op, next Handler) error {
		if d <= 0 || op.Kind == KindWaitForResult {
			return next(ctx)
		}
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return next(ctx)
	}
}
