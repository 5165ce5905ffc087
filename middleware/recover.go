package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Recover returns middleware that recovers from panics further down the
// chain, such as in a custom store. Panics are converted to errors and
// logged with a stack trace.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, op *Op, next Handler) (retErr error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("client operation panicked",
					slog.String("op", string(op.Kind)),
					slog.String("job_id", op.JobID),
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
				)
				retErr = fmt.Errorf("panic in %s %s: %v", op.Kind, op.JobID, r)
			}
		}()
		return next(ctx)
	}
}
