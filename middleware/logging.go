package middleware

import (
	"context"
	"log/slog"
	"time"
)

// Logging returns middleware that logs the outcome of every operation.
// Submissions are logged at Info, reads at Debug, failures at Error.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, op *Op, next Handler) error {
		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("client operation failed",
				slog.String("op", string(op.Kind)),
				slog.String("job_id", op.JobID),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
			return err
		}

		level := slog.LevelDebug
		if op.Kind.IsSubmit() {
			level = slog.LevelInfo
		}
		attrs := []slog.Attr{
			slog.String("op", string(op.Kind)),
			slog.String("job_id", op.JobID),
			slog.Duration("elapsed", elapsed),
		}
		if op.JobName != "" {
			attrs = append(attrs,
				slog.String("job_name", op.JobName),
				slog.String("priority", op.Priority.String()),
			)
		}
		logger.LogAttrs(ctx, level, "client operation completed", attrs...)
		return nil
	}
}
