// Package middleware provides composable middleware for client operations.
//
// A [Middleware] wraps one store call made by the client: a submission, a
// job or result read, or a wait. Middleware are composed into a chain using
// [Chain] and applied right-to-left: the first middleware in the slice is
// the outermost wrapper.
//
//	// logging → tracing → handler
//	chain := middleware.Chain(middleware.Logging(logger), middleware.Tracing())
//
// # Built-in Middleware
//
//   - [Logging] logs the operation, job id and duration
//   - [Recover] converts panics into errors
//   - [Timeout] bounds every non-wait operation
//   - [Tracing] wraps each operation in an OpenTelemetry span
//   - [Metrics] records per-operation duration and outcome counters
//   - [RateLimit] throttles submissions with a token bucket
//
// # Writing Custom Middleware
//
//	func MyMiddleware() middleware.Middleware {
//	    return func(ctx context.Context, op *middleware.Op, next middleware.Handler) error {
//	        // pre-processing
//	        err := next(ctx)
//	        // post-processing
//	        return err
//	    }
//	}
package middleware
