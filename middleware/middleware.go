// Package middleware provides composable middleware for client operations.
// Middleware wraps each store call synchronously and can observe or modify
// it (log, trace, throttle, bound its duration, etc.).
package middleware

import (
	"context"

	"github.com/muaviaUsmani/Bananas/job"
)

// Kind names a client operation.
type Kind string

// Client operations passed through the chain.
const (
	KindSubmit          Kind = "submit"
	KindSubmitScheduled Kind = "submit_scheduled"
	KindGetJob          Kind = "get_job"
	KindGetResult       Kind = "get_result"
	KindWaitForResult   Kind = "wait_for_result"
	KindDeleteResult    Kind = "delete_result"
	KindStats           Kind = "stats"
)

// IsSubmit reports whether k writes a new job.
func (k Kind) IsSubmit() bool {
	return k == KindSubmit || k == KindSubmitScheduled
}

// Op describes the operation being executed. JobName and Priority are set
// only for submissions. JobID is empty for KindStats.
type Op struct {
	Kind     Kind
	JobID    string
	JobName  string
	Priority job.Priority
}

// Handler is the terminal function that performs the store call.
type Handler func(ctx context.Context) error

// Middleware wraps a Handler with cross-cutting logic.
// It receives the current context, the operation, and the next handler to
// call. Middleware MUST call next to continue the chain (unless
// short-circuiting on error).
type Middleware func(ctx context.Context, op *Op, next Handler) error

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, recover, tracing) executes as:
//
//	logging → recover → tracing → handler
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, op *Op, next Handler) error {
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) error {
				return mw(ctx, op, prev)
			}
		}
		return h(ctx)
	}
}
