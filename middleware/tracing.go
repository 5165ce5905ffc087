package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope name for client tracing.
const tracerName = "github.com/muaviaUsmani/Bananas"

// Tracing returns middleware that wraps each operation in an OpenTelemetry
// span. If no TracerProvider is configured globally, the default noop
// tracer is used and this middleware becomes a pass-through.
//
// Spans are named "bananas.client.<op>" and carry bananas.job.id, plus
// bananas.job.name and bananas.job.priority for submissions. On error, the
// span status is set to codes.Error with the error message.
func Tracing() Middleware {
	tracer := otel.Tracer(tracerName)
	return TracingWithTracer(tracer)
}

// TracingWithTracer returns tracing middleware using the provided tracer.
func TracingWithTracer(tracer trace.Tracer) Middleware {
	return func(ctx context.Context, op *Op, next Handler) error {
		attrs := []attribute.KeyValue{
			attribute.String("bananas.job.id", op.JobID),
		}
		if op.JobName != "" {
			attrs = append(attrs,
				attribute.String("bananas.job.name", op.JobName),
				attribute.String("bananas.job.priority", op.Priority.String()),
			)
		}

		ctx, span := tracer.Start(ctx, "bananas.client."+string(op.Kind),
			trace.WithAttributes(attrs...),
			trace.WithSpanKind(trace.SpanKindClient),
		)
		defer span.End()

		err := next(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return err
	}
}
