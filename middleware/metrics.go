package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name for client metrics.
const meterName = "github.com/muaviaUsmani/Bananas"

// Metrics returns middleware that records per-operation metrics using the
// global OTel MeterProvider. If no MeterProvider is configured, noop
// instruments are used and this middleware becomes a pass-through.
//
// Instruments:
//   - bananas.client.duration (Float64Histogram): operation time in seconds,
//     with attributes: op, status ("ok" or "error")
//   - bananas.client.operations (Int64Counter): total operations,
//     with attributes: op, status ("ok" or "error")
func Metrics() Middleware {
	meter := otel.Meter(meterName)
	return MetricsWithMeter(meter)
}

// MetricsWithMeter returns metrics middleware using the provided meter.
func MetricsWithMeter(meter metric.Meter) Middleware {
	// On error the API returns noop instruments.
	duration, _ := meter.Float64Histogram(
		"bananas.client.duration",
		metric.WithDescription("Duration of client operations in seconds"),
		metric.WithUnit("s"),
	)
	operations, _ := meter.Int64Counter(
		"bananas.client.operations",
		metric.WithDescription("Total number of client operations"),
		metric.WithUnit("{operation}"),
	)

	return func(ctx context.Context, op *Op, next Handler) error {
		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start).Seconds()

		status := "ok"
		if err != nil {
			status = "error"
		}

		attrs := metric.WithAttributes(
			attribute.String("op", string(op.Kind)),
			attribute.String("status", status),
		)
		duration.Record(ctx, elapsed, attrs)
		operations.Add(ctx, 1, attrs)

		return err
	}
}
