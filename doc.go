// Package bananas is the client-side protocol layer for the Bananas
// distributed task queue. Producers submit jobs, out-of-process workers
// execute them, and callers read or wait for results. A shared Redis
// instance is the only coordination medium, so every process must agree on
// the key layout and encodings implemented here.
//
// # Quick Start
//
//	c, err := client.Dial(ctx, "redis://localhost:6379/0")
//	if err != nil { ... }
//	defer c.Close()
//
//	id, err := c.Submit(ctx, "send_email", map[string]any{"to": "a@b.c"}, job.PriorityHigh)
//	res, err := c.WaitForResult(ctx, id, 30*time.Second)
//
// # Architecture
//
// The root package holds sentinel errors and [Config]. Subsystems live in
// their own packages:
//
//   - value: the structured payload/result value type
//   - id: job id generation and validation
//   - job: job records, status and priority enums, the queue store contract
//   - result: result records and the result store contract
//   - store/redis: the Redis key layout, queue store, result store and the
//     blocking wait-for-result protocol
//   - middleware: logging, tracing, metrics and rate limiting around client calls
//   - metrics: Prometheus collector for queue depths
//   - client: the composition root
//
// Lookups return nil, nil when a record is absent. Errors are reserved for
// store failures ([ErrStore]), undecodable data ([ErrDeserialize]) and
// client-side validation ([ErrInvalidJob] and friends).
package bananas
