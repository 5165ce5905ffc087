// Package job defines the job record, its status and priority enums, the
// canonical JSON encoding shared with workers, and the queue store contract.
//
// # Job Record
//
// A [Job] is created by the submitting side with a client-generated id and
// either [StatusPending] or, for deferred execution, [StatusScheduled] with
// ScheduledFor set. Workers and the scheduler own every later transition:
//
//	scheduled → pending          (scheduler promotes due jobs)
//	pending → processing         (worker claims)
//	processing → completed
//	processing → failed
//
// Completed and failed are terminal.
//
// # Encoding
//
// [Marshal] writes the fields in a fixed order with lowercase status and
// priority tags and RFC 3339 UTC timestamps; scheduled_for appears only when
// set. [Unmarshal] rejects unknown tags and malformed timestamps with
// bananas.ErrDeserialize, and fills defaults for fields older producers omit.
//
// # Definitions
//
// [Definition] binds a handler name, priority and options to a typed
// payload so producers can build jobs without repeating them:
//
//	var Resize = job.NewDefinition[ResizeInput]("resize_image", job.PriorityNormal)
//	j, err := Resize.New(ResizeInput{URL: u, Width: 640})
package job
