package job

import "context"

// Stats is a point-in-time view of queue occupancy.
type Stats struct {
	// Pending holds the number of job ids waiting in each priority queue.
	Pending map[Priority]int64

	// Scheduled is the number of job ids waiting for their due time.
	Scheduled int64
}

// Store defines the producer-side persistence contract for jobs.
type Store interface {
	// Enqueue writes the job record, then appends its id to the queue for
	// its priority. The two writes are independent.
	Enqueue(ctx context.Context, j *Job) error

	// EnqueueScheduled writes the job record, then adds its id to the
	// scheduled set keyed by due time. Jobs without ScheduledFor are
	// rejected with bananas.ErrScheduleRequired before any store call.
	EnqueueScheduled(ctx context.Context, j *Job) error

	// GetJob reads a job record. It returns nil, nil when no record exists
	// and an error wrapping bananas.ErrDeserialize when the stored bytes
	// cannot be decoded.
	GetJob(ctx context.Context, jobID string) (*Job, error)

	// Stats reports queue occupancy.
	Stats(ctx context.Context) (Stats, error)

	// Ping checks store connectivity.
	Ping(ctx context.Context) error
}
