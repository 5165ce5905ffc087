package client

import (
	"context"
	"fmt"
	"time"

	"github.com/muaviaUsmani/Bananas"
	"github.com/muaviaUsmani/Bananas/job"
	"github.com/muaviaUsmani/Bananas/middleware"
	"github.com/muaviaUsmani/Bananas/value"
)

// Submit creates a pending job and pushes it onto the queue for priority.
// payload may be a value.Value or anything encoding/json accepts. It
// returns the generated job id.
func (c *Client) Submit(ctx context.Context, name string, payload any, priority job.Priority, opts ...job.Option) (string, error) {
	j, err := c.newJob(name, payload, priority, opts)
	if err != nil {
		return "", err
	}
	if err := c.SubmitJob(ctx, j); err != nil {
		return "", err
	}
	return j.ID, nil
}

// SubmitWithRoute is Submit with a routing key steering the job to a worker
// pool.
func (c *Client) SubmitWithRoute(ctx context.Context, name string, payload any, priority job.Priority, routingKey string, opts ...job.Option) (string, error) {
	return c.Submit(ctx, name, payload, priority, append(opts, job.WithRoutingKey(routingKey))...)
}

// SubmitScheduled creates a job due at at and adds it to the scheduled set.
// The scheduler moves it to its priority queue once due. A zero at fails
// with bananas.ErrScheduleRequired.
func (c *Client) SubmitScheduled(ctx context.Context, name string, payload any, priority job.Priority, at time.Time, opts ...job.Option) (string, error) {
	if at.IsZero() {
		return "", bananas.ErrScheduleRequired
	}
	j, err := c.newJob(name, payload, priority, append(opts, job.WithScheduledFor(at)))
	if err != nil {
		return "", err
	}
	if err := c.SubmitJob(ctx, j); err != nil {
		return "", err
	}
	return j.ID, nil
}

// SubmitJob submits a job built by the caller, for example with a
// job.Definition. Scheduled jobs go to the scheduled set, all others to
// their priority queue.
func (c *Client) SubmitJob(ctx context.Context, j *job.Job) error {
	if err := j.Validate(); err != nil {
		return err
	}

	op := &middleware.Op{
		Kind:     middleware.KindSubmit,
		JobID:    j.ID,
		JobName:  j.Name,
		Priority: j.Priority,
	}
	enqueue := c.queue.Enqueue
	if j.IsScheduled() {
		op.Kind = middleware.KindSubmitScheduled
		enqueue = c.queue.EnqueueScheduled
	}

	return c.run(ctx, op, func(ctx context.Context) error {
		return enqueue(ctx, j)
	})
}

// SubmitDefinition builds a job from def and payload and submits it.
//
// This is a package-level generic function because Go does not allow
// generic methods.
func SubmitDefinition[T any](ctx context.Context, c *Client, def *job.Definition[T], payload T, opts ...job.Option) (string, error) {
	j, err := def.New(payload, append([]job.Option{job.WithIDGenerator(c.idGen)}, opts...)...)
	if err != nil {
		return "", err
	}
	if err := c.SubmitJob(ctx, j); err != nil {
		return "", err
	}
	return j.ID, nil
}

// GetJob reads a job record. It returns nil, nil when the job does not
// exist, and an error wrapping bananas.ErrDeserialize when the record is
// unreadable.
func (c *Client) GetJob(ctx context.Context, jobID string) (*job.Job, error) {
	var j *job.Job
	err := c.run(ctx, &middleware.Op{Kind: middleware.KindGetJob, JobID: jobID}, func(ctx context.Context) error {
		var err error
		j, err = c.queue.GetJob(ctx, jobID)
		return err
	})
	return j, err
}

func (c *Client) newJob(name string, payload any, priority job.Priority, opts []job.Option) (*job.Job, error) {
	v, err := value.From(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %w", bananas.ErrInvalidJob, err)
	}
	return job.New(name, v, priority, append([]job.Option{job.WithIDGenerator(c.idGen)}, opts...)...)
}
