package client

import (
	"context"
	"time"

	"github.com/muaviaUsmani/Bananas/job"
	"github.com/muaviaUsmani/Bananas/middleware"
	"github.com/muaviaUsmani/Bananas/result"
)

// GetResult reads a job's result. It returns nil, nil while the job has
// not finished and after its result expired.
func (c *Client) GetResult(ctx context.Context, jobID string) (*result.Result, error) {
	var r *result.Result
	err := c.run(ctx, &middleware.Op{Kind: middleware.KindGetResult, JobID: jobID}, func(ctx context.Context) error {
		var err error
		r, err = c.results.GetResult(ctx, jobID)
		return err
	})
	return r, err
}

// WaitForResult blocks until the job's result is readable or timeout
// elapses. It returns nil, nil on timeout; the job may still finish later.
// A non-positive timeout uses the configured default of 5 minutes.
func (c *Client) WaitForResult(ctx context.Context, jobID string, timeout time.Duration) (*result.Result, error) {
	var r *result.Result
	err := c.run(ctx, &middleware.Op{Kind: middleware.KindWaitForResult, JobID: jobID}, func(ctx context.Context) error {
		var err error
		r, err = c.results.WaitForResult(ctx, jobID, timeout)
		return err
	})
	return r, err
}

// SubmitAndWait submits a job and waits up to timeout for its result. The
// job id is returned whenever submission succeeded, so a caller that timed
// out can keep polling. A nil result with a nil error means the timeout
// elapsed.
func (c *Client) SubmitAndWait(ctx context.Context, name string, payload any, priority job.Priority, timeout time.Duration, opts ...job.Option) (string, *result.Result, error) {
	jobID, err := c.Submit(ctx, name, payload, priority, opts...)
	if err != nil {
		return "", nil, err
	}
	r, err := c.WaitForResult(ctx, jobID, timeout)
	return jobID, r, err
}

// DeleteResult removes a job's result before it expires.
func (c *Client) DeleteResult(ctx context.Context, jobID string) error {
	return c.run(ctx, &middleware.Op{Kind: middleware.KindDeleteResult, JobID: jobID}, func(ctx context.Context) error {
		return c.results.DeleteResult(ctx, jobID)
	})
}

// Stats reports queue occupancy.
func (c *Client) Stats(ctx context.Context) (job.Stats, error) {
	var stats job.Stats
	err := c.run(ctx, &middleware.Op{Kind: middleware.KindStats}, func(ctx context.Context) error {
		var err error
		stats, err = c.queue.Stats(ctx)
		return err
	})
	return stats, err
}
