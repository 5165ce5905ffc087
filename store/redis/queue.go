package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/muaviaUsmani/Bananas"
	"github.com/muaviaUsmani/Bananas/job"
)

// QueueStore submits jobs to the priority queues and the scheduled set and
// reads job records back.
type QueueStore struct {
	client goredis.Cmdable
	keys   Keys
	logger *slog.Logger
}

// NewQueueStore creates a queue store on client. The caller owns the client.
func NewQueueStore(client goredis.Cmdable, opts ...Option) *QueueStore {
	o := buildOptions(opts)
	return &QueueStore{client: client, keys: o.keys, logger: o.logger}
}

// Keys returns the key codec in use.
func (s *QueueStore) Keys() Keys { return s.keys }

// Enqueue writes the job record, then pushes its id onto the queue for its
// priority. The push is sent only after the record write succeeded, so a
// queue entry never points at a missing record. A failed push leaves the
// record without a queue entry.
func (s *QueueStore) Enqueue(ctx context.Context, j *job.Job) error {
	data, err := job.Marshal(j)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.keys.Job(j.ID), data, 0).Err(); err != nil {
		return storeErr("enqueue", err)
	}
	if err := s.client.LPush(ctx, s.keys.Queue(j.Priority), j.ID).Err(); err != nil {
		return storeErr("enqueue", err)
	}

	s.logger.Debug("job enqueued",
		slog.String("job_id", j.ID),
		slog.String("name", j.Name),
		slog.String("priority", j.Priority.String()),
	)
	return nil
}

// EnqueueScheduled writes the job record, then adds its id to the scheduled
// set scored by ScheduledFor in Unix seconds. As with Enqueue, the set is
// touched only after the record is stored. A job without ScheduledFor is
// rejected with bananas.ErrScheduleRequired before anything is sent.
func (s *QueueStore) EnqueueScheduled(ctx context.Context, j *job.Job) error {
	if j.ScheduledFor == nil {
		return bananas.ErrScheduleRequired
	}
	data, err := job.Marshal(j)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.keys.Job(j.ID), data, 0).Err(); err != nil {
		return storeErr("enqueue scheduled", err)
	}
	err = s.client.ZAdd(ctx, s.keys.Scheduled(), goredis.Z{
		Score:  scheduleScore(*j.ScheduledFor),
		Member: j.ID,
	}).Err()
	if err != nil {
		return storeErr("enqueue scheduled", err)
	}

	s.logger.Debug("job scheduled",
		slog.String("job_id", j.ID),
		slog.String("name", j.Name),
		slog.Time("scheduled_for", *j.ScheduledFor),
	)
	return nil
}

// GetJob reads a job record. It returns nil, nil when the key is absent and
// an error wrapping bananas.ErrDeserialize when the stored bytes are corrupt.
func (s *QueueStore) GetJob(ctx context.Context, jobID string) (*job.Job, error) {
	data, err := s.client.Get(ctx, s.keys.Job(jobID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, storeErr("get job", err)
	}

	j, err := job.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("bananas/redis: get job %s: %w", jobID, err)
	}
	return j, nil
}

// Stats reports the length of every priority queue and the size of the
// scheduled set in one round trip.
func (s *QueueStore) Stats(ctx context.Context) (job.Stats, error) {
	priorities := job.Priorities()

	pipe := s.client.Pipeline()
	lens := make([]*goredis.IntCmd, len(priorities))
	for i, p := range priorities {
		lens[i] = pipe.LLen(ctx, s.keys.Queue(p))
	}
	scheduled := pipe.ZCard(ctx, s.keys.Scheduled())
	if _, err := pipe.Exec(ctx); err != nil {
		return job.Stats{}, storeErr("stats", err)
	}

	stats := job.Stats{
		Pending:   make(map[job.Priority]int64, len(priorities)),
		Scheduled: scheduled.Val(),
	}
	for i, p := range priorities {
		stats.Pending[p] = lens[i].Val()
	}
	return stats, nil
}

// Ping verifies the Redis connection is alive.
func (s *QueueStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return storeErr("ping", err)
	}
	return nil
}

// scheduleScore converts a due time to fractional Unix seconds with
// microsecond precision.
func scheduleScore(t time.Time) float64 {
	return float64(t.UnixMicro()) / 1e6
}
