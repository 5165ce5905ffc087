package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/muaviaUsmani/Bananas/job"
	"github.com/muaviaUsmani/Bananas/result"
)

// ResultStore writes, reads and waits for job results. Waiting needs
// pub/sub, so it takes a full client rather than a Cmdable.
type ResultStore struct {
	client       goredis.UniversalClient
	keys         Keys
	logger       *slog.Logger
	successTTL   time.Duration
	failureTTL   time.Duration
	waitTimeout  time.Duration
	pollInterval time.Duration
	gracePeriod  time.Duration
}

// NewResultStore creates a result store on client. The caller owns the
// client.
func NewResultStore(client goredis.UniversalClient, opts ...Option) *ResultStore {
	o := buildOptions(opts)
	return &ResultStore{
		client:       client,
		keys:         o.keys,
		logger:       o.logger,
		successTTL:   o.successTTL,
		failureTTL:   o.failureTTL,
		waitTimeout:  o.waitTimeout,
		pollInterval: o.pollInterval,
		gracePeriod:  o.gracePeriod,
	}
}

// Keys returns the key codec in use.
func (s *ResultStore) Keys() Keys { return s.keys }

// TTL returns the expiry applied to a result with status st.
func (s *ResultStore) TTL(st job.Status) time.Duration {
	if st == job.StatusCompleted {
		return s.successTTL
	}
	return s.failureTTL
}

// SetResult replaces the stored result and sets its expiry in one
// MULTI/EXEC, then publishes the status on the job's notification channel.
// The publish is sent only after EXEC succeeds, so a woken waiter always
// finds the hash readable.
func (s *ResultStore) SetResult(ctx context.Context, r *result.Result) error {
	if err := r.Validate(); err != nil {
		return err
	}
	fields, err := result.Fields(r)
	if err != nil {
		return err
	}

	key := s.keys.Result(r.JobID)
	ttl := s.TTL(r.Status)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return storeErr("set result", err)
	}

	if err := s.client.Publish(ctx, s.keys.ResultNotify(r.JobID), r.Status.String()).Err(); err != nil {
		return storeErr("publish result", err)
	}

	s.logger.Debug("result stored",
		slog.String("job_id", r.JobID),
		slog.String("status", r.Status.String()),
		slog.Duration("ttl", ttl),
	)
	return nil
}

// GetResult reads a result. An absent or empty hash returns nil, nil.
func (s *ResultStore) GetResult(ctx context.Context, jobID string) (*result.Result, error) {
	fields, err := s.client.HGetAll(ctx, s.keys.Result(jobID)).Result()
	if err != nil {
		return nil, storeErr("get result", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	r, err := result.FromFields(jobID, fields)
	if err != nil {
		return nil, fmt.Errorf("bananas/redis: get result: %w", err)
	}
	return r, nil
}

// DeleteResult removes a stored result. Deleting an absent result is not an
// error.
func (s *ResultStore) DeleteResult(ctx context.Context, jobID string) error {
	if err := s.client.Del(ctx, s.keys.Result(jobID)).Err(); err != nil {
		return storeErr("delete result", err)
	}
	return nil
}

// Ping verifies the Redis connection is alive.
func (s *ResultStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return storeErr("ping", err)
	}
	return nil
}
