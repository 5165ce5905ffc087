package redis

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/muaviaUsmani/Bananas/result"
)

// WaitForResult blocks until the result of jobID is readable or timeout
// elapses, whichever comes first. A non-positive timeout selects the
// store's default.
//
// It reads the result once, then subscribes to the job's notification
// channel and waits in slices of at most the poll interval. A notification
// triggers a fresh read. Once the grace period has passed, every slice also
// reads the result, which covers notifications published before the
// subscription was active or dropped in transit.
//
// A timeout returns nil, nil. Errors are reserved for store failures and
// cancellation of ctx. The subscription is closed on every return path.
func (s *ResultStore) WaitForResult(ctx context.Context, jobID string, timeout time.Duration) (*result.Result, error) {
	if timeout <= 0 {
		timeout = s.waitTimeout
	}
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	poll := s.pollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	grace := max(s.gracePeriod, 0)
	start := time.Now()
	deadline := start.Add(timeout)

	r, err := s.GetResult(ctx, jobID)
	if err != nil || r != nil {
		return r, err
	}

	channel := s.keys.ResultNotify(jobID)
	sub := s.client.Subscribe(ctx, channel)
	defer func() {
		if cerr := sub.Close(); cerr != nil {
			s.logger.Warn("close result subscription",
				slog.String("job_id", jobID),
				slog.String("error", cerr.Error()),
			)
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			s.logger.Debug("no result within timeout",
				slog.String("job_id", jobID),
				slog.Duration("timeout", timeout),
			)
			return nil, nil
		}

		// A zero receive timeout would block without a deadline, so the
		// slice is always positive. Subscription confirmations and pongs
		// arrive here too; only a published message is a wake-up.
		msg, err := sub.ReceiveTimeout(ctx, min(poll, remaining))
		switch {
		case err == nil:
			if _, ok := msg.(*goredis.Message); ok {
				r, err := s.GetResult(ctx, jobID)
				if err != nil || r != nil {
					return r, err
				}
			}
		case isTimeout(err):
		default:
			return s.waitErr(ctx, err)
		}

		if time.Since(start) >= grace {
			r, err := s.GetResult(ctx, jobID)
			if err != nil || r != nil {
				return r, err
			}
		}
	}
}

// waitErr classifies a receive failure. A cancelled context wins over the
// transport error it caused.
func (s *ResultStore) waitErr(ctx context.Context, err error) (*result.Result, error) {
	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}
	return nil, storeErr("wait for result", err)
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
