package redis_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/muaviaUsmani/Bananas/job"
	"github.com/muaviaUsmani/Bananas/result"
	redisstore "github.com/muaviaUsmani/Bananas/store/redis"
	"github.com/muaviaUsmani/Bananas/value"
)

// ── Test Helpers ──────────────────────────────────────

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	mr      *miniredis.Miniredis
	rdb     *goredis.Client
	queue   *redisstore.QueueStore
	results *redisstore.ResultStore
}

func setup(t *testing.T, opts ...redisstore.Option) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	opts = append([]redisstore.Option{redisstore.WithLogger(testLogger())}, opts...)
	return &fixture{
		mr:      mr,
		rdb:     rdb,
		queue:   redisstore.NewQueueStore(rdb, opts...),
		results: redisstore.NewResultStore(rdb, opts...),
	}
}

func newJob(t *testing.T, priority job.Priority, opts ...job.Option) *job.Job {
	t.Helper()
	payload, err := value.Parse([]byte(`{"to":"a@example.com"}`))
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	j, err := job.New("send_email", payload, priority, opts...)
	if err != nil {
		t.Fatalf("job.New: %v", err)
	}
	return j
}

func successResult(t *testing.T, jobID string) *result.Result {
	t.Helper()
	payload, err := value.Parse([]byte(`{"output":"success"}`))
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	return result.Success(jobID, payload, 1500*time.Millisecond)
}

// failCommand is a client hook that rejects every command named name
// before it reaches the server, leaving all other commands untouched.
type failCommand string

var errRejected = errors.New("ERR rejected by hook")

func (h failCommand) matches(cmd goredis.Cmder) bool {
	return strings.EqualFold(cmd.Name(), string(h))
}

func (h failCommand) DialHook(next goredis.DialHook) goredis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h failCommand) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		if h.matches(cmd) {
			cmd.SetErr(errRejected)
			return errRejected
		}
		return next(ctx, cmd)
	}
}

func (h failCommand) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []goredis.Cmder) error {
		kept := make([]goredis.Cmder, 0, len(cmds))
		var failed bool
		for _, cmd := range cmds {
			if h.matches(cmd) {
				cmd.SetErr(errRejected)
				failed = true
				continue
			}
			kept = append(kept, cmd)
		}
		err := next(ctx, kept)
		if failed && err == nil {
			err = errRejected
		}
		return err
	}
}
