package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/muaviaUsmani/Bananas/job"
	"github.com/muaviaUsmani/Bananas/middleware"
)

func newSubmitOp() *middleware.Op {
	return &middleware.Op{
		Kind:     middleware.KindSubmit,
		JobID:    "job-123",
		JobName:  "send-email",
		Priority: job.PriorityHigh,
	}
}

func newReadOp() *middleware.Op {
	return &middleware.Op{Kind: middleware.KindGetResult, JobID: "job-123"}
}

func TestChain_ExecutionOrder(t *testing.T) {
	var order []string

	mw1 := func(ctx context.Context, _ *middleware.Op, next middleware.Handler) error {
		order = append(order, "mw1-before")
		err := next(ctx)
		order = append(order, "mw1-after")
		return err
	}

	mw2 := func(ctx context.Context, _ *middleware.Op, next middleware.Handler) error {
		order = append(order, "mw2-before")
		err := next(ctx)
		order = append(order, "mw2-after")
		return err
	}

	chain := middleware.Chain(mw1, mw2)
	handler := func(_ context.Context) error {
		order = append(order, "handler")
		return nil
	}

	if err := chain(context.Background(), newSubmitOp(), handler); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"mw1-before", "mw2-before", "handler", "mw2-after", "mw1-after"}
	if len(order) != len(expected) {
		t.Fatalf("expected %d calls, got %d: %v", len(expected), len(order), order)
	}
	for i, want := range expected {
		if order[i] != want {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want)
		}
	}
}

func TestChain_Empty(t *testing.T) {
	chain := middleware.Chain()
	called := false

	err := chain(context.Background(), newReadOp(), func(_ context.Context) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("handler not called with empty chain")
	}
}

func TestChain_PropagatesError(t *testing.T) {
	mw := func(ctx context.Context, _ *middleware.Op, next middleware.Handler) error {
		return next(ctx)
	}
	chain := middleware.Chain(mw)
	want := errors.New("handler error")

	err := chain(context.Background(), newReadOp(), func(_ context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestRecover_CatchesPanic(t *testing.T) {
	mw := middleware.Recover(slog.Default())

	err := mw(context.Background(), newSubmitOp(), func(_ context.Context) error {
		panic("test panic")
	})
	if err == nil {
		t.Fatal("expected error from panic recovery")
	}
	if got := err.Error(); got != "panic in submit job-123: test panic" {
		t.Errorf("unexpected error message: %q", got)
	}
}

func TestLogging_Levels(t *testing.T) {
	tests := []struct {
		name    string
		op      *middleware.Op
		err     error
		level   string
		message string
	}{
		{"submit", newSubmitOp(), nil, "level=INFO", "client operation completed"},
		{"read", newReadOp(), nil, "level=DEBUG", "client operation completed"},
		{"failure", newReadOp(), errors.New("fail"), "level=ERROR", "client operation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			err := middleware.Logging(logger)(context.Background(), tt.op, func(_ context.Context) error {
				return tt.err
			})
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}

			out := buf.String()
			if !strings.Contains(out, tt.level) || !strings.Contains(out, tt.message) {
				t.Fatalf("log line %q lacks %q / %q", out, tt.level, tt.message)
			}
			if !strings.Contains(out, "job_id=job-123") {
				t.Fatalf("log line %q lacks job id", out)
			}
		})
	}
}

func TestTimeout_BoundsReads(t *testing.T) {
	mw := middleware.Timeout(20 * time.Millisecond)

	err := mw(context.Background(), newReadOp(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestTimeout_SkipsWait(t *testing.T) {
	mw := middleware.Timeout(time.Millisecond)
	op := &middleware.Op{Kind: middleware.KindWaitForResult, JobID: "job-123"}

	err := mw(context.Background(), op, func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); ok {
			return errors.New("wait must not get a deadline")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestRateLimit_ThrottlesSubmissions(t *testing.T) {
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	mw := middleware.RateLimit(limiter)
	noop := func(_ context.Context) error { return nil }

	if err := mw(context.Background(), newSubmitOp(), noop); err != nil {
		t.Fatalf("first submission: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	called := false
	err := mw(ctx, newSubmitOp(), func(_ context.Context) error {
		called = true
		return nil
	})
	if err == nil || called {
		t.Fatalf("second submission should be throttled: err=%v called=%v", err, called)
	}

	for n := 0; n < 3; n++ {
		if err := mw(context.Background(), newReadOp(), noop); err != nil {
			t.Fatalf("reads must not be throttled: %v", err)
		}
	}
}
