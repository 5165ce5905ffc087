package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/muaviaUsmani/Bananas/result"
	redisstore "github.com/muaviaUsmani/Bananas/store/redis"
)

func TestWaitForResultAlreadyStored(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	if err := f.results.SetResult(ctx, successResult(t, "done")); err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	got, err := f.results.WaitForResult(ctx, "done", time.Minute)
	if err != nil || got == nil {
		t.Fatalf("WaitForResult = %v, %v", got, err)
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Fatalf("stored result took %v", elapsed)
	}
	if n := f.mr.PubSubNumSub("bananas:result:notify:done")["bananas:result:notify:done"]; n != 0 {
		t.Fatalf("no subscription expected when the result is already stored, got %d", n)
	}
}

func TestWaitForResultTimeout(t *testing.T) {
	f := setup(t)

	start := time.Now()
	got, err := f.results.WaitForResult(context.Background(), "never", 100*time.Millisecond)
	elapsed := time.Since(start)

	if err != nil || got != nil {
		t.Fatalf("WaitForResult = %v, %v; want nil, nil", got, err)
	}
	if elapsed < 100*time.Millisecond {
		t.Fatalf("returned early after %v", elapsed)
	}
	if elapsed > 400*time.Millisecond {
		t.Fatalf("returned late after %v", elapsed)
	}
}

func TestWaitForResultNotified(t *testing.T) {
	// A long grace period leaves the notification as the only wake-up.
	f := setup(t, redisstore.WithGracePeriod(time.Hour))
	ctx := context.Background()

	var g errgroup.Group
	var got *result.Result
	g.Go(func() error {
		var err error
		got, err = f.results.WaitForResult(ctx, "job-n", 5*time.Second)
		return err
	})

	waitForSubscribers(t, f, "bananas:result:notify:job-n", 1)
	start := time.Now()
	if err := f.results.SetResult(ctx, successResult(t, "job-n")); err != nil {
		t.Fatal(err)
	}

	if err := g.Wait(); err != nil {
		t.Fatalf("WaitForResult: %v", err)
	}
	if got == nil || !got.IsSuccess() {
		t.Fatalf("got %+v", got)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("woke %v after the result was stored", elapsed)
	}
}

func TestWaitForResultConcurrentSet(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	var g errgroup.Group
	var got *result.Result
	g.Go(func() error {
		var err error
		got, err = f.results.WaitForResult(ctx, "job-c", 5*time.Second)
		return err
	})
	g.Go(func() error {
		time.Sleep(50 * time.Millisecond)
		return f.results.SetResult(ctx, result.Failure("job-c", "boom", 0))
	})

	if err := g.Wait(); err != nil {
		t.Fatalf("errgroup: %v", err)
	}
	if got == nil || !got.IsFailed() || got.Error != "boom" {
		t.Fatalf("got %+v", got)
	}
}

func TestWaitForResultMissedNotification(t *testing.T) {
	f := setup(t, redisstore.WithGracePeriod(200*time.Millisecond), redisstore.WithPollInterval(20*time.Millisecond))
	ctx := context.Background()

	var g errgroup.Group
	var got *result.Result
	g.Go(func() error {
		var err error
		got, err = f.results.WaitForResult(ctx, "job-m", 3*time.Second)
		return err
	})

	// Write the hash behind the store's back: no notification is published.
	time.Sleep(50 * time.Millisecond)
	f.mr.HSet("bananas:result:job-m", "status", "completed", "duration_ms", "5")
	start := time.Now()

	if err := g.Wait(); err != nil {
		t.Fatalf("WaitForResult: %v", err)
	}
	if got == nil || !got.IsSuccess() || got.DurationMS != 5 {
		t.Fatalf("got %+v", got)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("fallback poll took %v", elapsed)
	}
}

func TestWaitForResultMultipleWaiters(t *testing.T) {
	f := setup(t, redisstore.WithGracePeriod(time.Hour))
	ctx := context.Background()

	const waiters = 4
	channel := "bananas:result:notify:job-w"
	results := make([]*result.Result, waiters)

	var g errgroup.Group
	for i := 0; i < waiters; i++ {
		i := i
		g.Go(func() error {
			r, err := f.results.WaitForResult(ctx, "job-w", 5*time.Second)
			results[i] = r
			return err
		})
	}

	waitForSubscribers(t, f, channel, waiters)
	if err := f.results.SetResult(ctx, successResult(t, "job-w")); err != nil {
		t.Fatal(err)
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("WaitForResult: %v", err)
	}
	for i, r := range results {
		if r == nil || !r.IsSuccess() {
			t.Fatalf("waiter %d got %+v", i, r)
		}
	}
}

func TestWaitForResultReleasesSubscription(t *testing.T) {
	f := setup(t)
	channel := "bananas:result:notify:job-r"

	if _, err := f.results.WaitForResult(context.Background(), "job-r", 50*time.Millisecond); err != nil {
		t.Fatalf("WaitForResult: %v", err)
	}
	waitForSubscribers(t, f, channel, 0)
}

func TestWaitForResultContextCancelled(t *testing.T) {
	f := setup(t, redisstore.WithPollInterval(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	got, err := f.results.WaitForResult(ctx, "job-x", time.Minute)
	if got != nil || !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, %v; want context.Canceled", got, err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("cancellation noticed after %v", elapsed)
	}
	waitForSubscribers(t, f, "bananas:result:notify:job-x", 0)
}

func TestWaitForResultDefaultTimeout(t *testing.T) {
	f := setup(t, redisstore.WithWaitTimeout(80*time.Millisecond))

	start := time.Now()
	got, err := f.results.WaitForResult(context.Background(), "job-d", 0)
	if err != nil || got != nil {
		t.Fatalf("got %v, %v", got, err)
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond || elapsed > time.Second {
		t.Fatalf("default timeout not applied, waited %v", elapsed)
	}
}

func TestWaitForResultNonPositiveSettings(t *testing.T) {
	tests := []struct {
		name string
		opts []redisstore.Option
	}{
		{"zero poll interval", []redisstore.Option{redisstore.WithPollInterval(0)}},
		{"negative poll interval", []redisstore.Option{redisstore.WithPollInterval(-time.Second)}},
		{"negative grace period", []redisstore.Option{redisstore.WithPollInterval(0), redisstore.WithGracePeriod(-time.Second)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, tt.opts...)

			type outcome struct {
				r   *result.Result
				err error
			}
			done := make(chan outcome, 1)
			start := time.Now()
			go func() {
				r, err := f.results.WaitForResult(context.Background(), "p0", 100*time.Millisecond)
				done <- outcome{r, err}
			}()

			select {
			case out := <-done:
				if out.err != nil || out.r != nil {
					t.Fatalf("got %v, %v; want nil, nil", out.r, out.err)
				}
				if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
					t.Fatalf("returned early after %v", elapsed)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("WaitForResult ignored its 100ms timeout")
			}
		})
	}
}

func TestWaitForResultNegativeGraceStillPolls(t *testing.T) {
	f := setup(t, redisstore.WithGracePeriod(-time.Second), redisstore.WithPollInterval(20*time.Millisecond))
	ctx := context.Background()

	var g errgroup.Group
	var got *result.Result
	g.Go(func() error {
		var err error
		got, err = f.results.WaitForResult(ctx, "job-g", 3*time.Second)
		return err
	})

	waitForSubscribers(t, f, "bananas:result:notify:job-g", 1)
	f.mr.HSet("bananas:result:job-g", "status", "completed")

	if err := g.Wait(); err != nil {
		t.Fatalf("WaitForResult: %v", err)
	}
	if got == nil || !got.IsSuccess() {
		t.Fatalf("got %+v", got)
	}
}

// waitForSubscribers polls until channel has exactly n subscribers.
func waitForSubscribers(t *testing.T, f *fixture, channel string, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		got := f.mr.PubSubNumSub(channel)[channel]
		if got == n {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("channel %s has %d subscribers, want %d", channel, got, n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
