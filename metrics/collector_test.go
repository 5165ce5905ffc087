package metrics_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/muaviaUsmani/Bananas/job"
	"github.com/muaviaUsmani/Bananas/metrics"
)

type fakeSource struct {
	stats job.Stats
	err   error
}

func (f fakeSource) Stats(context.Context) (job.Stats, error) { return f.stats, f.err }

func TestQueueCollector(t *testing.T) {
	src := fakeSource{stats: job.Stats{
		Pending:   map[job.Priority]int64{job.PriorityHigh: 3, job.PriorityLow: 1},
		Scheduled: 7,
	}}
	c := metrics.NewQueueCollector(src)

	want := `
# HELP bananas_queue_pending_jobs Number of job ids waiting in each priority queue.
# TYPE bananas_queue_pending_jobs gauge
bananas_queue_pending_jobs{priority="high"} 3
bananas_queue_pending_jobs{priority="low"} 1
bananas_queue_pending_jobs{priority="normal"} 0
# HELP bananas_queue_scheduled_jobs Number of job ids waiting in the scheduled set.
# TYPE bananas_queue_scheduled_jobs gauge
bananas_queue_scheduled_jobs 7
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(want)); err != nil {
		t.Fatal(err)
	}
}

func TestQueueCollectorNamespace(t *testing.T) {
	c := metrics.NewQueueCollector(fakeSource{}, metrics.WithNamespace("tenant"))

	if n := testutil.CollectAndCount(c, "tenant_queue_scheduled_jobs"); n != 1 {
		t.Fatalf("scheduled series = %d", n)
	}
	if n := testutil.CollectAndCount(c, "tenant_queue_pending_jobs"); n != 3 {
		t.Fatalf("pending series = %d", n)
	}
}

func TestQueueCollectorStoreError(t *testing.T) {
	c := metrics.NewQueueCollector(
		fakeSource{err: errors.New("store down")},
		metrics.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	if n := testutil.CollectAndCount(c); n != 0 {
		t.Fatalf("expected no metrics on store failure, got %d", n)
	}
}
