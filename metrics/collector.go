// Package metrics exports queue occupancy to Prometheus.
package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/muaviaUsmani/Bananas/job"
)

// StatsSource reports queue occupancy. job.Store satisfies it.
type StatsSource interface {
	Stats(ctx context.Context) (job.Stats, error)
}

// Option configures a QueueCollector.
type Option func(*QueueCollector)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *QueueCollector) { c.logger = l }
}

// WithNamespace sets the metric name prefix. Defaults to "bananas".
func WithNamespace(ns string) Option {
	return func(c *QueueCollector) { c.namespace = ns }
}

// WithTimeout bounds each scrape's store round trip. Defaults to 5s.
func WithTimeout(d time.Duration) Option {
	return func(c *QueueCollector) { c.timeout = d }
}

// QueueCollector is a prometheus.Collector that reads queue occupancy from
// the store on every scrape.
//
// Metrics:
//   - bananas_queue_pending_jobs{priority}: ids waiting in each priority queue
//   - bananas_queue_scheduled_jobs: ids waiting in the scheduled set
type QueueCollector struct {
	source    StatsSource
	logger    *slog.Logger
	namespace string
	timeout   time.Duration

	pending   *prometheus.Desc
	scheduled *prometheus.Desc
}

var _ prometheus.Collector = (*QueueCollector)(nil)

// NewQueueCollector creates a collector reading from source.
func NewQueueCollector(source StatsSource, opts ...Option) *QueueCollector {
	c := &QueueCollector{
		source:    source,
		logger:    slog.Default(),
		namespace: "bananas",
		timeout:   5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.pending = prometheus.NewDesc(
		prometheus.BuildFQName(c.namespace, "queue", "pending_jobs"),
		"Number of job ids waiting in each priority queue.",
		[]string{"priority"},
		nil,
	)
	c.scheduled = prometheus.NewDesc(
		prometheus.BuildFQName(c.namespace, "queue", "scheduled_jobs"),
		"Number of job ids waiting in the scheduled set.",
		nil,
		nil,
	)
	return c
}

// Describe implements prometheus.Collector.
func (c *QueueCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.pending
	ch <- c.scheduled
}

// Collect implements prometheus.Collector. A failed store read is logged
// and the scrape reports nothing for this collector.
func (c *QueueCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	stats, err := c.source.Stats(ctx)
	if err != nil {
		c.logger.Error("collect queue stats", slog.String("error", err.Error()))
		return
	}

	for _, p := range job.Priorities() {
		ch <- prometheus.MustNewConstMetric(c.pending, prometheus.GaugeValue, float64(stats.Pending[p]), p.String())
	}
	ch <- prometheus.MustNewConstMetric(c.scheduled, prometheus.GaugeValue, float64(stats.Scheduled))
}
