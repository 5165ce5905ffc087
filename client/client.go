// Package client is the producer-side façade of Bananas: it submits jobs to
// the priority queues or the scheduled set, reads job records and results,
// and blocks on results with the wait-for-result protocol.
//
// Usage:
//
//	c, err := client.Dial(ctx, "redis://localhost:6379/0")
//	if err != nil { ... }
//	defer c.Close()
//
//	// Submit a job and wait for its result.
//	jobID, res, err := c.SubmitAndWait(ctx, "resize_image", input, job.PriorityHigh, 30*time.Second)
//	if res == nil {
//	    // not finished yet; poll later with c.GetResult(ctx, jobID)
//	}
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	goredis "github.com/redis/go-redis/v9"

	"github.com/muaviaUsmani/Bananas"
	"github.com/muaviaUsmani/Bananas/id"
	"github.com/muaviaUsmani/Bananas/job"
	"github.com/muaviaUsmani/Bananas/middleware"
	"github.com/muaviaUsmani/Bananas/result"
	redisstore "github.com/muaviaUsmani/Bananas/store/redis"
)

// Client submits jobs and retrieves their results. It is safe for
// concurrent use when its stores are; the Redis stores are.
type Client struct {
	queue   job.Store
	results result.Store
	logger  *slog.Logger
	chain   middleware.Middleware
	idGen   id.Generator

	// owned holds connections opened by Dial. Clients built on caller
	// connections own nothing.
	owned  []*goredis.Client
	closed atomic.Bool
}

// New creates a client whose queue and result stores share rdb. The caller
// owns rdb; Close leaves it open.
func New(rdb goredis.UniversalClient, opts ...Option) *Client {
	o := buildOptions(opts)
	return newClient(
		redisstore.NewQueueStore(rdb, o.storeOptions()...),
		redisstore.NewResultStore(rdb, o.storeOptions()...),
		o,
	)
}

// NewWithStores creates a client on arbitrary store implementations. Store
// options such as WithPrefix have no effect here.
func NewWithStores(queue job.Store, results result.Store, opts ...Option) *Client {
	return newClient(queue, results, buildOptions(opts))
}

// Dial parses url, opens one connection pool for the queue and another for
// results, and verifies both with PING. The returned client owns the
// connections and closes them on Close.
func Dial(ctx context.Context, url string, opts ...Option) (*Client, error) {
	redisOpts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("bananas/client: dial: %w", err)
	}

	resultOpts := *redisOpts
	queueRDB := goredis.NewClient(redisOpts)
	resultRDB := goredis.NewClient(&resultOpts)

	o := buildOptions(opts)
	c := newClient(
		redisstore.NewQueueStore(queueRDB, o.storeOptions()...),
		redisstore.NewResultStore(resultRDB, o.storeOptions()...),
		o,
	)
	c.owned = []*goredis.Client{queueRDB, resultRDB}

	if err := c.Ping(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("bananas/client: dial: %w", err), c.Close())
	}

	c.logger.Info("bananas client connected",
		slog.String("addr", redisOpts.Addr),
		slog.Int("db", redisOpts.DB),
	)
	return c, nil
}

// DialConfig dials cfg.RedisURL and applies cfg's prefix, TTLs and wait
// settings. Options given after cfg override it.
func DialConfig(ctx context.Context, cfg bananas.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return Dial(ctx, cfg.RedisURL, append([]Option{WithConfig(cfg)}, opts...)...)
}

// Run dials url, calls fn with the client, and closes the client on every
// return path, including a panic in fn.
func Run(ctx context.Context, url string, fn func(ctx context.Context, c *Client) error, opts ...Option) (err error) {
	c, err := Dial(ctx, url, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return fn(ctx, c)
}

func newClient(queue job.Store, results result.Store, o options) *Client {
	return &Client{
		queue:   queue,
		results: results,
		logger:  o.logger,
		chain:   middleware.Chain(o.middleware...),
		idGen:   o.idGen,
	}
}

// Queue returns the job store.
func (c *Client) Queue() job.Store { return c.queue }

// Results returns the result store.
func (c *Client) Results() result.Store { return c.results }

// Ping checks both stores.
func (c *Client) Ping(ctx context.Context) error {
	if c.closed.Load() {
		return bananas.ErrClientClosed
	}
	return errors.Join(c.queue.Ping(ctx), c.results.Ping(ctx))
}

// Close releases connections opened by Dial. It is safe to call more than
// once; later calls return nil. Every operation after Close fails with
// bananas.ErrClientClosed.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}

	var errs []error
	for _, rdb := range c.owned {
		if err := rdb.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.owned = nil
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("bananas/client: close: %w", err)
	}
	return nil
}

// run passes op through the middleware chain unless the client is closed.
func (c *Client) run(ctx context.Context, op *middleware.Op, h middleware.Handler) error {
	if c.closed.Load() {
		return bananas.ErrClientClosed
	}
	return c.chain(ctx, op, h)
}
