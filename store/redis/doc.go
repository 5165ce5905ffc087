// Package redis implements the job and result stores on Redis, using the
// key layout shared with Bananas workers and the scheduler.
//
// Job records are JSON strings without expiry. Pending job ids are pushed
// onto one list per priority with LPUSH; workers pop from the other end, so
// each list is FIFO. Scheduled job ids live in a sorted set scored by due
// time in Unix seconds until the scheduler promotes them.
//
// Results are hashes with a TTL that depends on the outcome. Writing a
// result publishes its status on a per-job channel so waiters wake up
// without polling.
//
// The caller owns the Redis clients; the stores never close them:
//
//	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	queue := redisstore.NewQueueStore(rdb)
//	results := redisstore.NewResultStore(rdb, redisstore.WithSuccessTTL(time.Hour))
package redis
