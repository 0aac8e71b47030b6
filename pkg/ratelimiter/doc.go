// Package ratelimiter implements token bucket rate limiting with pluggable
// storage.
//
// A bucket holds at most Capacity tokens and gains RefillRate tokens every
// RefillInterval. A request takes one or more tokens; when not enough are
// left it is refused and the bucket is left as it was.
//
//	store := ratelimiter.NewMemoryStore()
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       100,
//		RefillRate:     10,
//		RefillInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	res, err := limiter.Allow(ctx, "user:123")
//	if err != nil {
//		return err
//	}
//	if !res.Allowed() {
//		log.Printf("retry after %s", res.RetryAfter())
//	}
//
// MemoryStore is local to the process; run its cleanup loop with
// g.Go(store.Run(ctx)). RedisStore evaluates the same algorithm in a Lua
// script so several instances share one limit.
package ratelimiter
