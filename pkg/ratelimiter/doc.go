// Package ratelimiter implements token bucket rate limiting for the inbound
// relay endpoint.
//
// A Limiter applies one Config to any number of keys. Bucket state lives in a
// Store: MemoryStore for a single instance, RedisStore to share limits between
// instances (the refill and take run atomically in a Lua script).
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewLimiter(store, ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: 2 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	r.With(ratelimiter.Middleware(limiter, keyFunc, log)).Post("/relay/{id}/{token}", h)
//
// Denied requests leave the bucket untouched and receive 429 with Retry-After.
// Every limited response carries X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset. When the store fails the request is let through and the
// failure is logged.
package ratelimiter
