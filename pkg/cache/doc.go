// Package cache provides a generic TTL key-value Cache with in-memory and
// Redis implementations. It backs the session store.
//
// TTL semantics for Set:
//   - Positive duration: entry expires after this duration
//   - Zero: use the configured default TTL (1 hour by default)
//   - Negative: entry never expires
//
// # In-Memory Cache
//
// [NewMemory] is meant for single-process deployments and tests. An entry is
// unreadable from the instant its TTL elapses; a background janitor frees
// the memory later:
//
//	c := cache.NewMemory[string](
//	    cache.WithDefaultTTL(5 * time.Minute),
//	    cache.WithCleanupInterval(30 * time.Second),
//	)
//	defer c.Close()
//
// [WithClock] replaces the time source, which makes expiry boundaries
// testable without sleeping.
//
// # Redis Cache
//
// [NewRedis] stores values as JSON (or via a custom [Marshaler]) and lets
// Redis enforce expiry:
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"))
//	c := cache.NewRedis[User](client, nil, cache.WithPrefix("users"))
//
// # Errors
//
//   - [ErrNotFound]: key does not exist or has expired
//   - [ErrClosed]: operation on a closed cache
//   - [ErrMarshal], [ErrUnmarshal]: value (de)serialization failed
package cache
