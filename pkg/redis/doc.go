// Package redis opens go-redis clients for the session store and exposes
// health check and shutdown helpers for them.
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"))
//	if err != nil {
//		return err
//	}
//	checks["redis"] = redis.Healthcheck(client)
//	hooks = append(hooks, redis.Shutdown(client))
//
// Open accepts redis:// and rediss:// URLs and retries the initial PING
// with a linear backoff ([WithRetry]).
package redis
