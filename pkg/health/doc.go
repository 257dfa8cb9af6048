// Package health serves the liveness and readiness probes.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"redis":    redis.Healthcheck(client),
//		"postgres": db.Healthcheck(pool),
//	}, health.WithLogger(log)))
//
// Probes answer with a JSON [Response]. ?format=text or Accept: text/plain
// switches to a bare "OK" / "Service Unavailable".
package health
