// Package health provides liveness and readiness handlers.
//
//	mux.Get("/health/live", health.Liveness)
//	mux.Get("/health/ready", health.Readiness(log, redis.Healthcheck(client)))
//
// Readiness runs every dependency check concurrently and answers 503 when
// any of them fails.
package health
