// Package health provides HTTP handlers for service health monitoring.
//
// Handlers:
//   - Liveness: Process is running (no dependency checks)
//   - Readiness: All checks pass
//   - NoContent: Returns 204 for minimal overhead
//
// Checks follow the func(context.Context) error signature:
//
//	r.Get("/health/live", health.Liveness)
//	r.Get("/health/ready", health.Readiness(log, func(ctx context.Context) error {
//		return db.PingContext(ctx)
//	}))
package health
