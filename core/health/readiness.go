package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ochronus/hello-inertia/core/logger"
)

// Check reports whether one dependency is ready.
type Check func(context.Context) error

// Readiness returns "READY" if all checks pass, 503 Service Unavailable if any fail.
//
// Example:
//
//	r.Get("/health/ready", health.Readiness(log, app.Accepting))
func Readiness(log *slog.Logger, checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.WarnContext(r.Context(), "readiness check failed", logger.Component("health"), logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(http.StatusText(http.StatusServiceUnavailable)))
				return
			}
		}
		_, _ = w.Write([]byte("READY"))
	}
}
