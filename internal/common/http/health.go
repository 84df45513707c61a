package http

import (
	"context"
	"net/http"
	"time"

	"github.com/AlibekovAA/todo-rpc/internal/common/logger"
)

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

const healthCheckTimeout = 2 * time.Second

func HealthHandler(log *logger.Logger, checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		details := make(map[string]any, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				details[name] = err.Error()
			}
		}
		if len(details) > 0 {
			log.WithFields(r.Context(), logger.Fields{"failed": len(details)}).Warn("health check failed")
			WriteErrorEnvelope(w, http.StatusServiceUnavailable, CodeUnavailable, "dependency unavailable", details, TraceIDFromContext(r.Context()))
			return
		}

		log.Debug("health check request")
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
