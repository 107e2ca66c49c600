package http

import (
	"context"
	"net/http"
	"time"

	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

func HealthHandler(log *logger.Logger, checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteErrorEnvelope(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed", nil, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		result := map[string]string{"status": "ok"}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				log.Warnf("health check %s failed: %v", name, err)
				status = http.StatusServiceUnavailable
				result["status"] = "degraded"
				result[name] = err.Error()
				continue
			}
			result[name] = "ok"
		}

		WriteJSON(w, status, result)
	}
}
