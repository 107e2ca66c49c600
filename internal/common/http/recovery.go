package http

import (
	"net/http"
	"runtime/debug"

	"github.com/AlibekovAA/onion-recipes/internal/common/httpmetrics"
	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
	"github.com/AlibekovAA/onion-recipes/internal/observability/metrics"
)

// RecoveryMiddleware turns a panicking handler into a 500 envelope tagged
// with the serving component.
func RecoveryMiddleware(service string, log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				ctx := r.Context()
				metrics.PanicsRecovered.Inc()
				log.WithFields(ctx, logger.Fields{
					"service": service,
					"method":  r.Method,
					"path":    httpmetrics.NormalizePath(r.URL.Path),
					"action":  "panic_recovered",
				}).Criticalf("%s: panic serving %s %s: %v\n%s", service, r.Method, r.URL.Path, rec, debug.Stack())
				WriteErrorEnvelope(w, http.StatusInternalServerError, CodeInternal, "internal server error", nil, TraceIDFromContext(ctx))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
