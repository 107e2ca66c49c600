package http

import (
	"net/http"
	"strconv"

	"github.com/AlibekovAA/onion-recipes/internal/common/constants"
	"github.com/AlibekovAA/onion-recipes/internal/common/httpmetrics"
	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
	"github.com/AlibekovAA/onion-recipes/internal/observability/metrics"
)

// MaxRequestSizeMiddleware answers 413 when the declared body is larger than
// maxBytes and caps bodies of unknown length at maxBytes.
func MaxRequestSizeMiddleware(service string, maxBytes int64, log *logger.Logger) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = constants.DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				ctx := r.Context()
				path := httpmetrics.NormalizePath(r.URL.Path)
				log.WithFields(ctx, logger.Fields{
					"service":        service,
					"path":           path,
					"content_length": r.ContentLength,
					"action":         "request_too_large",
				}).Warnf("%s: rejected %d byte body (limit %d)", service, r.ContentLength, maxBytes)
				metrics.HTTPErrorsTotal.WithLabelValues(strconv.Itoa(http.StatusRequestEntityTooLarge), path, r.Method).Inc()
				WriteErrorEnvelope(w, http.StatusRequestEntityTooLarge, CodeRequestTooLarge, "request body too large", nil, TraceIDFromContext(ctx))
				return
			}

			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
