package http

import (
	"net/http"

	"github.com/AlibekovAA/onion-recipes/internal/common/constants"
	"github.com/AlibekovAA/onion-recipes/internal/common/httpmetrics"
	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
)

// BuildBaseHandler wraps handler with the shared middleware chain. limiter
// may be nil.
func BuildBaseHandler(appName string, log *logger.Logger, limiter *RateLimiter, handler http.Handler) http.Handler {
	collector := httpmetrics.New(appName)
	recovery := RecoveryMiddleware(appName, log)
	maxRequestSize := MaxRequestSizeMiddleware(appName, constants.DefaultMaxRequestSize, log)
	security := SecurityHeadersMiddleware("")

	inner := collector.Wrap(handler)
	if limiter != nil {
		inner = limiter.Middleware()(inner)
	}

	return security(TraceIDMiddleware(recovery(maxRequestSize(inner))))
}
