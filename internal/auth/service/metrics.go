package service

import (
	"strconv"

	"github.com/AlibekovAA/onion-recipes/internal/observability/metrics"
)

func incrementAccessTokensIssued() {
	metrics.AccessTokensIssued.Inc()
}

func recordSessionResolved(source string, valid bool) {
	metrics.SessionsResolvedTotal.WithLabelValues(source, strconv.FormatBool(valid)).Inc()
}
