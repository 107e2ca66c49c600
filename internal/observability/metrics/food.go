package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FoodRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "food_http_requests_total",
			Help: "Total number of food HTTP requests",
		},
		[]string{"method", "path"},
	)

	FoodRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "food_http_requests_in_flight",
			Help: "Number of food HTTP requests currently being processed",
		},
	)

	FoodRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "food_http_request_duration_seconds",
			Help:    "Duration of food HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	GetRecipesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "food_get_recipes_total",
			Help: "Total number of get recipes use case calls by outcome",
		},
		[]string{"outcome"},
	)

	GetRecipesDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "food_get_recipes_duration_seconds",
			Help:    "Duration of get recipes use case calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecipesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "food_recipes_returned",
			Help:    "Number of recipes returned per successful call",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 25, 50},
		},
	)

	FakeFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fake_repository_failures_total",
			Help: "Total number of fabricated repository failures",
		},
		[]string{"repository"},
	)

	FixtureReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fixture_reloads_total",
			Help: "Total number of fixture reloads by result",
		},
		[]string{"result"},
	)

	SessionsResolvedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sessions_resolved_total",
			Help: "Total number of sessions resolved by source and validity",
		},
		[]string{"source", "valid"},
	)

	AccessTokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "access_tokens_issued_total",
			Help: "Total number of access tokens issued",
		},
	)
)
