package constants

import "time"

const (
	JWTSecretMinLength = 32

	DefaultMaxRequestSize = 1 << 20

	DefaultFakeFailureRate      = 0.5
	DefaultFakeSessionValidRate = 0.8
	FakeUserMaxRecipes          = 5
	FakeRecipesMin              = 2
	FakeRecipesMax              = 4
	FakeIngredientsMin          = 1
	FakeIngredientsMax          = 3

	DefaultSeedUsers       = 10
	DefaultSeedConcurrency = 4

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort       = "8080"
	DefaultRepositoryMode = "fake"
	DefaultSQLitePath     = "onion.db"

	DefaultCircuitBreakerThreshold = 5
	DefaultCircuitBreakerTimeout   = 5 * time.Second
	DefaultCircuitBreakerReset     = 10 * time.Second

	DefaultRequestTimeout = 5 * time.Second
	DefaultAccessTokenTTL = 30 * time.Minute

	RateLimitCleanupInterval          = 5 * time.Minute
	RateLimitGeneralRequestsPerSecond = 20
	RateLimitGeneralBurst             = 40

	FixtureReloadDebounce = 200 * time.Millisecond

	LoggerDefaultDir = "/var/log/onion-recipes"
	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
