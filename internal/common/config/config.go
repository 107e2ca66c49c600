package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AlibekovAA/onion-recipes/internal/common/constants"
	commonerrors "github.com/AlibekovAA/onion-recipes/internal/common/errors"
)

const (
	RepositoryFake     = "fake"
	RepositoryMemory   = "memory"
	RepositoryPostgres = "postgres"
	RepositorySQLite   = "sqlite"
)

type FakeConfig struct {
	FailureRate      float64
	SessionValidRate float64
	Seed             uint64
}

type CircuitBreakerConfig struct {
	Threshold  int32
	Timeout    time.Duration
	ResetAfter time.Duration
}

type Config struct {
	LogDir         string
	LogLevel       string
	HTTPPort       string
	Repository     string
	FixturesPath   string
	DatabaseURL    string
	SQLitePath     string
	JWTSecret      string
	AccessTokenTTL time.Duration
	RequestTimeout time.Duration
	Fake           FakeConfig
	CircuitBreaker CircuitBreakerConfig
}

// Load reads and validates the environment. JWT_SECRET is validated only
// when present; commands that sign or verify tokens call RequireJWTSecret.
func Load() (Config, error) {
	cfg := Read()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Read reads the environment without validating it.
func Read() Config {
	return Config{
		LogDir:         getEnv("LOG_DIR", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HTTPPort:       getEnv("ONION_HTTP_PORT", constants.DefaultHTTPPort),
		Repository:     strings.ToLower(getEnv("ONION_REPOSITORY", constants.DefaultRepositoryMode)),
		FixturesPath:   getEnv("ONION_FIXTURES", ""),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		SQLitePath:     getEnv("ONION_SQLITE_PATH", constants.DefaultSQLitePath),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		AccessTokenTTL: getDurationEnv("ONION_ACCESS_TOKEN_TTL", constants.DefaultAccessTokenTTL),
		RequestTimeout: getDurationEnv("ONION_REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		Fake: FakeConfig{
			FailureRate:      getFloatEnv("ONION_FAKE_FAILURE_RATE", constants.DefaultFakeFailureRate),
			SessionValidRate: getFloatEnv("ONION_FAKE_SESSION_VALID_RATE", constants.DefaultFakeSessionValidRate),
			Seed:             getUint64Env("ONION_FAKE_SEED", 0),
		},
		CircuitBreaker: CircuitBreakerConfig{
			Threshold:  getInt32Env("ONION_CB_THRESHOLD", constants.DefaultCircuitBreakerThreshold),
			Timeout:    getDurationEnv("ONION_CB_TIMEOUT", constants.DefaultCircuitBreakerTimeout),
			ResetAfter: getDurationEnv("ONION_CB_RESET", constants.DefaultCircuitBreakerReset),
		},
	}
}

func (c Config) Validate() error {
	switch c.Repository {
	case RepositoryFake:
	case RepositoryMemory:
		if c.FixturesPath == "" {
			return commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("ONION_FIXTURES is required for %s repository", c.Repository))
		}
	case RepositoryPostgres:
		if c.DatabaseURL == "" {
			return commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("DATABASE_URL is required for %s repository", c.Repository))
		}
	case RepositorySQLite:
		if c.SQLitePath == "" {
			return commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("ONION_SQLITE_PATH is required for %s repository", c.Repository))
		}
	default:
		return commonerrors.ErrInvalidConfig.WithCause(fmt.Errorf("unknown repository %q", c.Repository))
	}

	if err := validateRate("ONION_FAKE_FAILURE_RATE", c.Fake.FailureRate); err != nil {
		return err
	}
	if err := validateRate("ONION_FAKE_SESSION_VALID_RATE", c.Fake.SessionValidRate); err != nil {
		return err
	}

	if c.JWTSecret != "" {
		return validateJWTSecret(c.JWTSecret)
	}
	return nil
}

func (c Config) RequireJWTSecret() error {
	if c.JWTSecret == "" {
		return commonerrors.ErrMissingRequiredEnv.WithCause(errors.New("JWT_SECRET"))
	}
	return validateJWTSecret(c.JWTSecret)
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return commonerrors.ErrInvalidJWTSecret.WithCause(fmt.Errorf("got %d bytes", len(secret)))
	}
	return nil
}

func validateRate(key string, v float64) error {
	if !(v >= 0 && v <= 1) {
		return commonerrors.ErrInvalidConfig.WithCause(fmt.Errorf("%s must be within [0, 1], got %v", key, v))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// getInt32Env falls back on values that do not fit in an int32.
func getInt32Env(key string, fallback int32) int32 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(i)
}

func getUint64Env(key string, fallback uint64) uint64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fallback
	}
	return i
}

func getFloatEnv(key string, fallback float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
