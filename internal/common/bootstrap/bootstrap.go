package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/onion-recipes/internal/common/config"
	"github.com/AlibekovAA/onion-recipes/internal/common/db"
	"github.com/AlibekovAA/onion-recipes/internal/common/fakedata"
	"github.com/AlibekovAA/onion-recipes/internal/common/fixtures"
	commonhttp "github.com/AlibekovAA/onion-recipes/internal/common/http"
	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
	foodservice "github.com/AlibekovAA/onion-recipes/internal/food/service"
	reciperepo "github.com/AlibekovAA/onion-recipes/internal/recipe/repository"
	userrepo "github.com/AlibekovAA/onion-recipes/internal/user/repository"
)

var ErrNoDatabase = errors.New("command requires the postgres or sqlite repository")

type App struct {
	Config    config.Config
	Log       *logger.Logger
	Generator *fakedata.Generator
	Services  foodservice.Services

	UserRepo   userrepo.Repository
	RecipeRepo reciperepo.Repository

	// Writers are set for the database-backed repositories only.
	UserWriter   userrepo.Writer
	RecipeWriter reciperepo.Writer

	Fixtures *fixtures.Store
	Pool     *pgxpool.Pool
	SQL      *sql.DB

	HealthChecks map[string]commonhttp.HealthCheck

	closers []func()
}

// Option adjusts the loaded configuration before it is validated.
type Option func(*config.Config)

func NewApp(ctx context.Context, serviceName string, opts ...Option) (*App, error) {
	log, err := initializeLogger(serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.LogLevel != "" {
		log.SetLevel(cfg.LogLevel)
	}

	app := &App{
		Config:       cfg,
		Log:          log,
		Generator:    fakedata.NewGenerator(cfg.Fake.Seed),
		HealthChecks: map[string]commonhttp.HealthCheck{},
	}

	if err := app.initializeRepositories(ctx); err != nil {
		app.Close()
		return nil, err
	}

	app.Services = foodservice.NewServices(app.UserRepo, app.RecipeRepo, foodservice.Options{
		CircuitBreaker: cfg.CircuitBreaker,
		Log:            log,
	})

	log.WithFields(ctx, logger.Fields{
		"repository": cfg.Repository,
		"action":     "bootstrap",
	}).Debug("application initialized")

	return app, nil
}

func (a *App) initializeRepositories(ctx context.Context) error {
	cfg := a.Config
	switch cfg.Repository {
	case config.RepositoryFake:
		a.UserRepo = userrepo.NewFakeRepository(a.Generator, cfg.Fake.FailureRate)
		a.RecipeRepo = reciperepo.NewFakeRepository(a.Generator, cfg.Fake.FailureRate)

	case config.RepositoryMemory:
		store, err := fixtures.NewStore(cfg.FixturesPath, a.Log)
		if err != nil {
			return fmt.Errorf("failed to load fixtures: %w", err)
		}
		a.Fixtures = store
		a.UserRepo = userrepo.NewMemoryRepository(store)
		a.RecipeRepo = reciperepo.NewMemoryRepository(store)

	case config.RepositoryPostgres:
		pool, err := db.NewPool(ctx, a.Log, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		a.Pool = pool
		a.closers = append(a.closers, pool.Close)
		users := userrepo.NewPgRepository(pool, a.Log)
		recipes := reciperepo.NewPgRepository(pool, a.Log)
		a.UserRepo, a.UserWriter = users, users
		a.RecipeRepo, a.RecipeWriter = recipes, recipes
		a.HealthChecks["postgres"] = pool.Ping

	case config.RepositorySQLite:
		conn, err := db.OpenSQLite(ctx, a.Log, cfg.SQLitePath)
		if err != nil {
			return err
		}
		a.SQL = conn
		a.closers = append(a.closers, func() { _ = conn.Close() })
		if err := db.MigrateSQLite(ctx, a.Log, conn); err != nil {
			return err
		}
		users := userrepo.NewSQLiteRepository(conn, a.Log)
		recipes := reciperepo.NewSQLiteRepository(conn, a.Log)
		a.UserRepo, a.UserWriter = users, users
		a.RecipeRepo, a.RecipeWriter = recipes, recipes
		a.HealthChecks["sqlite"] = conn.PingContext
	}
	return nil
}

// Migrate applies the schema to the configured database.
func (a *App) Migrate(ctx context.Context) error {
	switch {
	case a.Pool != nil:
		return db.MigratePostgres(ctx, a.Log, a.Pool)
	case a.SQL != nil:
		return db.MigrateSQLite(ctx, a.Log, a.SQL)
	default:
		return ErrNoDatabase
	}
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	_ = a.Log.Close()
}

func loadConfig(opts []Option) (config.Config, error) {
	cfg := config.Read()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func initializeLogger(serviceName string) (*logger.Logger, error) {
	return logger.New(os.Getenv("LOG_DIR"), serviceName, os.Getenv("LOG_LEVEL"))
}
