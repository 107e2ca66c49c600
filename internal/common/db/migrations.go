package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS recipes (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		prep_hours INTEGER NOT NULL CHECK (prep_hours >= 0),
		prep_minutes INTEGER NOT NULL CHECK (prep_minutes BETWEEN 0 AND 59),
		cook_hours INTEGER NOT NULL CHECK (cook_hours >= 0),
		cook_minutes INTEGER NOT NULL CHECK (cook_minutes BETWEEN 0 AND 59),
		method TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ingredients (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS recipe_ingredients (
		recipe_id INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		ingredient_id INTEGER NOT NULL REFERENCES ingredients(id),
		kind TEXT NOT NULL CHECK (kind IN ('weight', 'portion', 'amount')),
		grams INTEGER,
		portion DOUBLE PRECISION,
		amount SMALLINT CHECK (amount BETWEEN 0 AND 255),
		PRIMARY KEY (recipe_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS user_recipes (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		recipe_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (user_id, position)
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS recipes (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		prep_hours INTEGER NOT NULL CHECK (prep_hours >= 0),
		prep_minutes INTEGER NOT NULL CHECK (prep_minutes BETWEEN 0 AND 59),
		cook_hours INTEGER NOT NULL CHECK (cook_hours >= 0),
		cook_minutes INTEGER NOT NULL CHECK (cook_minutes BETWEEN 0 AND 59),
		method TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ingredients (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS recipe_ingredients (
		recipe_id INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		ingredient_id INTEGER NOT NULL REFERENCES ingredients(id),
		kind TEXT NOT NULL CHECK (kind IN ('weight', 'portion', 'amount')),
		grams INTEGER,
		portion REAL,
		amount INTEGER CHECK (amount BETWEEN 0 AND 255),
		PRIMARY KEY (recipe_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS user_recipes (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		recipe_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (user_id, position)
	)`,
}

func MigratePostgres(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool) error {
	for i, query := range postgresSchema {
		start := time.Now()
		_, err := pool.Exec(ctx, query)
		if err := HandleExecError(DriverPostgres, err, "migrate schema", start); err != nil {
			return err
		}
		log.Debugf("postgres schema statement %d/%d applied", i+1, len(postgresSchema))
	}
	log.Info("postgres schema is up to date")
	return nil
}

func MigrateSQLite(ctx context.Context, log *logger.Logger, conn *sql.DB) error {
	for i, query := range sqliteSchema {
		start := time.Now()
		_, err := conn.ExecContext(ctx, query)
		if err := HandleExecError(DriverSQLite, err, "migrate schema", start); err != nil {
			return err
		}
		log.Debugf("sqlite schema statement %d/%d applied", i+1, len(sqliteSchema))
	}
	log.Info("sqlite schema is up to date")
	return nil
}
