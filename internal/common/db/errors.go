package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	pgx "github.com/jackc/pgx/v4"

	"github.com/AlibekovAA/onion-recipes/internal/observability/metrics"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func extractTableFromOperation(operation string) string {
	operation = strings.ToLower(operation)
	if strings.Contains(operation, "ingredient") {
		return "ingredients"
	}
	if strings.Contains(operation, "recipe") {
		return "recipes"
	}
	if strings.Contains(operation, "user") {
		return "users"
	}
	if strings.Contains(operation, "migrat") {
		return "schema"
	}
	return "unknown"
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

func HandleQueryError(driver string, err error, notFoundErr error, operation string, startTime time.Time) error {
	table := MeasureQueryDuration(driver, operation, startTime)

	if err == nil {
		return nil
	}
	if isNoRows(err) && notFoundErr != nil {
		return notFoundErr
	}
	metrics.DBQueryErrors.WithLabelValues(driver, operation, table, fmt.Sprintf("%T", err)).Inc()
	return fmt.Errorf("failed to %s: %w", operation, err)
}

func HandleExecError(driver string, err error, operation string, startTime time.Time) error {
	table := MeasureQueryDuration(driver, operation, startTime)

	if err == nil {
		return nil
	}
	metrics.DBQueryErrors.WithLabelValues(driver, operation, table, fmt.Sprintf("%T", err)).Inc()
	return fmt.Errorf("failed to %s: %w", operation, err)
}

func MeasureQueryDuration(driver, operation string, startTime time.Time) string {
	table := extractTableFromOperation(operation)
	metrics.DBQueryDurationSeconds.WithLabelValues(driver, operation, table).Observe(time.Since(startTime).Seconds())
	return table
}
