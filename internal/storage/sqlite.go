// Package storage implements the finance and credential stores on SQLite.
//
// Each repository owns a *sql.DB pool built from an explicit file path. Every
// operation runs a single statement, so a connection is only held for the
// duration of that statement and a failed statement leaves no partial writes.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"finance/internal/core"
	applog "finance/internal/log"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Option customizes a repository.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used to stamp new transactions.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// openDatabase opens dbPath, creating its directory, and migrates it to schema.
func openDatabase(dbPath string, schema Schema) (*sql.DB, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("%w: empty database path", core.ErrStorageUnavailable)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w: %w", core.ErrStorageUnavailable, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w: %w", core.ErrStorageUnavailable, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w: %w", core.ErrStorageUnavailable, err)
	}

	if err := RunMigrations(dbPath, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", core.ErrStorageUnavailable, err)
	}

	slog.Debug("Opened SQLite database",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldPath, dbPath,
		"schema", string(schema))

	return db, nil
}

// storageError logs a driver failure and tags it as core.ErrStorageUnavailable.
// Cancellation is passed through untagged since the database did nothing wrong.
func storageError(ctx context.Context, op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	slog.ErrorContext(ctx, "Storage operation failed",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldOperation, op,
		applog.FieldError, err)
	return fmt.Errorf("%s: %w: %w", op, core.ErrStorageUnavailable, err)
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
