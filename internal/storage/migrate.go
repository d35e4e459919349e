package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/finance/*.sql migrations/users/*.sql
var migrationsFS embed.FS

// Schema selects one of the embedded migration sets.
type Schema string

const (
	// FinanceSchema holds transactions and budgets.
	FinanceSchema Schema = "finance"
	// UsersSchema holds credentials and lives in its own file.
	UsersSchema Schema = "users"
)

func RunMigrations(dbPath string, schema Schema) error {
	// Create a separate connection for migrations to avoid interfering with the main connection
	migrateDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	d, err := iofs.New(migrationsFS, path.Join("migrations", string(schema)))
	if err != nil {
		return fmt.Errorf("create iofs source for %s: %w", schema, err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run %s migrations: %w", schema, err)
	}

	return nil
}
