// Package sqlite implements the storage ports on a single SQLite
// database file.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/lborres/stele/core"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Adapter holds the process-wide store handle. Create it once at
// startup and pass it by reference; do not wrap it in a package-level
// singleton.
type Adapter struct {
	db *sql.DB
}

var _ core.StorageAdapter = (*Adapter)(nil)

// Open opens (or creates) the database file, enables foreign keys, and
// constrains the pool to one connection so writers serialize cleanly.
func Open(path string) (*Adapter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	// Single connection: the store is single-writer and the same
	// handle serves reads of committed state.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &Adapter{db: db}, nil
}

// Migrate applies the embedded schema migrations.
func (a *Adapter) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, a.db, "migrations"); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func (a *Adapter) Close() error {
	return a.db.Close()
}
