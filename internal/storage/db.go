// Package storage opens the local client database and wires the
// repositories the sync engine runs on.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/surya-health-tech/Glucose-Curve/internal/migrations"
	"github.com/surya-health-tech/Glucose-Curve/internal/repositories/outbox"
	"github.com/surya-health-tech/Glucose-Curve/internal/repositories/reference"
	"github.com/surya-health-tech/Glucose-Curve/internal/repositories/watermark"
)

// Repositories bundles the repositories backed by one client database.
type Repositories struct {
	Outbox    outbox.Repository
	Watermark watermark.Repository
	Reference reference.Repository

	db *sql.DB
}

// RunMigrations applies the embedded goose migrations. Safe to call on an
// already-migrated database.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the database at dsn, migrates it,
// and returns the repository bundle. lookback bounds the default watermark
// on a database that has never synced.
func InitDatabase(ctx context.Context, dsn string, lookback time.Duration) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Repositories{
		Outbox:    outbox.NewSQLiteRepository(db),
		Watermark: watermark.NewSQLiteRepository(db, lookback),
		Reference: reference.NewSQLiteRepository(db),
		db:        db,
	}, nil
}

// Close releases the underlying database handle.
func (r *Repositories) Close() error {
	return r.db.Close()
}
