package watermark

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/surya-health-tech/Glucose-Curve/internal/dbx"
)

// stateKey is the watermark's row in the sync_state table.
const stateKey = "last_sync_watermark"

// timeNow is a test seam.
var timeNow = time.Now

// SQLiteRepository stores the watermark in the sync_state key/value table.
type SQLiteRepository struct {
	db       dbx.DBTX
	lookback time.Duration
}

// NewSQLiteRepository returns a repository bound to db. lookback bounds the
// default watermark for a database that never synced.
func NewSQLiteRepository(db dbx.DBTX, lookback time.Duration) *SQLiteRepository {
	return &SQLiteRepository{db: db, lookback: lookback}
}

func (r *SQLiteRepository) Read(ctx context.Context) (time.Time, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM sync_state WHERE key = ?`, stateKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return timeNow().UTC().Add(-r.lookback), nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read watermark: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse watermark %q: %w", value, err)
	}
	return t, nil
}

func (r *SQLiteRepository) Write(ctx context.Context, t time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sync_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, stateKey, t.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to write watermark: %w", err)
	}
	return nil
}
