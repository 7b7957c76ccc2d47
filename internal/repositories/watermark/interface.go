package watermark

import (
	"context"
	"time"
)

// Repository persists the end timestamp of the last acknowledged sync
// window. The delta fetcher reads it; only the sync orchestrator writes it,
// and only after the backend acknowledged an attempt.
type Repository interface {
	// Read returns the current watermark. When no sync ever succeeded it
	// returns now minus the bounded lookback window, so the first delta
	// pull never walks the whole sample history.
	Read(ctx context.Context) (time.Time, error)

	// Write stores a new watermark. Values never move backwards in normal
	// operation; the orchestrator always writes the end of the window it
	// just synced.
	Write(ctx context.Context, t time.Time) error
}
