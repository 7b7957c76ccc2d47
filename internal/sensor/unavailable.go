package sensor

import (
	"context"
	"time"
)

// Unavailable is a Store for hosts without any sensor hardware or dump file.
// Every query reports denied authorization, so each delta category comes back
// empty and syncing proceeds with user-entered events only.
type Unavailable struct{}

func NewUnavailable() *Unavailable { return &Unavailable{} }

func (Unavailable) RequestAuthorization(ctx context.Context) error { return nil }

func (Unavailable) QuerySamples(ctx context.Context, c Category, start, end time.Time) ([]Sample, error) {
	return nil, ErrAuthorizationDenied
}

func (Unavailable) QueryWorkouts(ctx context.Context, start, end time.Time) ([]Workout, error) {
	return nil, ErrAuthorizationDenied
}

func (Unavailable) QueryStatistic(ctx context.Context, c Category, start, end time.Time, agg Aggregation) (*float64, error) {
	return nil, ErrAuthorizationDenied
}
