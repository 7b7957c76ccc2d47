package sensor

import (
	"context"
	"errors"
	"time"
)

// Category identifies one sample type in the device health store.
type Category string

const (
	CategoryGlucose       Category = "blood_glucose"
	CategoryBodyMass      Category = "body_mass"
	CategorySleepAnalysis Category = "sleep_analysis"
	CategoryHRV           Category = "heart_rate_variability_sdnn"
	CategoryHeartRate     Category = "heart_rate"
	CategoryActiveEnergy  Category = "active_energy_burned"

	CategoryDistanceWalkingRunning Category = "distance_walking_running"
	CategoryDistanceCycling        Category = "distance_cycling"
	CategoryDistanceSwimming       Category = "distance_swimming"
)

// Aggregation selects how QueryStatistic folds samples over a range.
type Aggregation string

const (
	AggregationAverage       Aggregation = "average"
	AggregationCumulativeSum Aggregation = "cumulative_sum"
)

var (
	// ErrAuthorizationDenied means the user has not granted read access for
	// a category. The delta fetcher treats the category as empty rather
	// than failing the attempt.
	ErrAuthorizationDenied = errors.New("sensor store authorization denied")
)

// Sample is one raw quantity or category sample as the device store reports
// it. Quantity samples carry Value/Unit; sleep-analysis samples carry Stage.
// The normalizer decides whether a sample decodes into its expected shape.
type Sample struct {
	UID   string    `json:"uid"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Value float64   `json:"value,omitempty"`
	Unit  string    `json:"unit,omitempty"`
	Stage string    `json:"stage,omitempty"`
}

// Workout is one raw workout session. Totals reported by the recording app
// are optional; missing ones are recovered via statistics queries scoped to
// the workout interval.
type Workout struct {
	UID            string    `json:"uid"`
	ActivityType   string    `json:"activity_type"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	DistanceMeters *float64  `json:"distance_meters,omitempty"`
	EnergyKcal     *float64  `json:"energy_kcal,omitempty"`
}

// Store is the read capability over the device health-sensor store.
//
// All range queries are half-open: a sample belongs to [start, end) when its
// own start timestamp does. Implementations must be safe for concurrent
// queries; the delta fetcher issues one query per category in parallel.
type Store interface {
	// RequestAuthorization asks the platform for read access once.
	// Re-requesting after a grant is a no-op.
	RequestAuthorization(ctx context.Context) error

	// QuerySamples returns raw samples of one category within [start, end).
	QuerySamples(ctx context.Context, c Category, start, end time.Time) ([]Sample, error)

	// QueryWorkouts returns raw workouts whose start lies within [start, end).
	QueryWorkouts(ctx context.Context, start, end time.Time) ([]Workout, error)

	// QueryStatistic folds samples of one category over [start, end) and
	// returns nil when no samples exist in the range.
	QueryStatistic(ctx context.Context, c Category, start, end time.Time, agg Aggregation) (*float64, error)
}
