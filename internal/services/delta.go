package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/surya-health-tech/Glucose-Curve/internal/logging"
	"github.com/surya-health-tech/Glucose-Curve/internal/models"
	"github.com/surya-health-tech/Glucose-Curve/internal/normalize"
	"github.com/surya-health-tech/Glucose-Curve/internal/sensor"
)

// Concurrent workout enrichments per attempt.
const maxWorkoutEnrichments = 4

// Delta holds the normalized sensor records for one [since, until) window.
// Dropped counts raw samples that failed to decode and were skipped.
type Delta struct {
	EGVReadings    []models.EGVReading
	Workouts       []models.WorkoutSummary
	WeightReadings []models.WeightReading
	SleepSessions  []models.SleepSession
	HealthMetrics  []models.HealthMetric

	Dropped int
}

// DeltaFetcher reads every sensor category for a delta window in parallel.
//
// A category the user has not authorized contributes nothing; any other
// failure aborts the whole fetch, because surfacing a partial delta as
// success would silently lose the missing category forever.
type DeltaFetcher struct {
	store sensor.Store
	log   logging.Logger
}

func NewDeltaFetcher(store sensor.Store, log logging.Logger) *DeltaFetcher {
	return &DeltaFetcher{store: store, log: log.With("module", "delta_fetcher")}
}

// Fetch queries all categories over [since, until) and normalizes the
// results. Slices come back sorted by time so two fetches over the same
// window with the same store contents serialize identically.
func (f *DeltaFetcher) Fetch(ctx context.Context, since, until time.Time) (*Delta, error) {
	delta := &Delta{}

	var droppedGlucose, droppedWeight, droppedSleep, droppedHRV int

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		samples, err := f.querySamples(gctx, sensor.CategoryGlucose, since, until)
		if err != nil {
			return err
		}
		delta.EGVReadings, droppedGlucose = normalize.Glucose(samples)
		return nil
	})

	g.Go(func() error {
		samples, err := f.querySamples(gctx, sensor.CategoryBodyMass, since, until)
		if err != nil {
			return err
		}
		delta.WeightReadings, droppedWeight = normalize.Weight(samples)
		return nil
	})

	g.Go(func() error {
		samples, err := f.querySamples(gctx, sensor.CategorySleepAnalysis, since, until)
		if err != nil {
			return err
		}
		delta.SleepSessions, droppedSleep = normalize.Sleep(samples)
		return nil
	})

	g.Go(func() error {
		samples, err := f.querySamples(gctx, sensor.CategoryHRV, since, until)
		if err != nil {
			return err
		}
		delta.HealthMetrics, droppedHRV = normalize.HRV(samples)
		return nil
	})

	g.Go(func() error {
		workouts, err := f.fetchWorkouts(gctx, since, until)
		if err != nil {
			return err
		}
		delta.Workouts = workouts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	delta.Dropped = droppedGlucose + droppedWeight + droppedSleep + droppedHRV
	if delta.Dropped > 0 {
		f.log.Warn(ctx, "malformed samples dropped", "count", delta.Dropped)
	}

	sortDelta(delta)
	return delta, nil
}

// fetchWorkouts lists the window's workouts and enriches each one
// concurrently.
func (f *DeltaFetcher) fetchWorkouts(ctx context.Context, since, until time.Time) ([]models.WorkoutSummary, error) {
	workouts, err := f.store.QueryWorkouts(ctx, since, until)
	if err != nil {
		if errors.Is(err, sensor.ErrAuthorizationDenied) {
			f.log.Warn(ctx, "workouts not authorized, skipping")
			return []models.WorkoutSummary{}, nil
		}
		return nil, fmt.Errorf("failed to query workouts: %w", err)
	}

	summaries := make([]models.WorkoutSummary, len(workouts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkoutEnrichments)

	for i, w := range workouts {
		i, w := i, w
		g.Go(func() error {
			summary, err := f.enrichWorkout(gctx, w)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// enrichWorkout fills in average heart rate, active energy, and distance
// for one workout. Every statistics query is bounded to the workout's own
// interval, not the delta window. Totals the recording app already
// reported are trusted as-is.
func (f *DeltaFetcher) enrichWorkout(ctx context.Context, w sensor.Workout) (models.WorkoutSummary, error) {
	summary := normalize.Workout(w)

	if w.EnergyKcal != nil {
		summary.ActiveEnergyKcal = models.Dec2Ptr(*w.EnergyKcal)
	}
	if w.DistanceMeters != nil {
		summary.DistanceMiles = models.Dec3Ptr(normalize.MilesFromMeters(*w.DistanceMeters))
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		avg, err := f.queryStatistic(gctx, sensor.CategoryHeartRate, w.Start, w.End, sensor.AggregationAverage)
		if err != nil {
			return err
		}
		if avg != nil {
			summary.AvgHRBpm = models.Dec2Ptr(*avg)
		}
		return nil
	})

	if w.EnergyKcal == nil {
		g.Go(func() error {
			total, err := f.queryStatistic(gctx, sensor.CategoryActiveEnergy, w.Start, w.End, sensor.AggregationCumulativeSum)
			if err != nil {
				return err
			}
			if total != nil {
				summary.ActiveEnergyKcal = models.Dec2Ptr(*total)
			}
			return nil
		})
	}

	if w.DistanceMeters == nil {
		if category, ok := normalize.DistanceCategory(w.ActivityType); ok {
			g.Go(func() error {
				meters, err := f.queryStatistic(gctx, category, w.Start, w.End, sensor.AggregationCumulativeSum)
				if err != nil {
					return err
				}
				if meters != nil {
					summary.DistanceMiles = models.Dec3Ptr(normalize.MilesFromMeters(*meters))
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return models.WorkoutSummary{}, err
	}

	return summary, nil
}

func (f *DeltaFetcher) querySamples(ctx context.Context, c sensor.Category, since, until time.Time) ([]sensor.Sample, error) {
	samples, err := f.store.QuerySamples(ctx, c, since, until)
	if err != nil {
		if errors.Is(err, sensor.ErrAuthorizationDenied) {
			f.log.Warn(ctx, "category not authorized, skipping", "category", string(c))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query %s: %w", c, err)
	}
	return samples, nil
}

func (f *DeltaFetcher) queryStatistic(ctx context.Context, c sensor.Category, start, end time.Time, agg sensor.Aggregation) (*float64, error) {
	value, err := f.store.QueryStatistic(ctx, c, start, end, agg)
	if err != nil {
		if errors.Is(err, sensor.ErrAuthorizationDenied) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query %s statistic: %w", c, err)
	}
	return value, nil
}

// sortDelta orders every category by timestamp, then source id, so repeated
// attempts over the same window marshal byte-for-byte identically.
func sortDelta(d *Delta) {
	sort.Slice(d.EGVReadings, func(i, j int) bool {
		a, b := d.EGVReadings[i], d.EGVReadings[j]
		if !a.MeasuredAt.Equal(b.MeasuredAt) {
			return a.MeasuredAt.Before(b.MeasuredAt)
		}
		return a.SourceId < b.SourceId
	})
	sort.Slice(d.Workouts, func(i, j int) bool {
		a, b := d.Workouts[i], d.Workouts[j]
		if !a.StartAt.Equal(b.StartAt) {
			return a.StartAt.Before(b.StartAt)
		}
		return a.SourceId < b.SourceId
	})
	sort.Slice(d.WeightReadings, func(i, j int) bool {
		a, b := d.WeightReadings[i], d.WeightReadings[j]
		if !a.MeasuredAt.Equal(b.MeasuredAt) {
			return a.MeasuredAt.Before(b.MeasuredAt)
		}
		return a.SourceId < b.SourceId
	})
	sort.Slice(d.SleepSessions, func(i, j int) bool {
		a, b := d.SleepSessions[i], d.SleepSessions[j]
		if !a.StartAt.Equal(b.StartAt) {
			return a.StartAt.Before(b.StartAt)
		}
		return a.SourceId < b.SourceId
	})
	sort.Slice(d.HealthMetrics, func(i, j int) bool {
		a, b := d.HealthMetrics[i], d.HealthMetrics[j]
		if !a.MeasuredAt.Equal(b.MeasuredAt) {
			return a.MeasuredAt.Before(b.MeasuredAt)
		}
		return a.SourceId < b.SourceId
	})
}
