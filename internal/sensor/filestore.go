package sensor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// deniedWorkouts is the key used in a dump's denied list to simulate missing
// workout authorization (workouts are not a sample category).
const deniedWorkouts = "workouts"

// dump is the on-disk snapshot shape read by FileStore.
type dump struct {
	Denied   []string              `json:"denied,omitempty"`
	Samples  map[Category][]Sample `json:"samples"`
	Workouts []Workout             `json:"workouts"`
}

// FileStore serves sensor queries from a JSON snapshot exported off a
// device. It stands in for the on-device store during development and in
// tests; the engine itself cannot tell the difference.
type FileStore struct {
	samples    map[Category][]Sample
	workouts   []Workout
	denied     map[string]struct{}
	authorized bool
}

// NewFileStore loads the snapshot at path.
func NewFileStore(path string) (*FileStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sensor dump: %w", err)
	}

	var d dump
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse sensor dump: %w", err)
	}

	denied := make(map[string]struct{}, len(d.Denied))
	for _, c := range d.Denied {
		denied[c] = struct{}{}
	}

	samples := d.Samples
	if samples == nil {
		samples = map[Category][]Sample{}
	}

	return &FileStore{samples: samples, workouts: d.Workouts, denied: denied}, nil
}

func (s *FileStore) RequestAuthorization(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// Already granted: asking again is a no-op.
	s.authorized = true
	return nil
}

func (s *FileStore) QuerySamples(ctx context.Context, c Category, start, end time.Time) ([]Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := s.denied[string(c)]; ok {
		return nil, ErrAuthorizationDenied
	}

	var result []Sample
	for _, sample := range s.samples[c] {
		if inRange(sample.Start, start, end) {
			result = append(result, sample)
		}
	}
	return result, nil
}

func (s *FileStore) QueryWorkouts(ctx context.Context, start, end time.Time) ([]Workout, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := s.denied[deniedWorkouts]; ok {
		return nil, ErrAuthorizationDenied
	}

	var result []Workout
	for _, w := range s.workouts {
		if inRange(w.Start, start, end) {
			result = append(result, w)
		}
	}
	return result, nil
}

func (s *FileStore) QueryStatistic(ctx context.Context, c Category, start, end time.Time, agg Aggregation) (*float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := s.denied[string(c)]; ok {
		return nil, ErrAuthorizationDenied
	}

	var sum float64
	var n int
	for _, sample := range s.samples[c] {
		if !inRange(sample.Start, start, end) {
			continue
		}
		sum += sample.Value
		n++
	}
	if n == 0 {
		return nil, nil
	}

	var v float64
	switch agg {
	case AggregationAverage:
		v = sum / float64(n)
	case AggregationCumulativeSum:
		v = sum
	default:
		return nil, fmt.Errorf("unsupported aggregation: %s", agg)
	}
	return &v, nil
}

// inRange reports whether ts falls inside the half-open window [start, end).
func inRange(ts, start, end time.Time) bool {
	return !ts.Before(start) && ts.Before(end)
}
