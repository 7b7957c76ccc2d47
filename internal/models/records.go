package models

import "time"

// Normalized records are the sensor-derived side of a sync payload. Every
// record carries its source-system identifier so the backend can dedupe
// overlapping delta windows, and every value is already converted to the
// category's canonical unit (glucose mg/dL, weight kg, distance miles,
// energy kcal). Records are never mutated after construction.

// EGVReading is one estimated glucose value in mg/dL.
type EGVReading struct {
	MeasuredAt  time.Time `json:"measured_at"`
	GlucoseMgdl Dec2      `json:"glucose_mgdl"`
	Source      string    `json:"source"`
	SourceId    string    `json:"source_id"`
}

// WorkoutSummary is one workout interval with optional enrichment values.
// Enrichment fields stay nil when the sensor store has no data for the
// workout's own time range.
type WorkoutSummary struct {
	StartAt          time.Time `json:"start_at"`
	EndAt            time.Time `json:"end_at"`
	ActivityType     string    `json:"activity_type"`
	DurationMin      Dec2      `json:"duration_min"`
	DistanceMiles    *Dec3     `json:"distance_miles"`
	AvgHRBpm         *Dec2     `json:"avg_hr_bpm"`
	ActiveEnergyKcal *Dec2     `json:"active_energy_kcal"`
	Source           string    `json:"source"`
	SourceId         string    `json:"source_id"`
}

// WeightReading is one body-mass measurement in kilograms.
type WeightReading struct {
	MeasuredAt time.Time `json:"measured_at"`
	WeightKg   Dec2      `json:"weight_kg"`
	Source     string    `json:"source"`
	SourceId   string    `json:"source_id"`
	Notes      string    `json:"notes,omitempty"`
}

// Sleep stages as stored by the backend. Generic "asleep" samples that the
// source could not classify further map to SleepStageAsleep.
const (
	SleepStageDeep   = "Deep"
	SleepStageREM    = "REM"
	SleepStageCore   = "Core"
	SleepStageAsleep = "Asleep"
)

// SleepSession is one classified sleep interval.
type SleepSession struct {
	StartAt  time.Time `json:"start_at"`
	EndAt    time.Time `json:"end_at"`
	Stage    string    `json:"stage"`
	Source   string    `json:"source"`
	SourceId string    `json:"source_id"`
}

// Metric types and units for point-in-time restorative metrics.
const (
	MetricTypeHRV = "HRV"

	UnitMilliseconds = "ms"
)

// HealthMetric is one point-in-time metric such as heart-rate variability.
type HealthMetric struct {
	MeasuredAt time.Time `json:"measured_at"`
	MetricType string    `json:"metric_type"`
	Value      Dec4      `json:"value"`
	Unit       string    `json:"unit"`
	Source     string    `json:"source"`
	SourceId   string    `json:"source_id"`
}
