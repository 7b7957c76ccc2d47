// Package normalize converts raw sensor-store samples into the canonical
// record shapes the backend stores.
//
// # Overview
//
// Every category has one fixed canonical unit: glucose mg/dL, weight kg,
// distance miles, energy kcal, HRV ms. The functions here are pure; they
// take whatever unit the source recorded and return records already
// converted, tagged with the healthkit source and the source-system sample
// identifier for backend-side dedup.
//
// # Error Handling
//
// A sample that does not decode into its expected shape (missing timestamp,
// unknown unit, blank sleep stage) is dropped, never fatal. Each function
// returns the number of dropped samples so callers can log it. Values are
// never clamped: out-of-physiological-range readings pass through, range
// validation is the backend's concern.
package normalize

import (
	"strings"

	"github.com/surya-health-tech/Glucose-Curve/internal/common"
	"github.com/surya-health-tech/Glucose-Curve/internal/models"
	"github.com/surya-health-tech/Glucose-Curve/internal/sensor"
)

// Conversion factors between source units and canonical units.
const (
	MgdlPerMmolL  = 18.0
	KgPerPound    = 0.45359237
	MetersPerMile = 1609.344
)

// Unit strings as the sensor store reports them.
const (
	unitMgdl   = "mg/dL"
	unitMmolL  = "mmol/L"
	unitKg     = "kg"
	unitGram   = "g"
	unitPound  = "lb"
	unitMillis = "ms"
)

// Glucose converts glucose samples to mg/dL readings. mg/dL values pass
// through untouched; mmol/L values are multiplied by 18.0.
func Glucose(samples []sensor.Sample) ([]models.EGVReading, int) {
	result := make([]models.EGVReading, 0, len(samples))
	dropped := 0

	for _, s := range samples {
		if s.Start.IsZero() {
			dropped++
			continue
		}
		var mgdl float64
		switch s.Unit {
		case unitMgdl:
			mgdl = s.Value
		case unitMmolL:
			mgdl = s.Value * MgdlPerMmolL
		default:
			dropped++
			continue
		}
		result = append(result, models.EGVReading{
			MeasuredAt:  s.Start,
			GlucoseMgdl: models.Dec2(mgdl),
			Source:      common.SourceHealthKit,
			SourceId:    s.UID,
		})
	}
	return result, dropped
}

// Weight converts body-mass samples to kilograms.
func Weight(samples []sensor.Sample) ([]models.WeightReading, int) {
	result := make([]models.WeightReading, 0, len(samples))
	dropped := 0

	for _, s := range samples {
		if s.Start.IsZero() {
			dropped++
			continue
		}
		var kg float64
		switch s.Unit {
		case unitKg:
			kg = s.Value
		case unitGram:
			kg = s.Value / 1000
		case unitPound:
			kg = s.Value * KgPerPound
		default:
			dropped++
			continue
		}
		result = append(result, models.WeightReading{
			MeasuredAt: s.Start,
			WeightKg:   models.Dec2(kg),
			Source:     common.SourceHealthKit,
			SourceId:   s.UID,
		})
	}
	return result, dropped
}

// Sleep classifies sleep-analysis samples into staged sessions. In-bed and
// awake intervals are not sleep and are silently filtered; stages the source
// could not classify further come back as the generic Asleep stage.
func Sleep(samples []sensor.Sample) ([]models.SleepSession, int) {
	result := make([]models.SleepSession, 0, len(samples))
	dropped := 0

	for _, s := range samples {
		if s.Start.IsZero() || s.End.IsZero() {
			dropped++
			continue
		}
		stage, ok := sleepStage(s.Stage)
		if !ok {
			dropped++
			continue
		}
		if stage == "" {
			// InBed / Awake: a known shape, just not sleep.
			continue
		}
		result = append(result, models.SleepSession{
			StartAt:  s.Start,
			EndAt:    s.End,
			Stage:    stage,
			Source:   common.SourceHealthKit,
			SourceId: s.UID,
		})
	}
	return result, dropped
}

// sleepStage maps the source's categorical value to a stored stage. The
// empty stage with ok=true marks awake/in-bed intervals to be filtered.
func sleepStage(raw string) (string, bool) {
	switch raw {
	case "AsleepDeep":
		return models.SleepStageDeep, true
	case "AsleepREM":
		return models.SleepStageREM, true
	case "AsleepCore":
		return models.SleepStageCore, true
	case "Asleep", "AsleepUnspecified":
		return models.SleepStageAsleep, true
	case "InBed", "Awake":
		return "", true
	default:
		return "", false
	}
}

// HRV converts heart-rate-variability (SDNN) samples into HRV health
// metrics in milliseconds.
func HRV(samples []sensor.Sample) ([]models.HealthMetric, int) {
	result := make([]models.HealthMetric, 0, len(samples))
	dropped := 0

	for _, s := range samples {
		if s.Start.IsZero() || s.Unit != unitMillis {
			dropped++
			continue
		}
		result = append(result, models.HealthMetric{
			MeasuredAt: s.Start,
			MetricType: models.MetricTypeHRV,
			Value:      models.Dec4(s.Value),
			Unit:       models.UnitMilliseconds,
			Source:     common.SourceHealthKit,
			SourceId:   s.UID,
		})
	}
	return result, dropped
}

// Workout builds the base summary for one raw workout: interval, activity
// type, and duration in minutes. Enrichment fields (distance, average heart
// rate, active energy) are filled in by the caller from queries scoped to
// the workout's own interval.
func Workout(w sensor.Workout) models.WorkoutSummary {
	return models.WorkoutSummary{
		StartAt:      w.Start,
		EndAt:        w.End,
		ActivityType: w.ActivityType,
		DurationMin:  models.Dec2(w.End.Sub(w.Start).Minutes()),
		Source:       common.SourceHealthKit,
		SourceId:     w.UID,
	}
}

// MilesFromMeters converts a distance in meters to miles.
func MilesFromMeters(m float64) float64 {
	return m / MetersPerMile
}

// DistanceCategory returns the sample category that accumulates distance
// for the given workout activity type. Activity types without a matching
// distance category (strength training, yoga, ...) return ok=false.
func DistanceCategory(activityType string) (sensor.Category, bool) {
	switch strings.ToLower(activityType) {
	case "walking", "running", "hiking":
		return sensor.CategoryDistanceWalkingRunning, true
	case "cycling":
		return sensor.CategoryDistanceCycling, true
	case "swimming":
		return sensor.CategoryDistanceSwimming, true
	default:
		return "", false
	}
}
