package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surya-health-tech/Glucose-Curve/internal/models"
	"github.com/surya-health-tech/Glucose-Curve/internal/sensor"
)

var t0 = time.Date(2025, 11, 3, 8, 30, 0, 0, time.UTC)

func TestGlucose_MgdlPassesThroughExactly(t *testing.T) {
	got, dropped := Glucose([]sensor.Sample{
		{UID: "g1", Start: t0, Value: 100, Unit: "mg/dL"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, models.Dec2(100.0), got[0].GlucoseMgdl)
	assert.Equal(t, "healthkit", got[0].Source)
	assert.Equal(t, "g1", got[0].SourceId)
	assert.Equal(t, t0, got[0].MeasuredAt)
}

func TestGlucose_MmolConvertsTimes18(t *testing.T) {
	got, dropped := Glucose([]sensor.Sample{
		{UID: "g2", Start: t0, Value: 5.55, Unit: "mmol/L"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, 0, dropped)
	assert.InDelta(t, 99.9, float64(got[0].GlucoseMgdl), 1e-9)
}

func TestGlucose_OutOfRangeValueIsNotClamped(t *testing.T) {
	// проверка диапазона — забота бэкенда
	got, dropped := Glucose([]sensor.Sample{
		{UID: "g3", Start: t0, Value: 1400, Unit: "mg/dL"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, models.Dec2(1400), got[0].GlucoseMgdl)
}

func TestGlucose_MalformedSamplesDroppedNotFatal(t *testing.T) {
	got, dropped := Glucose([]sensor.Sample{
		{UID: "ok", Start: t0, Value: 110, Unit: "mg/dL"},
		{UID: "no-unit", Start: t0, Value: 110},
		{UID: "bad-unit", Start: t0, Value: 110, Unit: "furlongs"},
		{UID: "no-time", Value: 110, Unit: "mg/dL"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, 3, dropped)
	assert.Equal(t, "ok", got[0].SourceId)
}

func TestWeight_ConvertsToKilograms(t *testing.T) {
	got, dropped := Weight([]sensor.Sample{
		{UID: "w1", Start: t0, Value: 82.5, Unit: "kg"},
		{UID: "w2", Start: t0, Value: 82500, Unit: "g"},
		{UID: "w3", Start: t0, Value: 180, Unit: "lb"},
	})
	require.Len(t, got, 3)
	assert.Equal(t, 0, dropped)
	assert.InDelta(t, 82.5, float64(got[0].WeightKg), 1e-9)
	assert.InDelta(t, 82.5, float64(got[1].WeightKg), 1e-9)
	assert.InDelta(t, 81.6466266, float64(got[2].WeightKg), 1e-6)
}

func TestSleep_StageMapping(t *testing.T) {
	end := t0.Add(40 * time.Minute)
	tests := []struct {
		raw  string
		want string
	}{
		{"AsleepDeep", models.SleepStageDeep},
		{"AsleepREM", models.SleepStageREM},
		{"AsleepCore", models.SleepStageCore},
		{"Asleep", models.SleepStageAsleep},
		{"AsleepUnspecified", models.SleepStageAsleep},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, dropped := Sleep([]sensor.Sample{{UID: "s", Start: t0, End: end, Stage: tc.raw}})
			require.Len(t, got, 1)
			assert.Equal(t, 0, dropped)
			assert.Equal(t, tc.want, got[0].Stage)
			assert.Equal(t, t0, got[0].StartAt)
			assert.Equal(t, end, got[0].EndAt)
		})
	}
}

func TestSleep_InBedAndAwakeFilteredSilently(t *testing.T) {
	end := t0.Add(10 * time.Minute)
	got, dropped := Sleep([]sensor.Sample{
		{UID: "s1", Start: t0, End: end, Stage: "InBed"},
		{UID: "s2", Start: t0, End: end, Stage: "Awake"},
		{UID: "s3", Start: t0, End: end, Stage: "AsleepDeep"},
	})
	require.Len(t, got, 1)
	// фильтрация — не ошибка декодирования
	assert.Equal(t, 0, dropped)
	assert.Equal(t, "s3", got[0].SourceId)
}

func TestSleep_UnknownOrBlankStageDropped(t *testing.T) {
	end := t0.Add(10 * time.Minute)
	got, dropped := Sleep([]sensor.Sample{
		{UID: "s1", Start: t0, End: end, Stage: ""},
		{UID: "s2", Start: t0, End: end, Stage: "Hibernating"},
		{UID: "s3", Start: t0, Stage: "AsleepDeep"}, // no end
	})
	assert.Empty(t, got)
	assert.Equal(t, 3, dropped)
}

func TestHRV_MillisecondsMetric(t *testing.T) {
	got, dropped := HRV([]sensor.Sample{
		{UID: "h1", Start: t0, Value: 42.1234, Unit: "ms"},
		{UID: "h2", Start: t0, Value: 10, Unit: "s"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, models.MetricTypeHRV, got[0].MetricType)
	assert.Equal(t, models.UnitMilliseconds, got[0].Unit)
	assert.Equal(t, models.Dec4(42.1234), got[0].Value)
}

func TestWorkout_DurationMinutes(t *testing.T) {
	w := Workout(sensor.Workout{
		UID:          "wk1",
		ActivityType: "Running",
		Start:        t0,
		End:          t0.Add(45 * time.Minute),
	})
	assert.Equal(t, models.Dec2(45), w.DurationMin)
	assert.Equal(t, "Running", w.ActivityType)
	assert.Equal(t, "healthkit", w.Source)
	assert.Nil(t, w.DistanceMiles)
	assert.Nil(t, w.AvgHRBpm)
	assert.Nil(t, w.ActiveEnergyKcal)
}

func TestMilesFromMeters(t *testing.T) {
	assert.InDelta(t, 1.0, MilesFromMeters(1609.344), 1e-9)
	assert.InDelta(t, 3.106856, MilesFromMeters(5000), 1e-6)
}

func TestDistanceCategory_PerActivityType(t *testing.T) {
	tests := []struct {
		activity string
		want     sensor.Category
		ok       bool
	}{
		{"Running", sensor.CategoryDistanceWalkingRunning, true},
		{"walking", sensor.CategoryDistanceWalkingRunning, true},
		{"Hiking", sensor.CategoryDistanceWalkingRunning, true},
		{"Cycling", sensor.CategoryDistanceCycling, true},
		{"Swimming", sensor.CategoryDistanceSwimming, true},
		{"TraditionalStrengthTraining", "", false},
		{"Yoga", "", false},
	}
	for _, tc := range tests {
		got, ok := DistanceCategory(tc.activity)
		assert.Equal(t, tc.ok, ok, tc.activity)
		assert.Equal(t, tc.want, got, tc.activity)
	}
}
