package outbox

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surya-health-tech/Glucose-Curve/internal/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE outbox_meals (
  client_uuid      TEXT PRIMARY KEY,
  eaten_at         TEXT NOT NULL,
  meal_template_id INTEGER,
  notes            TEXT NOT NULL DEFAULT '',
  items            TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE outbox_medications (
  client_uuid TEXT PRIMARY KEY,
  taken_at    TEXT NOT NULL,
  option_id   INTEGER NOT NULL,
  notes       TEXT NOT NULL DEFAULT ''
);
CREATE TABLE outbox_exercise_sets (
  client_uuid  TEXT PRIMARY KEY,
  performed_at TEXT NOT NULL,
  template_id  INTEGER,
  name         TEXT NOT NULL,
  reps         INTEGER NOT NULL,
  weight_kg    REAL NOT NULL,
  source       TEXT NOT NULL DEFAULT 'manual'
);
`)
	require.NoError(t, err)
	return db
}

var eatenAt = time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)

func TestAppendMeal_RoundTripsThroughSnapshot(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	tmpl := int64(3)
	meal := &models.MealEvent{
		ClientUUID:     "m-1",
		EatenAt:        eatenAt,
		MealTemplateId: &tmpl,
		Notes:          "breakfast",
		Items: []models.MealItem{
			{FoodItemId: 7, Grams: 120, SortOrder: 0},
			{FoodItemId: 9, Grams: 30.5, SortOrder: 1},
		},
	}
	require.NoError(t, r.AppendMeal(ctx, meal))

	snap, err := r.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Meals, 1)

	got := snap.Meals[0]
	assert.Equal(t, "m-1", got.ClientUUID)
	assert.Equal(t, eatenAt, got.EatenAt)
	require.NotNil(t, got.MealTemplateId)
	assert.Equal(t, int64(3), *got.MealTemplateId)
	assert.Equal(t, "breakfast", got.Notes)
	assert.Equal(t, meal.Items, got.Items)
}

func TestAppendMeal_NilTemplateAndEmptyItems(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.AppendMeal(ctx, &models.MealEvent{
		ClientUUID: "m-2",
		EatenAt:    eatenAt,
		Items:      []models.MealItem{},
	}))

	snap, err := r.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Meals, 1)
	assert.Nil(t, snap.Meals[0].MealTemplateId)
	assert.Empty(t, snap.Meals[0].Items)
}

func TestAppendMedicationAndExerciseSet_RoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.AppendMedication(ctx, &models.MedicationEvent{
		ClientUUID: "d-1",
		TakenAt:    eatenAt,
		OptionId:   5,
		Notes:      "after lunch",
	}))
	require.NoError(t, r.AppendExerciseSet(ctx, &models.ExerciseSet{
		ClientUUID:  "e-1",
		PerformedAt: eatenAt,
		Name:        "Deadlift",
		Reps:        5,
		WeightKg:    102.5,
		Source:      "manual",
	}))

	snap, err := r.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Medications, 1)
	require.Len(t, snap.ExerciseSets, 1)

	med := snap.Medications[0]
	assert.Equal(t, int64(5), med.OptionId)
	assert.Equal(t, "after lunch", med.Notes)

	set := snap.ExerciseSets[0]
	assert.Equal(t, "Deadlift", set.Name)
	assert.Equal(t, 5, set.Reps)
	assert.Equal(t, models.Dec2(102.5), set.WeightKg)
	assert.Nil(t, set.TemplateId)
	assert.Equal(t, "manual", set.Source)
}

func TestSnapshot_PreservesInsertionOrder(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, r.AppendMedication(ctx, &models.MedicationEvent{
			ClientUUID: id,
			TakenAt:    eatenAt.Add(time.Duration(i) * time.Hour),
			OptionId:   1,
		}))
	}

	snap, err := r.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Medications, 3)
	assert.Equal(t, "a", snap.Medications[0].ClientUUID)
	assert.Equal(t, "b", snap.Medications[1].ClientUUID)
	assert.Equal(t, "c", snap.Medications[2].ClientUUID)
}

func TestSnapshot_TimesComeBackInUTC(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	// местное время при записи нормализуется в UTC
	loc := time.FixedZone("EET", 2*60*60)
	local := time.Date(2025, 11, 3, 11, 0, 0, 0, loc)
	require.NoError(t, r.AppendMedication(ctx, &models.MedicationEvent{
		ClientUUID: "tz-1", TakenAt: local, OptionId: 1,
	}))

	snap, err := r.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Medications, 1)
	got := snap.Medications[0].TakenAt
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, got.Equal(local))
}

func TestDrain_RemovesSnapshotAcrossCategories(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.AppendMeal(ctx, &models.MealEvent{ClientUUID: "m", EatenAt: eatenAt, Items: []models.MealItem{}}))
	require.NoError(t, r.AppendMedication(ctx, &models.MedicationEvent{ClientUUID: "d", TakenAt: eatenAt, OptionId: 1}))
	require.NoError(t, r.AppendExerciseSet(ctx, &models.ExerciseSet{ClientUUID: "e", PerformedAt: eatenAt, Name: "Squat", Reps: 3, WeightKg: 80, Source: "manual"}))

	snap, err := r.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, len(snap.Meals)+len(snap.Medications)+len(snap.ExerciseSets))

	require.NoError(t, r.Drain(ctx, snap))

	c, err := r.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.OutboxCounts{}, c)

	after, err := r.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, after.Empty())

	// повторный drain того же снапшота — не ошибка
	require.NoError(t, r.Drain(ctx, snap))
}

func TestDrain_LeavesEventsAppendedAfterSnapshot(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.AppendMedication(ctx, &models.MedicationEvent{ClientUUID: "old", TakenAt: eatenAt, OptionId: 1}))

	snap, err := r.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Medications, 1)

	// событие, добавленное после снапшота, должно пережить drain
	require.NoError(t, r.AppendMedication(ctx, &models.MedicationEvent{ClientUUID: "new", TakenAt: eatenAt.Add(time.Hour), OptionId: 2}))

	require.NoError(t, r.Drain(ctx, snap))

	after, err := r.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, after.Medications, 1)
	assert.Equal(t, "new", after.Medications[0].ClientUUID)
}

func TestAppend_DuplicateClientUUIDRejected(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	e := &models.MedicationEvent{ClientUUID: "dup", TakenAt: eatenAt, OptionId: 1}
	require.NoError(t, r.AppendMedication(ctx, e))
	require.Error(t, r.AppendMedication(ctx, e))
}
