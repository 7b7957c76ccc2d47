package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surya-health-tech/Glucose-Curve/internal/common"
	"github.com/surya-health-tech/Glucose-Curve/internal/models"
	"github.com/surya-health-tech/Glucose-Curve/internal/repositories/reference"

	_ "modernc.org/sqlite"
)

func setupRefDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE food_items (
  id            INTEGER PRIMARY KEY,
  name          TEXT NOT NULL,
  brand         TEXT NOT NULL DEFAULT '',
  notes         TEXT NOT NULL DEFAULT '',
  serving_name  TEXT NOT NULL DEFAULT '',
  serving_grams REAL NOT NULL DEFAULT 1,
  calories_kcal REAL NOT NULL DEFAULT 0,
  carbs_g       REAL NOT NULL DEFAULT 0,
  fiber_g       REAL NOT NULL DEFAULT 0,
  protein_g     REAL NOT NULL DEFAULT 0,
  fat_g         REAL NOT NULL DEFAULT 0,
  updated_at    TEXT NOT NULL DEFAULT ''
);
CREATE TABLE meal_templates (
  id         INTEGER PRIMARY KEY,
  name       TEXT NOT NULL,
  notes      TEXT NOT NULL DEFAULT '',
  updated_at TEXT NOT NULL DEFAULT ''
);
CREATE TABLE meal_template_items (
  id               INTEGER PRIMARY KEY,
  meal_template_id INTEGER NOT NULL,
  food_item_id     INTEGER NOT NULL,
  food_item_name   TEXT NOT NULL DEFAULT '',
  grams            REAL NOT NULL,
  sort_order       INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE exercise_templates (
  id                INTEGER PRIMARY KEY,
  name              TEXT NOT NULL,
  default_reps      INTEGER NOT NULL DEFAULT 0,
  default_weight_kg REAL NOT NULL DEFAULT 0,
  notes             TEXT NOT NULL DEFAULT ''
);
CREATE TABLE medication_options (
  id      INTEGER PRIMARY KEY,
  name    TEXT NOT NULL,
  dose_mg INTEGER NOT NULL DEFAULT 0,
  label   TEXT NOT NULL,
  notes   TEXT NOT NULL DEFAULT ''
);
`)
	require.NoError(t, err)
	return db
}

func newReferenceFixture(t *testing.T, client *fakeAPI) *ReferenceService {
	t.Helper()
	repo := reference.NewSQLiteRepository(setupRefDB(t))
	return NewReferenceService(client, repo, testLogger())
}

func TestRefresh_CachesAllCatalogs(t *testing.T) {
	client := &fakeAPI{
		foods: []models.FoodItem{
			{Id: 1, Name: "Oats", ServingName: "cup", ServingGrams: 80, CarbsG: 54},
			{Id: 2, Name: "Apple", ServingGrams: 180, CarbsG: 25},
		},
		templates: []models.MealTemplate{
			{Id: 10, Name: "Breakfast", Items: []models.MealTemplateItem{
				{Id: 100, FoodItemId: 1, FoodItemName: "Oats", Grams: 80},
			}},
		},
		exercises: []models.ExerciseTemplate{
			{Id: 1, Name: "Squat", DefaultReps: 5, DefaultWeightKg: 80},
		},
		options: []models.MedicationOption{
			{Id: 1, Name: "Metformin", DoseMg: 1000, Label: "Metformin 1000 mg"},
			{Id: 2, Name: "Metformin", DoseMg: 500, Label: "Metformin 500 mg"},
		},
	}
	svc := newReferenceFixture(t, client)
	ctx := context.Background()

	report, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, &RefreshReport{FoodItems: 2, MealTemplates: 1, ExerciseTemplates: 1, MedicationOptions: 2}, report)

	foods, err := svc.FoodItems(ctx)
	require.NoError(t, err)
	require.Len(t, foods, 2)
	assert.Equal(t, "Apple", foods[0].Name)

	tmpl, err := svc.MealTemplate(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tmpl.Items, 1)
	assert.Equal(t, "Oats", tmpl.Items[0].FoodItemName)

	ex, err := svc.ExerciseTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, ex, 1)

	mo, err := svc.MedicationOptions(ctx)
	require.NoError(t, err)
	require.Len(t, mo, 2)
}

func TestRefresh_FailedFetchLeavesCacheUntouched(t *testing.T) {
	client := &fakeAPI{
		foods:   []models.FoodItem{{Id: 1, Name: "Oats", ServingGrams: 80}},
		options: []models.MedicationOption{{Id: 1, Name: "Metformin", DoseMg: 1000, Label: "Metformin 1000 mg"}},
	}
	svc := newReferenceFixture(t, client)
	ctx := context.Background()

	_, err := svc.Refresh(ctx)
	require.NoError(t, err)

	// один из четырёх каталогов недоступен — кэш не трогаем
	client.foods = []models.FoodItem{{Id: 9, Name: "Rice", ServingGrams: 100}}
	client.exercisesErr = errors.New("boom")

	_, err = svc.Refresh(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exercise templates")

	foods, err := svc.FoodItems(ctx)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Oats", foods[0].Name)
}

func TestRefresh_EmptyCatalogsClearCache(t *testing.T) {
	client := &fakeAPI{
		options: []models.MedicationOption{{Id: 1, Name: "Metformin", DoseMg: 1000, Label: "Metformin 1000 mg"}},
	}
	svc := newReferenceFixture(t, client)
	ctx := context.Background()

	_, err := svc.Refresh(ctx)
	require.NoError(t, err)

	client.options = nil
	report, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, report.MedicationOptions)

	mo, err := svc.MedicationOptions(ctx)
	require.NoError(t, err)
	assert.Empty(t, mo)
}

func TestMealTemplate_NotFound(t *testing.T) {
	svc := newReferenceFixture(t, &fakeAPI{})

	_, err := svc.MealTemplate(context.Background(), 404)
	require.ErrorIs(t, err, common.ErrorNotFound)
}
