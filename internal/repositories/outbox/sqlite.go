package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/surya-health-tech/Glucose-Curve/internal/dbx"
	"github.com/surya-health-tech/Glucose-Curve/internal/models"
)

// SQLiteRepository implements Repository over three per-category tables.
// It holds a *sql.DB rather than a dbx.DBTX because Drain opens its own
// transaction across the tables.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a new SQLiteRepository bound to db.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Timestamps are stored as RFC3339Nano in UTC, so a snapshot serializes
// identically on every attempt that includes it.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored timestamp %q: %w", s, err)
	}
	return t, nil
}

func (r *SQLiteRepository) AppendMeal(ctx context.Context, e *models.MealEvent) error {
	items, err := json.Marshal(e.Items)
	if err != nil {
		return fmt.Errorf("failed to encode meal items: %w", err)
	}
	query := `INSERT INTO outbox_meals (client_uuid, eaten_at, meal_template_id, notes, items)
			VALUES (?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		e.ClientUUID, formatTime(e.EatenAt), e.MealTemplateId, e.Notes, string(items))
	if err != nil {
		return fmt.Errorf("failed to append meal event: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) AppendMedication(ctx context.Context, e *models.MedicationEvent) error {
	query := `INSERT INTO outbox_medications (client_uuid, taken_at, option_id, notes)
			VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ClientUUID, formatTime(e.TakenAt), e.OptionId, e.Notes)
	if err != nil {
		return fmt.Errorf("failed to append medication event: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) AppendExerciseSet(ctx context.Context, e *models.ExerciseSet) error {
	query := `INSERT INTO outbox_exercise_sets (client_uuid, performed_at, template_id, name, reps, weight_kg, source)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ClientUUID, formatTime(e.PerformedAt), e.TemplateId, e.Name, e.Reps, float64(e.WeightKg), e.Source)
	if err != nil {
		return fmt.Errorf("failed to append exercise set: %w", err)
	}
	return nil
}

// Snapshot reads all three categories inside one transaction, so the copy is
// consistent even when appends arrive concurrently.
func (r *SQLiteRepository) Snapshot(ctx context.Context) (*models.OutboxSnapshot, error) {
	snap := &models.OutboxSnapshot{}
	err := dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		if snap.Meals, err = selectMeals(ctx, tx); err != nil {
			return err
		}
		if snap.Medications, err = selectMedications(ctx, tx); err != nil {
			return err
		}
		snap.ExerciseSets, err = selectExerciseSets(ctx, tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot outbox: %w", err)
	}
	return snap, nil
}

func selectMeals(ctx context.Context, tx dbx.DBTX) ([]models.MealEvent, error) {
	query := `SELECT client_uuid, eaten_at, meal_template_id, notes, items
			FROM outbox_meals ORDER BY rowid`
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select meal events: %w", err)
	}
	defer rows.Close()

	var result []models.MealEvent
	for rows.Next() {
		var item models.MealEvent
		var eatenAt, items string
		if err := rows.Scan(&item.ClientUUID, &eatenAt, &item.MealTemplateId, &item.Notes, &items); err != nil {
			return nil, err
		}
		if item.EatenAt, err = parseTime(eatenAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(items), &item.Items); err != nil {
			return nil, fmt.Errorf("failed to decode meal items: %w", err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func selectMedications(ctx context.Context, tx dbx.DBTX) ([]models.MedicationEvent, error) {
	query := `SELECT client_uuid, taken_at, option_id, notes
			FROM outbox_medications ORDER BY rowid`
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select medication events: %w", err)
	}
	defer rows.Close()

	var result []models.MedicationEvent
	for rows.Next() {
		var item models.MedicationEvent
		var takenAt string
		if err := rows.Scan(&item.ClientUUID, &takenAt, &item.OptionId, &item.Notes); err != nil {
			return nil, err
		}
		if item.TakenAt, err = parseTime(takenAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func selectExerciseSets(ctx context.Context, tx dbx.DBTX) ([]models.ExerciseSet, error) {
	query := `SELECT client_uuid, performed_at, template_id, name, reps, weight_kg, source
			FROM outbox_exercise_sets ORDER BY rowid`
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select exercise sets: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseSet
	for rows.Next() {
		var item models.ExerciseSet
		var performedAt string
		var weight float64
		if err := rows.Scan(&item.ClientUUID, &performedAt, &item.TemplateId, &item.Name, &item.Reps, &weight, &item.Source); err != nil {
			return nil, err
		}
		if item.PerformedAt, err = parseTime(performedAt); err != nil {
			return nil, err
		}
		item.WeightKg = models.Dec2(weight)
		result = append(result, item)
	}
	return result, rows.Err()
}

// Drain deletes the snapshot's events by client UUID in a single
// transaction. Rows appended after the snapshot are left untouched.
// Deleting an already-absent UUID is a no-op, so a repeated drain of the
// same snapshot is harmless.
func (r *SQLiteRepository) Drain(ctx context.Context, snap *models.OutboxSnapshot) error {
	err := dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		for _, e := range snap.Meals {
			if _, err := tx.ExecContext(ctx, `DELETE FROM outbox_meals WHERE client_uuid = ?`, e.ClientUUID); err != nil {
				return fmt.Errorf("failed to drain meal %s: %w", e.ClientUUID, err)
			}
		}
		for _, e := range snap.Medications {
			if _, err := tx.ExecContext(ctx, `DELETE FROM outbox_medications WHERE client_uuid = ?`, e.ClientUUID); err != nil {
				return fmt.Errorf("failed to drain medication %s: %w", e.ClientUUID, err)
			}
		}
		for _, e := range snap.ExerciseSets {
			if _, err := tx.ExecContext(ctx, `DELETE FROM outbox_exercise_sets WHERE client_uuid = ?`, e.ClientUUID); err != nil {
				return fmt.Errorf("failed to drain exercise set %s: %w", e.ClientUUID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to drain outbox: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Counts(ctx context.Context) (models.OutboxCounts, error) {
	var c models.OutboxCounts
	for _, q := range []struct {
		table string
		dst   *int
	}{
		{"outbox_meals", &c.Meals},
		{"outbox_medications", &c.Medications},
		{"outbox_exercise_sets", &c.ExerciseSets},
	} {
		if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+q.table).Scan(q.dst); err != nil {
			return models.OutboxCounts{}, fmt.Errorf("failed to count %s: %w", q.table, err)
		}
	}
	return c, nil
}
