package reference

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/surya-health-tech/Glucose-Curve/internal/common"
	"github.com/surya-health-tech/Glucose-Curve/internal/dbx"
	"github.com/surya-health-tech/Glucose-Curve/internal/models"
)

// SQLiteRepository implements Repository. Like the outbox it holds *sql.DB
// because the Replace methods open their own transactions.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored timestamp %q: %w", s, err)
	}
	return t, nil
}

func (r *SQLiteRepository) ReplaceFoodItems(ctx context.Context, items []models.FoodItem) error {
	err := dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM food_items`); err != nil {
			return err
		}
		query := `INSERT INTO food_items
				(id, name, brand, notes, serving_name, serving_grams, calories_kcal, carbs_g, fiber_g, protein_g, fat_g, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		for _, fi := range items {
			_, err := tx.ExecContext(ctx, query,
				fi.Id, fi.Name, fi.Brand, fi.Notes, fi.ServingName,
				float64(fi.ServingGrams), float64(fi.CaloriesKcal), float64(fi.CarbsG),
				float64(fi.FiberG), float64(fi.ProteinG), float64(fi.FatG),
				formatTime(fi.UpdatedAt))
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace food items: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListFoodItems(ctx context.Context) ([]models.FoodItem, error) {
	query := `SELECT id, name, brand, notes, serving_name, serving_grams, calories_kcal, carbs_g, fiber_g, protein_g, fat_g, updated_at
			FROM food_items ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select food items: %w", err)
	}
	defer rows.Close()

	var result []models.FoodItem
	for rows.Next() {
		var fi models.FoodItem
		var serving, cal, carbs, fiber, protein, fat float64
		var updated string
		if err := rows.Scan(&fi.Id, &fi.Name, &fi.Brand, &fi.Notes, &fi.ServingName,
			&serving, &cal, &carbs, &fiber, &protein, &fat, &updated); err != nil {
			return nil, err
		}
		fi.ServingGrams = models.Dec2(serving)
		fi.CaloriesKcal = models.Dec2(cal)
		fi.CarbsG = models.Dec2(carbs)
		fi.FiberG = models.Dec2(fiber)
		fi.ProteinG = models.Dec2(protein)
		fi.FatG = models.Dec2(fat)
		if fi.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, err
		}
		result = append(result, fi)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) ReplaceMealTemplates(ctx context.Context, templates []models.MealTemplate) error {
	err := dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM meal_template_items`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM meal_templates`); err != nil {
			return err
		}
		for _, mt := range templates {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO meal_templates (id, name, notes, updated_at) VALUES (?, ?, ?, ?)`,
				mt.Id, mt.Name, mt.Notes, formatTime(mt.UpdatedAt))
			if err != nil {
				return err
			}
			for _, it := range mt.Items {
				_, err := tx.ExecContext(ctx,
					`INSERT INTO meal_template_items (id, meal_template_id, food_item_id, food_item_name, grams, sort_order)
					VALUES (?, ?, ?, ?, ?, ?)`,
					it.Id, mt.Id, it.FoodItemId, it.FoodItemName, float64(it.Grams), it.SortOrder)
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace meal templates: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListMealTemplates(ctx context.Context) ([]models.MealTemplate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, notes, updated_at FROM meal_templates ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select meal templates: %w", err)
	}
	defer rows.Close()

	var result []models.MealTemplate
	for rows.Next() {
		var mt models.MealTemplate
		var updated string
		if err := rows.Scan(&mt.Id, &mt.Name, &mt.Notes, &updated); err != nil {
			return nil, err
		}
		if mt.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, err
		}
		result = append(result, mt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		items, err := r.templateItems(ctx, result[i].Id)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func (r *SQLiteRepository) GetMealTemplate(ctx context.Context, id int64) (*models.MealTemplate, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, notes, updated_at FROM meal_templates WHERE id = ?`, id)

	mt := &models.MealTemplate{}
	var updated string
	err := row.Scan(&mt.Id, &mt.Name, &mt.Notes, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("meal template %d: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meal template: %w", err)
	}
	if mt.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	if mt.Items, err = r.templateItems(ctx, id); err != nil {
		return nil, err
	}
	return mt, nil
}

func (r *SQLiteRepository) templateItems(ctx context.Context, templateId int64) ([]models.MealTemplateItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, food_item_id, food_item_name, grams, sort_order
		FROM meal_template_items WHERE meal_template_id = ? ORDER BY sort_order, id`, templateId)
	if err != nil {
		return nil, fmt.Errorf("failed to select template items: %w", err)
	}
	defer rows.Close()

	var items []models.MealTemplateItem
	for rows.Next() {
		var it models.MealTemplateItem
		var grams float64
		if err := rows.Scan(&it.Id, &it.FoodItemId, &it.FoodItemName, &grams, &it.SortOrder); err != nil {
			return nil, err
		}
		it.Grams = models.Dec2(grams)
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *SQLiteRepository) ReplaceExerciseTemplates(ctx context.Context, templates []models.ExerciseTemplate) error {
	err := dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM exercise_templates`); err != nil {
			return err
		}
		for _, et := range templates {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO exercise_templates (id, name, default_reps, default_weight_kg, notes) VALUES (?, ?, ?, ?, ?)`,
				et.Id, et.Name, et.DefaultReps, float64(et.DefaultWeightKg), et.Notes)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace exercise templates: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListExerciseTemplates(ctx context.Context) ([]models.ExerciseTemplate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, default_reps, default_weight_kg, notes FROM exercise_templates ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select exercise templates: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseTemplate
	for rows.Next() {
		var et models.ExerciseTemplate
		var weight float64
		if err := rows.Scan(&et.Id, &et.Name, &et.DefaultReps, &weight, &et.Notes); err != nil {
			return nil, err
		}
		et.DefaultWeightKg = models.Dec2(weight)
		result = append(result, et)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) ReplaceMedicationOptions(ctx context.Context, options []models.MedicationOption) error {
	err := dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM medication_options`); err != nil {
			return err
		}
		for _, mo := range options {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO medication_options (id, name, dose_mg, label, notes) VALUES (?, ?, ?, ?, ?)`,
				mo.Id, mo.Name, mo.DoseMg, mo.Label, mo.Notes)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace medication options: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListMedicationOptions(ctx context.Context) ([]models.MedicationOption, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, dose_mg, label, notes FROM medication_options ORDER BY name, dose_mg, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select medication options: %w", err)
	}
	defer rows.Close()

	var result []models.MedicationOption
	for rows.Next() {
		var mo models.MedicationOption
		if err := rows.Scan(&mo.Id, &mo.Name, &mo.DoseMg, &mo.Label, &mo.Notes); err != nil {
			return nil, err
		}
		result = append(result, mo)
	}
	return result, rows.Err()
}
