package reference

import (
	"context"

	"github.com/surya-health-tech/Glucose-Curve/internal/models"
)

// Repository describes the local reference-data cache. Replace methods swap
// a whole aggregate transactionally; List methods read the cached rows.
type Repository interface {
	ReplaceFoodItems(ctx context.Context, items []models.FoodItem) error
	ListFoodItems(ctx context.Context) ([]models.FoodItem, error)

	ReplaceMealTemplates(ctx context.Context, templates []models.MealTemplate) error
	ListMealTemplates(ctx context.Context) ([]models.MealTemplate, error)

	// GetMealTemplate returns one template with its items, or
	// common.ErrorNotFound when the id is not cached.
	GetMealTemplate(ctx context.Context, id int64) (*models.MealTemplate, error)

	ReplaceExerciseTemplates(ctx context.Context, templates []models.ExerciseTemplate) error
	ListExerciseTemplates(ctx context.Context) ([]models.ExerciseTemplate, error)

	ReplaceMedicationOptions(ctx context.Context, options []models.MedicationOption) error
	ListMedicationOptions(ctx context.Context) ([]models.MedicationOption, error)
}
