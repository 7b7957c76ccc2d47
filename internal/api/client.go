package api

import (
	"context"

	"github.com/surya-health-tech/Glucose-Curve/internal/models"
)

// Client is the backend API surface the rest of the application depends on.
type Client interface {
	// Ping probes the backend. A nil error means it is reachable and healthy.
	Ping(ctx context.Context) error

	// Sync submits one complete payload. A non-nil result means the backend
	// acknowledged and durably stored every record in it.
	Sync(ctx context.Context, payload *models.SyncPayload) (*models.SyncResult, error)

	// FoodItems returns the backend's food catalog.
	FoodItems(ctx context.Context) ([]models.FoodItem, error)

	// MealTemplates returns the backend's meal templates with their items.
	MealTemplates(ctx context.Context) ([]models.MealTemplate, error)

	// ExerciseTemplates returns the backend's exercise templates.
	ExerciseTemplates(ctx context.Context) ([]models.ExerciseTemplate, error)

	// MedicationOptions returns the backend's medication quick picks.
	MedicationOptions(ctx context.Context) ([]models.MedicationOption, error)

	// Close releases any resources held by the client.
	Close() error
}
