package outbox

import (
	"context"

	"github.com/surya-health-tech/Glucose-Curve/internal/models"
)

// Repository describes the append/snapshot/drain contract of the outbox.
// Implementations are backed by the local SQLite database.
type Repository interface {
	// AppendMeal durably stores a meal event before returning.
	AppendMeal(ctx context.Context, e *models.MealEvent) error

	// AppendMedication durably stores a medication event before returning.
	AppendMedication(ctx context.Context, e *models.MedicationEvent) error

	// AppendExerciseSet durably stores an exercise set before returning.
	AppendExerciseSet(ctx context.Context, e *models.ExerciseSet) error

	// Snapshot returns a point-in-time copy of all pending events in
	// insertion order. It does not remove them.
	Snapshot(ctx context.Context) (*models.OutboxSnapshot, error)

	// Drain removes exactly the events captured in snap, across every
	// category, in one transaction. Only the sync orchestrator calls this,
	// and only after the backend acknowledged the attempt that carried the
	// snapshot. Events appended after the snapshot stay pending.
	Drain(ctx context.Context, snap *models.OutboxSnapshot) error

	// Counts reports how many events of each category are pending.
	Counts(ctx context.Context) (models.OutboxCounts, error)
}
