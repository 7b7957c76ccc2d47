package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/surya-health-tech/Glucose-Curve/internal/common"
	"github.com/surya-health-tech/Glucose-Curve/internal/logging"
	"github.com/surya-health-tech/Glucose-Curve/internal/models"
	"github.com/surya-health-tech/Glucose-Curve/internal/repositories/outbox"
)

// JournalService turns validated user input into durable outbox events.
// Every event gets a client-generated UUID before it is stored, so the
// backend can dedupe resubmissions of the same event.
type JournalService struct {
	outbox outbox.Repository
	log    logging.Logger
}

func NewJournalService(outboxRepo outbox.Repository, log logging.Logger) *JournalService {
	return &JournalService{outbox: outboxRepo, log: log.With("module", "journal")}
}

// MealInput is the validated-from-raw-form shape of a meal entry. A meal
// references a template, lists individual items, or both.
type MealInput struct {
	EatenAt        time.Time
	MealTemplateId *int64
	Notes          string
	Items          []models.MealItem
}

// MedicationInput records one medication intake against a backend option.
type MedicationInput struct {
	TakenAt  time.Time
	OptionId int64
	Notes    string
}

// ExerciseInput records one strength-training set.
type ExerciseInput struct {
	PerformedAt time.Time
	TemplateId  *int64
	Name        string
	Reps        int
	WeightKg    float64
}

// LogMeal validates, stamps, and appends a meal event.
func (s *JournalService) LogMeal(ctx context.Context, in MealInput) (*models.MealEvent, error) {
	if in.EatenAt.IsZero() {
		return nil, fmt.Errorf("%w: eaten_at is required", common.ErrorInvalidEvent)
	}
	if in.MealTemplateId == nil && len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: a meal needs a template or at least one item", common.ErrorInvalidEvent)
	}
	for _, item := range in.Items {
		if item.FoodItemId <= 0 {
			return nil, fmt.Errorf("%w: meal item without food_item_id", common.ErrorInvalidEvent)
		}
		if item.Grams <= 0 {
			return nil, fmt.Errorf("%w: meal item grams must be positive", common.ErrorInvalidEvent)
		}
	}

	items := make([]models.MealItem, len(in.Items))
	copy(items, in.Items)
	for i := range items {
		items[i].SortOrder = i
	}

	e := &models.MealEvent{
		ClientUUID:     uuid.NewString(),
		EatenAt:        in.EatenAt.UTC(),
		MealTemplateId: in.MealTemplateId,
		Notes:          strings.TrimSpace(in.Notes),
		Items:          items,
	}

	if err := s.outbox.AppendMeal(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to append meal: %w", err)
	}

	s.log.Info(ctx, "meal logged", "client_uuid", e.ClientUUID, "items", len(e.Items))
	return e, nil
}

// LogMedication validates, stamps, and appends a medication event.
func (s *JournalService) LogMedication(ctx context.Context, in MedicationInput) (*models.MedicationEvent, error) {
	if in.TakenAt.IsZero() {
		return nil, fmt.Errorf("%w: taken_at is required", common.ErrorInvalidEvent)
	}
	if in.OptionId <= 0 {
		return nil, fmt.Errorf("%w: medication option is required", common.ErrorInvalidEvent)
	}

	e := &models.MedicationEvent{
		ClientUUID: uuid.NewString(),
		TakenAt:    in.TakenAt.UTC(),
		OptionId:   in.OptionId,
		Notes:      strings.TrimSpace(in.Notes),
	}

	if err := s.outbox.AppendMedication(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to append medication: %w", err)
	}

	s.log.Info(ctx, "medication logged", "client_uuid", e.ClientUUID, "option_id", e.OptionId)
	return e, nil
}

// LogExercise validates, stamps, and appends an exercise set.
func (s *JournalService) LogExercise(ctx context.Context, in ExerciseInput) (*models.ExerciseSet, error) {
	if in.PerformedAt.IsZero() {
		return nil, fmt.Errorf("%w: performed_at is required", common.ErrorInvalidEvent)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", common.ErrorInvalidEvent)
	}
	if in.Reps <= 0 {
		return nil, fmt.Errorf("%w: reps must be positive", common.ErrorInvalidEvent)
	}
	if in.WeightKg < 0 {
		return nil, fmt.Errorf("%w: weight cannot be negative", common.ErrorInvalidEvent)
	}

	e := &models.ExerciseSet{
		ClientUUID:  uuid.NewString(),
		PerformedAt: in.PerformedAt.UTC(),
		TemplateId:  in.TemplateId,
		Name:        name,
		Reps:        in.Reps,
		WeightKg:    models.Dec2(in.WeightKg),
		Source:      common.SourceManual,
	}

	if err := s.outbox.AppendExerciseSet(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to append exercise set: %w", err)
	}

	s.log.Info(ctx, "exercise set logged", "client_uuid", e.ClientUUID, "name", e.Name, "reps", e.Reps)
	return e, nil
}

// PendingCounts reports how many events await the next sync.
func (s *JournalService) PendingCounts(ctx context.Context) (models.OutboxCounts, error) {
	counts, err := s.outbox.Counts(ctx)
	if err != nil {
		return models.OutboxCounts{}, fmt.Errorf("failed to count pending events: %w", err)
	}
	return counts, nil
}
