package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/surya-health-tech/Glucose-Curve/internal/api"
	"github.com/surya-health-tech/Glucose-Curve/internal/logging"
	"github.com/surya-health-tech/Glucose-Curve/internal/models"
	"github.com/surya-health-tech/Glucose-Curve/internal/repositories/reference"
)

// ReferenceService keeps the local reference-data cache in step with the
// backend. Refresh fetches all four catalogs first and swaps the cache only
// when every fetch succeeded, so a flaky connection never leaves a
// half-updated cache behind.
type ReferenceService struct {
	client api.Client
	repo   reference.Repository
	log    logging.Logger
}

func NewReferenceService(client api.Client, repo reference.Repository, log logging.Logger) *ReferenceService {
	return &ReferenceService{client: client, repo: repo, log: log.With("module", "reference")}
}

// RefreshReport counts what a refresh brought in.
type RefreshReport struct {
	FoodItems         int
	MealTemplates     int
	ExerciseTemplates int
	MedicationOptions int
}

// Refresh pulls the four reference catalogs in parallel and replaces the
// local cache.
func (s *ReferenceService) Refresh(ctx context.Context) (*RefreshReport, error) {
	var (
		foods     []models.FoodItem
		templates []models.MealTemplate
		exercises []models.ExerciseTemplate
		options   []models.MedicationOption
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if foods, err = s.client.FoodItems(gctx); err != nil {
			return fmt.Errorf("failed to fetch food items: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if templates, err = s.client.MealTemplates(gctx); err != nil {
			return fmt.Errorf("failed to fetch meal templates: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if exercises, err = s.client.ExerciseTemplates(gctx); err != nil {
			return fmt.Errorf("failed to fetch exercise templates: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if options, err = s.client.MedicationOptions(gctx); err != nil {
			return fmt.Errorf("failed to fetch medication options: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceFoodItems(ctx, foods); err != nil {
		return nil, fmt.Errorf("failed to cache food items: %w", err)
	}
	if err := s.repo.ReplaceMealTemplates(ctx, templates); err != nil {
		return nil, fmt.Errorf("failed to cache meal templates: %w", err)
	}
	if err := s.repo.ReplaceExerciseTemplates(ctx, exercises); err != nil {
		return nil, fmt.Errorf("failed to cache exercise templates: %w", err)
	}
	if err := s.repo.ReplaceMedicationOptions(ctx, options); err != nil {
		return nil, fmt.Errorf("failed to cache medication options: %w", err)
	}

	report := &RefreshReport{
		FoodItems:         len(foods),
		MealTemplates:     len(templates),
		ExerciseTemplates: len(exercises),
		MedicationOptions: len(options),
	}

	s.log.Info(ctx, "reference data refreshed",
		"food_items", report.FoodItems,
		"meal_templates", report.MealTemplates,
		"exercise_templates", report.ExerciseTemplates,
		"medication_options", report.MedicationOptions,
	)

	return report, nil
}

// FoodItems lists the cached food catalog.
func (s *ReferenceService) FoodItems(ctx context.Context) ([]models.FoodItem, error) {
	return s.repo.ListFoodItems(ctx)
}

// MealTemplates lists the cached meal templates.
func (s *ReferenceService) MealTemplates(ctx context.Context) ([]models.MealTemplate, error) {
	return s.repo.ListMealTemplates(ctx)
}

// MealTemplate returns one cached template with its items.
func (s *ReferenceService) MealTemplate(ctx context.Context, id int64) (*models.MealTemplate, error) {
	return s.repo.GetMealTemplate(ctx, id)
}

// ExerciseTemplates lists the cached exercise templates.
func (s *ReferenceService) ExerciseTemplates(ctx context.Context) ([]models.ExerciseTemplate, error) {
	return s.repo.ListExerciseTemplates(ctx)
}

// MedicationOptions lists the cached medication quick picks.
func (s *ReferenceService) MedicationOptions(ctx context.Context) ([]models.MedicationOption, error) {
	return s.repo.ListMedicationOptions(ctx)
}
