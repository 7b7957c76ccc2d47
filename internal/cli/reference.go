package cli

import (
	"context"
	"fmt"
	"log"
)

// Refresh pulls the four reference catalogs from the backend and swaps the
// local cache.
func (a *App) Refresh(ctx context.Context) error {
	report, err := a.reference.Refresh(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn(fmt.Sprintf("reference data refreshed: %d food(s), %d meal template(s), %d exercise(s), %d medication option(s)",
		report.FoodItems, report.MealTemplates, report.ExerciseTemplates, report.MedicationOptions))
	return nil
}

// Foods lists the cached food catalog with per-serving macros.
func (a *App) Foods(ctx context.Context) error {
	items, err := a.reference.FoodItems(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	for _, f := range items {
		printlnFn(fmt.Sprintf("%4d  %s (%s %.0fg): %.1f kcal, %.1fg carbs",
			f.Id, f.Name, f.ServingName, float64(f.ServingGrams), float64(f.CaloriesKcal), float64(f.CarbsG)))
	}
	if len(items) == 0 {
		printlnFn("no cached food items; run 'refresh' first")
	}
	return nil
}

// Templates lists the cached meal templates with their item lines.
func (a *App) Templates(ctx context.Context) error {
	templates, err := a.reference.MealTemplates(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	for _, t := range templates {
		printlnFn(fmt.Sprintf("%4d  %s", t.Id, t.Name))
		for _, item := range t.Items {
			printlnFn(fmt.Sprintf("        %s, %.0fg", item.FoodItemName, float64(item.Grams)))
		}
	}
	if len(templates) == 0 {
		printlnFn("no cached meal templates; run 'refresh' first")
	}
	return nil
}

// Exercises lists the cached exercise templates.
func (a *App) Exercises(ctx context.Context) error {
	templates, err := a.reference.ExerciseTemplates(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	for _, t := range templates {
		printlnFn(fmt.Sprintf("%4d  %s (default %dx%.1fkg)", t.Id, t.Name, t.DefaultReps, float64(t.DefaultWeightKg)))
	}
	if len(templates) == 0 {
		printlnFn("no cached exercise templates; run 'refresh' first")
	}
	return nil
}

// Options lists the cached medication quick picks.
func (a *App) Options(ctx context.Context) error {
	options, err := a.reference.MedicationOptions(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	for _, o := range options {
		printlnFn(fmt.Sprintf("%4d  %s", o.Id, o.Label))
	}
	if len(options) == 0 {
		printlnFn("no cached medication options; run 'refresh' first")
	}
	return nil
}
