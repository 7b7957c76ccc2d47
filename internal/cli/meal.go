package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/surya-health-tech/Glucose-Curve/internal/models"
	"github.com/surya-health-tech/Glucose-Curve/internal/services"
)

// Meal interactively collects one meal and appends it to the outbox. The
// meal references a cached meal template, lists individual food items, or
// both.
//
// On any failure the error is logged and returned unchanged.
func (a *App) Meal(ctx context.Context) error {
	in, err := a.mealDetails(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	e, err := a.journal.LogMeal(ctx, *in)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn(fmt.Sprintf("meal logged (%s), %d item(s)", e.ClientUUID, len(e.Items)))
	return nil
}

// mealDetails prompts for the meal form fields: timestamp, optional template
// id, food item lines until an empty id, and free-form notes.
func (a *App) mealDetails(ctx context.Context) (*services.MealInput, error) {
	eatenAt, err := GetTime(a.reader, "Eaten at (empty = now)", os.Stdout)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	templateId, err := GetOptionalId(a.reader, "Meal template id (empty = none)", os.Stdout)
	if err != nil {
		return nil, err
	}

	var items []models.MealItem
	for {
		foodId, err := GetOptionalId(a.reader, "Food item id (empty to finish)", os.Stdout)
		if err != nil {
			return nil, err
		}
		if foodId == nil {
			break
		}
		grams, err := GetFloat(a.reader, "Grams", os.Stdout)
		if err != nil {
			return nil, err
		}
		items = append(items, models.MealItem{FoodItemId: *foodId, Grams: models.Dec2(grams)})
	}

	notes, err := GetSimpleText(a.reader, "Notes (optional)", os.Stdout)
	if err != nil {
		return nil, err
	}

	return &services.MealInput{
		EatenAt:        eatenAt,
		MealTemplateId: templateId,
		Notes:          notes,
		Items:          items,
	}, nil
}
