package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/surya-health-tech/Glucose-Curve/internal/services"
)

// ExerciseSet interactively collects one strength-training set and appends
// it to the outbox.
func (a *App) ExerciseSet(ctx context.Context) error {
	performedAt, err := GetTime(a.reader, "Performed at (empty = now)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	templateId, err := GetOptionalId(a.reader, "Exercise template id (empty = none)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	name, err := GetSimpleText(a.reader, "Exercise name", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	reps, err := GetInt(a.reader, "Reps", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	weight, err := GetFloat(a.reader, "Weight (kg, 0 = bodyweight)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	e, err := a.journal.LogExercise(ctx, services.ExerciseInput{
		PerformedAt: performedAt,
		TemplateId:  templateId,
		Name:        name,
		Reps:        reps,
		WeightKg:    weight,
	})
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn(fmt.Sprintf("exercise set logged (%s): %s x%d", e.ClientUUID, e.Name, e.Reps))
	return nil
}
