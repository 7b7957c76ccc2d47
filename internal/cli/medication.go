package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/surya-health-tech/Glucose-Curve/internal/services"
)

// Medication interactively collects one medication intake and appends it to
// the outbox. The option id references a cached medication option (see the
// "options" command).
func (a *App) Medication(ctx context.Context) error {
	takenAt, err := GetTime(a.reader, "Taken at (empty = now)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	optionId, err := GetOptionalId(a.reader, "Medication option id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	var id int64
	if optionId != nil {
		id = *optionId
	}

	notes, err := GetSimpleText(a.reader, "Notes (optional)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	e, err := a.journal.LogMedication(ctx, services.MedicationInput{
		TakenAt:  takenAt,
		OptionId: id,
		Notes:    notes,
	})
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn(fmt.Sprintf("medication logged (%s)", e.ClientUUID))
	return nil
}
