package cli

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/fatih/color"
)

var (
	committedColor = color.New(color.FgGreen)
	failedColor    = color.New(color.FgRed)
)

// Sync runs one sync attempt and prints a colored verdict. A failed attempt
// leaves the outbox and watermark untouched, so running sync again is always
// safe.
func (a *App) Sync(ctx context.Context) error {
	report, err := a.syncSvc.Sync(ctx)
	if err != nil && report == nil {
		printlnFn(failedColor.Sprintf("sync failed: %v", err))
		return err
	}

	if report.DrainFailed {
		printlnFn(failedColor.Sprintf("sync acknowledged, but clearing the outbox failed: %v", err))
		printlnFn("pending events will be resubmitted on the next sync and deduplicated by the backend")
	} else {
		printlnFn(committedColor.Sprintf("sync committed: %d event(s), %d record(s)", report.Events, report.Records))
	}

	printlnFn(fmt.Sprintf("window %s to %s",
		report.WindowStart.Format(time.RFC3339), report.WindowEnd.Format(time.RFC3339)))
	if report.Dropped > 0 {
		printlnFn(fmt.Sprintf("skipped %d malformed sample(s)", report.Dropped))
	}

	keys := make([]string, 0, len(report.Counts))
	for k := range report.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		printlnFn(fmt.Sprintf("  %s: %d", k, report.Counts[k]))
	}

	return err
}

// Pending shows how many journal events await the next sync.
func (a *App) Pending(ctx context.Context) error {
	c, err := a.journal.PendingCounts(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn(fmt.Sprintf("pending: %d meal(s), %d medication(s), %d exercise set(s)",
		c.Meals, c.Medications, c.ExerciseSets))
	return nil
}

// Status shows connectivity, the engine's lifecycle state, the current
// watermark, and the pending-event count.
func (a *App) Status(ctx context.Context) error {
	wm, err := a.syncSvc.Watermark(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	c, err := a.journal.PendingCounts(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	printlnFn(fmt.Sprintf("mode: %s", a.currentMode()))
	printlnFn(fmt.Sprintf("engine: %s", a.syncSvc.State()))
	printlnFn(fmt.Sprintf("watermark: %s", wm.Format(time.RFC3339)))
	printlnFn(fmt.Sprintf("pending events: %d", c.Total()))
	return nil
}
