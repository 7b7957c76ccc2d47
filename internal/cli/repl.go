package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Meal(ctx context.Context) error
	Medication(ctx context.Context) error
	ExerciseSet(ctx context.Context) error
	Pending(ctx context.Context) error
	Sync(ctx context.Context) error
	Refresh(ctx context.Context) error
	Foods(ctx context.Context) error
	Templates(ctx context.Context) error
	Exercises(ctx context.Context) error
	Options(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the journal CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//   - help           — show available commands
//   - meal           — log a meal (template and/or food items)
//   - med            — log a medication intake
//   - set            — log an exercise set
//   - pending        — show events awaiting the next sync
//   - sync           — run one sync attempt
//   - refresh        — pull reference data from the backend
//   - foods          — list cached food items
//   - templates      — list cached meal templates
//   - exercises      — list cached exercise templates
//   - options        — list cached medication options
//   - status         — show mode, engine state, watermark, pending count
//   - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("gc> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printlnFn("Available commands: meal, med, set, pending, sync, refresh, foods, templates, exercises, options, status, exit")

		case "meal":
			_ = a.Meal(ctx)

		case "med":
			_ = a.Medication(ctx)

		case "set":
			_ = a.ExerciseSet(ctx)

		case "pending":
			_ = a.Pending(ctx)

		case "sync":
			_ = a.Sync(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "foods":
			_ = a.Foods(ctx)

		case "templates":
			_ = a.Templates(ctx)

		case "exercises":
			_ = a.Exercises(ctx)

		case "options":
			_ = a.Options(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
