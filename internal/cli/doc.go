// Package cli provides the interactive health-journal command-line client.
//
// It wires configuration, the local database, the backend API client, and an
// interactive REPL that stands in for the phone app's journal forms and sync
// button. Typical flow: open the database, probe backend connectivity, and
// execute user commands.
//
// Key features:
//   - Log entries: meals, medications, exercise sets (durable outbox)
//   - Sync with the backend (one atomic attempt, colored verdict)
//   - Refresh and browse cached reference data (foods, templates, options)
//   - Inspect pending events, watermark, and engine state
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
