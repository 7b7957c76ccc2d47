// Package migrations embeds the goose SQL migrations for the local client
// database (outbox tables, sync state, reference-data cache).
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
