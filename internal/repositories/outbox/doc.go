// Package outbox provides the durable local queue of user-entered health
// events awaiting backend submission.
//
// # Overview
//
// The package defines a Repository interface over three event categories
// (meals, medications, exercise sets) and a SQLite-backed implementation.
// Events enter through the Append methods, ride along in sync attempts via
// Snapshot, and leave only through Drain once the backend has acknowledged
// the attempt that carried them.
//
// # Durability & Atomicity
//
// Each Append is durable before it returns: the event row is committed to
// the local database, so a process restart never loses a saved form.
// Drain removes the drained snapshot's events across all three categories
// inside one transaction; a sync acknowledgement either clears the whole
// snapshot or, on error, leaves every event in place.
//
// # Concurrency
//
// Snapshot is a point-in-time copy taken in a single transaction. Appends
// that arrive while a sync attempt is in flight land in the tables as usual
// and surface in the next attempt's snapshot, never the current one; Drain
// never touches them because it deletes by the snapshot's client UUIDs.
package outbox
