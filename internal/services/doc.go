// Package services implements the application's use cases on top of the
// repositories, the sensor store, and the backend API client.
//
// # Overview
//
// Four services cover the whole engine:
//
//   - JournalService — validates user-entered events, stamps them with
//     client UUIDs, and appends them to the durable outbox.
//   - DeltaFetcher — pulls every sensor category for one delta window in
//     parallel and normalizes the samples into backend shapes.
//   - SyncService — drives one sync attempt end to end through an explicit
//     state machine: snapshot, fetch, submit, and on acknowledgement
//     advance the watermark and drain the outbox.
//   - ReferenceService — refreshes the local reference-data cache from the
//     backend and serves cached lookups to the journal forms.
//
// # Concurrency
//
// SyncService allows a single attempt at a time; a concurrent call gets
// ErrSyncInFlight. Appending journal events while an attempt is in flight
// is always allowed; such events ride in the next attempt.
package services
