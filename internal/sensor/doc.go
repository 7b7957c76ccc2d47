// Package sensor abstracts the phone's health-sensor store behind a read
// capability the sync engine can query.
//
// # Overview
//
// The Store interface exposes the three query shapes the engine needs:
// time-ranged sample queries per category, workout queries, and statistics
// queries (average / cumulative sum) over a range. All ranges are half-open,
// [start, end), matched on a sample's own start timestamp.
//
// Two implementations ship with the engine: FileStore answers queries from a
// JSON snapshot exported off a device, and Unavailable denies everything,
// which degrades sync to user-entered events only.
//
// # Error Handling
//
// ErrAuthorizationDenied is a per-category condition, not a failure: callers
// are expected to treat a denied category as empty. Any other error from a
// query is a real fault and aborts the whole delta fetch.
package sensor
