// Package api defines the backend contract and its HTTP implementation.
//
// # Overview
//
// The backend exposes a small unauthenticated JSON API: a single POST
// endpoint that ingests a full sync payload, plus read-only endpoints for
// reference data (food items, meal templates, exercise templates,
// medication options) and a ping probe. Client is the interface the sync
// engine depends on; HTTPClient is the production implementation.
//
// # Error handling
//
// Failures are classified with sentinel errors so callers can match with
// errors.Is:
//
//   - ErrUnavailable — the backend could not be reached at all
//   - ErrRejected    — the backend answered and refused the request
//   - ErrBadResponse — the backend answered 2xx but the body was not parseable
//
// A rejected or unreachable request leaves no trace on the backend that the
// client needs to care about: retrying the same payload is always safe.
package api
