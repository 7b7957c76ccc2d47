// Package common contains shared constants and sentinel errors used across
// the sync engine components.
package common

// Source tags recorded on synced records so the backend can tell
// sensor-derived data from hand-entered data.
const (
	SourceHealthKit = "healthkit"
	SourceManual    = "manual"
)
