package models

// SyncPayload is the request-scoped aggregate submitted to the backend: the
// outbox snapshot plus all normalized records fetched for the current delta
// window. It is built fresh per attempt and never persisted.
//
// The top-level keys and their order are fixed by the backend contract.
// Category slices are always present (empty arrays, never null), so a
// retried attempt serializes byte-for-byte identically.
type SyncPayload struct {
	Device           string            `json:"device"`
	Notes            string            `json:"notes,omitempty"`
	MealEvents       []MealEvent       `json:"meal_events"`
	MedicationEvents []MedicationEvent `json:"medication_events"`
	EGVReadings      []EGVReading      `json:"egv_readings"`
	Workouts         []WorkoutSummary  `json:"workouts"`
	WeightReadings   []WeightReading   `json:"weight_readings"`
	ExerciseSets     []ExerciseSet     `json:"exercise_sets"`
	SleepSessions    []SleepSession    `json:"sleep_sessions"`
	HealthMetrics    []HealthMetric    `json:"health_metrics"`
}

// NewSyncPayload returns a payload with every category initialized to an
// empty slice.
func NewSyncPayload(device string) *SyncPayload {
	return &SyncPayload{
		Device:           device,
		MealEvents:       []MealEvent{},
		MedicationEvents: []MedicationEvent{},
		EGVReadings:      []EGVReading{},
		Workouts:         []WorkoutSummary{},
		WeightReadings:   []WeightReading{},
		ExerciseSets:     []ExerciseSet{},
		SleepSessions:    []SleepSession{},
		HealthMetrics:    []HealthMetric{},
	}
}

// RecordCount returns the number of normalized sensor records in the payload.
func (p *SyncPayload) RecordCount() int {
	return len(p.EGVReadings) + len(p.Workouts) + len(p.WeightReadings) +
		len(p.SleepSessions) + len(p.HealthMetrics)
}

// EventCount returns the number of user-entered events in the payload.
func (p *SyncPayload) EventCount() int {
	return len(p.MealEvents) + len(p.MedicationEvents) + len(p.ExerciseSets)
}

// SyncResult is the backend's acknowledgement of a sync payload.
type SyncResult struct {
	OK         bool             `json:"ok"`
	Counts     map[string]int64 `json:"counts"`
	ServerTime string           `json:"server_time"`
	Error      string           `json:"error,omitempty"`
}
