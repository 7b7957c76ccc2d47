// Package models defines client-side data models for the health journal.
package models

import "time"

// Outbox events are the user-entered side of a sync payload. Each event gets
// a client-generated UUID when the user saves the form; the backend upserts
// on that UUID, so resubmitting the same event after a failed attempt is
// harmless. Events are immutable once created: they are appended to the
// outbox, ride along in exactly one in-flight attempt at a time, and are
// removed as a whole once that attempt is acknowledged.

// MealItem is a snapshot of one food line inside a logged meal.
type MealItem struct {
	FoodItemId int64 `json:"food_item_id"`
	Grams      Dec2  `json:"grams"`
	SortOrder  int   `json:"sort_order"`
}

// MealEvent records that the user ate something at a point in time, either
// picked from a meal template or composed from individual food items.
type MealEvent struct {
	ClientUUID     string     `json:"client_uuid"`
	EatenAt        time.Time  `json:"eaten_at"`
	MealTemplateId *int64     `json:"meal_template_id"`
	Notes          string     `json:"notes,omitempty"`
	Items          []MealItem `json:"items"`
}

// MedicationEvent records a medication intake, referencing one of the
// backend-defined medication options.
type MedicationEvent struct {
	ClientUUID string    `json:"client_uuid"`
	TakenAt    time.Time `json:"taken_at"`
	OptionId   int64     `json:"option_id"`
	Notes      string    `json:"notes,omitempty"`
}

// ExerciseSet records one strength-training set logged by hand.
type ExerciseSet struct {
	ClientUUID  string    `json:"client_uuid"`
	PerformedAt time.Time `json:"performed_at"`
	TemplateId  *int64    `json:"template_id"`
	Name        string    `json:"name"`
	Reps        int       `json:"reps"`
	WeightKg    Dec2      `json:"weight_kg"`
	Source      string    `json:"source"`
}

// OutboxSnapshot is a point-in-time copy of the outbox contents taken at the
// start of a sync attempt. Events appended while the attempt is in flight are
// not part of it and surface in the next attempt's snapshot.
type OutboxSnapshot struct {
	Meals        []MealEvent
	Medications  []MedicationEvent
	ExerciseSets []ExerciseSet
}

// Empty reports whether the snapshot holds no events at all.
func (s *OutboxSnapshot) Empty() bool {
	return len(s.Meals) == 0 && len(s.Medications) == 0 && len(s.ExerciseSets) == 0
}

// OutboxCounts summarizes how many events of each kind await submission.
type OutboxCounts struct {
	Meals        int
	Medications  int
	ExerciseSets int
}

// Total returns the number of pending events across all categories.
func (c OutboxCounts) Total() int {
	return c.Meals + c.Medications + c.ExerciseSets
}
