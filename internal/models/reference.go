package models

import "time"

// Reference data is maintained on the backend (admin-curated food items,
// meal templates, exercise templates, medication quick picks) and cached
// locally so the journal forms can resolve names and ids offline.

// FoodItem describes one food with per-serving macros.
type FoodItem struct {
	Id           int64     `json:"id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	ServingName  string    `json:"serving_name"`
	ServingGrams Dec2      `json:"serving_grams"`
	CaloriesKcal Dec2      `json:"calories_kcal"`
	CarbsG       Dec2      `json:"carbs_g"`
	FiberG       Dec2      `json:"fiber_g"`
	ProteinG     Dec2      `json:"protein_g"`
	FatG         Dec2      `json:"fat_g"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MealTemplateItem is one food line inside a meal template.
type MealTemplateItem struct {
	Id           int64  `json:"id"`
	FoodItemId   int64  `json:"food_item_id"`
	FoodItemName string `json:"food_item_name"`
	Grams        Dec2   `json:"grams"`
	SortOrder    int    `json:"sort_order"`
}

// MealTemplate is a named set of food items for quick meal logging.
type MealTemplate struct {
	Id        int64              `json:"id"`
	Name      string             `json:"name"`
	Notes     string             `json:"notes,omitempty"`
	UpdatedAt time.Time          `json:"updated_at"`
	Items     []MealTemplateItem `json:"items"`
}

// ExerciseTemplate predefines a common exercise with default reps/weight.
type ExerciseTemplate struct {
	Id              int64  `json:"id"`
	Name            string `json:"name"`
	DefaultReps     int    `json:"default_reps"`
	DefaultWeightKg Dec2   `json:"default_weight_kg"`
	Notes           string `json:"notes,omitempty"`
}

// MedicationOption is an admin-created medication preset ("Metformin 1000 mg").
type MedicationOption struct {
	Id     int64  `json:"id"`
	Name   string `json:"name"`
	DoseMg int    `json:"dose_mg"`
	Label  string `json:"label"`
	Notes  string `json:"notes,omitempty"`
}
