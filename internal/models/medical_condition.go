package models

import "time"

// MedicalCondition is a global catalog entry referenced by users. Derived
// conditions ("Pregnant", "Gestational Diabetes") are find-or-created by
// name, so Name is unique.
type MedicalCondition struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	DietaryRestrictions []string  `json:"dietary_restrictions"`
	Severity            *string   `json:"severity"`
	CalorieMin          *int      `json:"calorie_min"`
	CalorieMax          *int      `json:"calorie_max"`
	CreatedAt           time.Time `json:"created_at"`
}
