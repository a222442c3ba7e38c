package models

import "time"

// Meal slot names accepted by the daily log and meal plans.
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

func ValidMealType(mealType string) bool {
	switch mealType {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

// DailyLog is the per-user, per-calendar-day calorie record. There is exactly
// one row per (user, date), enforced by a unique index and upsert writes.
// TotalCalories is always recomputed from the meals in the same transaction
// that mutates them.
type DailyLog struct {
	ID            int64       `json:"id"`
	UserID        int64       `json:"userId"`
	Date          string      `json:"date"`
	Meals         []MealEntry `json:"meals"`
	TotalCalories int         `json:"totalCalories"`
	CalorieGoal   *int        `json:"calorieGoal"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// MealEntry is one logged meal. At most one entry exists per meal type per
// day; re-logging a type overwrites its calories.
type MealEntry struct {
	ID        int64  `json:"id"`
	LogID     int64  `json:"-"`
	MealType  string `json:"mealType"`
	Calories  int    `json:"calories"`
	Confirmed bool   `json:"confirmed"`
}
