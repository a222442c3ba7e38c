package models

import "time"

// UserProfile holds the physical attributes used for BMI and calorie goal
// derivation. Height is stored the way the mobile client collects it,
// feet plus inches.
type UserProfile struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	FullName           *string   `json:"full_name"`
	Age                *int      `json:"age"`
	Gender             *string   `json:"gender"`
	HeightFeet         *int      `json:"height_feet"`
	HeightInches       *int      `json:"height_inches"`
	WeightKG           *float64  `json:"weight_kg"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
