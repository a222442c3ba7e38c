package services

import (
	"errors"
	"math"
)

const metersPerInch = 0.0254

// CalculateBMI converts a feet/inches height to meters and returns
// weight / height², rounded to 2 decimal places. Zero or negative height and
// non-positive weight are invalid input, never coerced.
func CalculateBMI(heightFeet, heightInches int, weightKG float64) (float64, error) {
	if heightFeet < 0 || heightInches < 0 {
		return 0, errors.New("height must not be negative")
	}
	totalInches := heightFeet*12 + heightInches
	if totalInches == 0 {
		return 0, errors.New("height must be greater than zero")
	}
	if weightKG <= 0 {
		return 0, errors.New("weight must be greater than zero")
	}

	heightMeters := float64(totalInches) * metersPerInch
	bmi := weightKG / (heightMeters * heightMeters)
	return math.Round(bmi*100) / 100, nil
}

// SuggestCalorieIntake maps a BMI value onto a recommended daily intake.
// Ordered range checks, first match wins; boundary values fall into the
// lower-calorie bracket via the strict upper bounds.
func SuggestCalorieIntake(bmi float64) int {
	switch {
	case bmi < 18.5:
		return 2500
	case bmi < 24.9:
		return 2200
	case bmi < 29.9:
		return 2000
	default:
		return 1800
	}
}
