package models

import "time"

// DailyActivity tracks water and sleep per calendar day, one row per
// (user, date) like the calorie log.
type DailyActivity struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Date         string    `json:"date"`
	WaterGlasses int       `json:"waterGlasses"`
	SleepHours   float64   `json:"sleepHours"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
