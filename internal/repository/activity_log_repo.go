package repository

import (
	"context"

	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/models"
)

type ActivityLogRepository struct {
	db DBTX
}

func NewActivityLogRepository(db DBTX) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

const dailyActivityColumns = `id, user_id, to_char(log_date, 'YYYY-MM-DD'), water_glasses, sleep_hours, created_at, updated_at`

// Upsert writes water/sleep for (user, date); nil fields keep their stored
// value, same COALESCE convention as partial profile updates.
func (r *ActivityLogRepository) Upsert(ctx context.Context, userID int64, date string, waterGlasses *int, sleepHours *float64) (*models.DailyActivity, error) {
	query := `
		INSERT INTO daily_activity (user_id, log_date, water_glasses, sleep_hours)
		VALUES ($1, $2::date, COALESCE($3, 0), COALESCE($4, 0))
		ON CONFLICT (user_id, log_date) DO UPDATE
		SET water_glasses = COALESCE($3, daily_activity.water_glasses),
			sleep_hours = COALESCE($4, daily_activity.sleep_hours),
			updated_at = NOW()
		RETURNING ` + dailyActivityColumns

	var activity models.DailyActivity
	err := r.db.QueryRow(ctx, query, userID, date, waterGlasses, sleepHours).Scan(
		&activity.ID,
		&activity.UserID,
		&activity.Date,
		&activity.WaterGlasses,
		&activity.SleepHours,
		&activity.CreatedAt,
		&activity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *ActivityLogRepository) GetByUserAndDate(ctx context.Context, userID int64, date string) (*models.DailyActivity, error) {
	query := `
		SELECT ` + dailyActivityColumns + `
		FROM daily_activity
		WHERE user_id = $1 AND log_date = $2::date
	`
	var activity models.DailyActivity
	err := r.db.QueryRow(ctx, query, userID, date).Scan(
		&activity.ID,
		&activity.UserID,
		&activity.Date,
		&activity.WaterGlasses,
		&activity.SleepHours,
		&activity.CreatedAt,
		&activity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}
