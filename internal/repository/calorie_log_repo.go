package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/models"
)

type CalorieLogRepository struct {
	db DBTX
}

func NewCalorieLogRepository(db DBTX) *CalorieLogRepository {
	return &CalorieLogRepository{db: db}
}

const dailyLogColumns = `id, user_id, to_char(log_date, 'YYYY-MM-DD'), total_calories, calorie_goal, created_at, updated_at`

// UpsertLog returns the log row for (user, date), creating it if absent.
// The unique index on (user_id, log_date) makes concurrent first-logs for
// the same day converge on a single row instead of racing find-then-create.
func (r *CalorieLogRepository) UpsertLog(ctx context.Context, userID int64, date string) (*models.DailyLog, error) {
	query := `
		INSERT INTO daily_logs (user_id, log_date)
		VALUES ($1, $2::date)
		ON CONFLICT (user_id, log_date) DO UPDATE SET updated_at = NOW()
		RETURNING ` + dailyLogColumns

	var logRow models.DailyLog
	err := r.db.QueryRow(ctx, query, userID, date).Scan(
		&logRow.ID,
		&logRow.UserID,
		&logRow.Date,
		&logRow.TotalCalories,
		&logRow.CalorieGoal,
		&logRow.CreatedAt,
		&logRow.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &logRow, nil
}

// UpsertMeal writes a meal entry keyed by (log, meal type). Re-logging the
// same type overwrites calories and leaves the confirmation flag alone.
func (r *CalorieLogRepository) UpsertMeal(ctx context.Context, logID int64, mealType string, calories int) (*models.MealEntry, error) {
	query := `
		INSERT INTO daily_log_meals (log_id, meal_type, calories)
		VALUES ($1, $2, $3)
		ON CONFLICT (log_id, meal_type) DO UPDATE SET calories = EXCLUDED.calories
		RETURNING id, log_id, meal_type, calories, confirmed
	`
	var entry models.MealEntry
	err := r.db.QueryRow(ctx, query, logID, mealType, calories).Scan(
		&entry.ID,
		&entry.LogID,
		&entry.MealType,
		&entry.Calories,
		&entry.Confirmed,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// RecomputeTotal derives total_calories from the meal rows. The total is
// never written independently of its sources.
func (r *CalorieLogRepository) RecomputeTotal(ctx context.Context, logID int64) (int, error) {
	query := `
		UPDATE daily_logs
		SET total_calories = COALESCE(
				(SELECT SUM(calories) FROM daily_log_meals WHERE log_id = $1), 0),
			updated_at = NOW()
		WHERE id = $1
		RETURNING total_calories
	`
	var total int
	if err := r.db.QueryRow(ctx, query, logID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// SetGoalIfUnset applies the BMI-derived fallback goal. It only wins while
// no goal exists, so an explicit goal is never overwritten.
func (r *CalorieLogRepository) SetGoalIfUnset(ctx context.Context, logID int64, goal int) (bool, error) {
	query := `
		UPDATE daily_logs
		SET calorie_goal = $2, updated_at = NOW()
		WHERE id = $1 AND calorie_goal IS NULL
	`
	tag, err := r.db.Exec(ctx, query, logID, goal)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CalorieLogRepository) SetGoal(ctx context.Context, logID int64, goal int) error {
	query := `
		UPDATE daily_logs
		SET calorie_goal = $2, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, logID, goal)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ConfirmMeal flips confirmed on the matching meal entry for (user, date).
// Returns pgx.ErrNoRows when no log or no such meal exists, without mutating
// anything.
func (r *CalorieLogRepository) ConfirmMeal(ctx context.Context, userID int64, date string, mealType string) error {
	query := `
		UPDATE daily_log_meals m
		SET confirmed = TRUE
		FROM daily_logs l
		WHERE m.log_id = l.id
		  AND l.user_id = $1
		  AND l.log_date = $2::date
		  AND m.meal_type = $3
	`
	tag, err := r.db.Exec(ctx, query, userID, date, mealType)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CalorieLogRepository) GetByUserAndDate(ctx context.Context, userID int64, date string) (*models.DailyLog, error) {
	query := `
		SELECT ` + dailyLogColumns + `
		FROM daily_logs
		WHERE user_id = $1 AND log_date = $2::date
	`
	var logRow models.DailyLog
	err := r.db.QueryRow(ctx, query, userID, date).Scan(
		&logRow.ID,
		&logRow.UserID,
		&logRow.Date,
		&logRow.TotalCalories,
		&logRow.CalorieGoal,
		&logRow.CreatedAt,
		&logRow.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	meals, err := r.listMeals(ctx, []int64{logRow.ID})
	if err != nil {
		return nil, err
	}
	logRow.Meals = meals[logRow.ID]
	if logRow.Meals == nil {
		logRow.Meals = []models.MealEntry{}
	}
	return &logRow, nil
}

// ListSince returns all logs for the user with log_date >= from, newest
// first, meals attached.
func (r *CalorieLogRepository) ListSince(ctx context.Context, userID int64, from string) ([]models.DailyLog, error) {
	query := `
		SELECT ` + dailyLogColumns + `
		FROM daily_logs
		WHERE user_id = $1 AND log_date >= $2::date
		ORDER BY log_date DESC
	`
	rows, err := r.db.Query(ctx, query, userID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.DailyLog{}
	ids := []int64{}
	for rows.Next() {
		var logRow models.DailyLog
		if err := rows.Scan(
			&logRow.ID,
			&logRow.UserID,
			&logRow.Date,
			&logRow.TotalCalories,
			&logRow.CalorieGoal,
			&logRow.CreatedAt,
			&logRow.UpdatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, logRow)
		ids = append(ids, logRow.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	meals, err := r.listMeals(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range logs {
		logs[i].Meals = meals[logs[i].ID]
		if logs[i].Meals == nil {
			logs[i].Meals = []models.MealEntry{}
		}
	}
	return logs, nil
}

func (r *CalorieLogRepository) listMeals(ctx context.Context, logIDs []int64) (map[int64][]models.MealEntry, error) {
	result := make(map[int64][]models.MealEntry, len(logIDs))
	if len(logIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT id, log_id, meal_type, calories, confirmed
		FROM daily_log_meals
		WHERE log_id = ANY($1)
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, logIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.MealEntry
		if err := rows.Scan(&entry.ID, &entry.LogID, &entry.MealType, &entry.Calories, &entry.Confirmed); err != nil {
			return nil, err
		}
		result[entry.LogID] = append(result[entry.LogID], entry)
	}
	return result, rows.Err()
}
