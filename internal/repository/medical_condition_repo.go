package repository

import (
	"context"

	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/models"
)

type MedicalConditionRepository struct {
	db DBTX
}

func NewMedicalConditionRepository(db DBTX) *MedicalConditionRepository {
	return &MedicalConditionRepository{db: db}
}

const conditionColumns = `id, name, dietary_restrictions, severity, calorie_min, calorie_max, created_at`

type ConditionInput struct {
	Name                string
	DietaryRestrictions []string
	Severity            *string
	CalorieMin          *int
	CalorieMax          *int
}

// FindOrCreate is idempotent on name: repeated calls for the same condition
// return the existing row untouched.
func (r *MedicalConditionRepository) FindOrCreate(ctx context.Context, input ConditionInput) (*models.MedicalCondition, error) {
	query := `
		INSERT INTO medical_conditions (name, dietary_restrictions, severity, calorie_min, calorie_max)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING ` + conditionColumns

	var condition models.MedicalCondition
	err := r.db.QueryRow(ctx, query,
		input.Name,
		input.DietaryRestrictions,
		input.Severity,
		input.CalorieMin,
		input.CalorieMax,
	).Scan(
		&condition.ID,
		&condition.Name,
		&condition.DietaryRestrictions,
		&condition.Severity,
		&condition.CalorieMin,
		&condition.CalorieMax,
		&condition.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &condition, nil
}

func (r *MedicalConditionRepository) ListAll(ctx context.Context) ([]models.MedicalCondition, error) {
	query := `SELECT ` + conditionColumns + ` FROM medical_conditions ORDER BY name`
	return r.queryConditions(ctx, query)
}

func (r *MedicalConditionRepository) LinkToUser(ctx context.Context, userID, conditionID int64) error {
	query := `
		INSERT INTO user_medical_conditions (user_id, condition_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, userID, conditionID)
	return err
}

func (r *MedicalConditionRepository) ListByUserID(ctx context.Context, userID int64) ([]models.MedicalCondition, error) {
	query := `
		SELECT c.id, c.name, c.dietary_restrictions, c.severity, c.calorie_min, c.calorie_max, c.created_at
		FROM medical_conditions c
		JOIN user_medical_conditions uc ON uc.condition_id = c.id
		WHERE uc.user_id = $1
		ORDER BY c.name
	`
	return r.queryConditions(ctx, query, userID)
}

func (r *MedicalConditionRepository) queryConditions(ctx context.Context, query string, args ...any) ([]models.MedicalCondition, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conditions := []models.MedicalCondition{}
	for rows.Next() {
		var condition models.MedicalCondition
		if err := rows.Scan(
			&condition.ID,
			&condition.Name,
			&condition.DietaryRestrictions,
			&condition.Severity,
			&condition.CalorieMin,
			&condition.CalorieMax,
			&condition.CreatedAt,
		); err != nil {
			return nil, err
		}
		conditions = append(conditions, condition)
	}
	return conditions, rows.Err()
}
