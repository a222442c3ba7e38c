package repository

import (
	"context"

	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/models"
)

type UserProfileRepository struct {
	db DBTX
}

func NewUserProfileRepository(db DBTX) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

const userProfileColumns = `id, user_id, full_name, age, gender, height_feet, height_inches,
	weight_kg, onboarding_complete, created_at, updated_at`

func (r *UserProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO user_profiles (user_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *UserProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	query := `
		SELECT ` + userProfileColumns + `
		FROM user_profiles
		WHERE user_id = $1
	`
	var profile models.UserProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.Age,
		&profile.Gender,
		&profile.HeightFeet,
		&profile.HeightInches,
		&profile.WeightKG,
		&profile.OnboardingComplete,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

type OnboardingInput struct {
	FullName     string
	Age          int
	Gender       string
	HeightFeet   int
	HeightInches int
	WeightKG     float64
}

func (r *UserProfileRepository) UpdateOnboarding(ctx context.Context, userID int64, req OnboardingInput) (*models.UserProfile, error) {
	query := `
		UPDATE user_profiles
		SET full_name = $1,
			age = $2,
			gender = $3,
			height_feet = $4,
			height_inches = $5,
			weight_kg = $6,
			onboarding_complete = TRUE,
			updated_at = NOW()
		WHERE user_id = $7
		RETURNING ` + userProfileColumns

	var profile models.UserProfile
	err := r.db.QueryRow(ctx, query,
		req.FullName,
		req.Age,
		req.Gender,
		req.HeightFeet,
		req.HeightInches,
		req.WeightKG,
		userID,
	).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.Age,
		&profile.Gender,
		&profile.HeightFeet,
		&profile.HeightInches,
		&profile.WeightKG,
		&profile.OnboardingComplete,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

type UpdateProfileInput struct {
	FullName     *string
	Age          *int
	Gender       *string
	HeightFeet   *int
	HeightInches *int
	WeightKG     *float64
}

func (r *UserProfileRepository) UpdatePartial(ctx context.Context, userID int64, req UpdateProfileInput) (*models.UserProfile, error) {
	query := `
		UPDATE user_profiles
		SET full_name = COALESCE($1, full_name),
			age = COALESCE($2, age),
			gender = COALESCE($3, gender),
			height_feet = COALESCE($4, height_feet),
			height_inches = COALESCE($5, height_inches),
			weight_kg = COALESCE($6, weight_kg),
			updated_at = NOW()
		WHERE user_id = $7
		RETURNING ` + userProfileColumns

	var profile models.UserProfile
	err := r.db.QueryRow(ctx, query,
		req.FullName,
		req.Age,
		req.Gender,
		req.HeightFeet,
		req.HeightInches,
		req.WeightKG,
		userID,
	).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.Age,
		&profile.Gender,
		&profile.HeightFeet,
		&profile.HeightInches,
		&profile.WeightKG,
		&profile.OnboardingComplete,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
