package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/models"
)

type MealPlanRepository struct {
	db DBTX
}

func NewMealPlanRepository(db DBTX) *MealPlanRepository {
	return &MealPlanRepository{db: db}
}

type CreateMealPlanInput struct {
	UserID   int64
	Title    string
	Sections []models.MealPlanSection
}

func (r *MealPlanRepository) Create(ctx context.Context, input CreateMealPlanInput) (*models.MealPlan, error) {
	query := `
		INSERT INTO meal_plans (user_id, title)
		VALUES ($1, $2)
		RETURNING id, user_id, title, created_at, updated_at
	`
	var plan models.MealPlan
	err := r.db.QueryRow(ctx, query, input.UserID, input.Title).Scan(
		&plan.ID,
		&plan.UserID,
		&plan.Title,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	sectionQuery := `
		INSERT INTO meal_plan_sections (meal_plan_id, slot, foods, fruits, drinks, nutrition, estimated_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	for _, section := range input.Sections {
		stored := section
		stored.MealPlanID = plan.ID
		err := r.db.QueryRow(ctx, sectionQuery,
			plan.ID,
			stored.Slot,
			stored.Foods,
			stored.Fruits,
			stored.Drinks,
			stored.Nutrition,
			stored.EstimatedCost,
		).Scan(&stored.ID)
		if err != nil {
			return nil, fmt.Errorf("insert %s section: %w", stored.Slot, err)
		}
		plan.Sections = append(plan.Sections, stored)
	}

	return &plan, nil
}

func (r *MealPlanRepository) GetByID(ctx context.Context, planID int64) (*models.MealPlan, error) {
	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM meal_plans
		WHERE id = $1
	`
	var plan models.MealPlan
	err := r.db.QueryRow(ctx, query, planID).Scan(
		&plan.ID,
		&plan.UserID,
		&plan.Title,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	sections, err := r.listSections(ctx, planID)
	if err != nil {
		return nil, err
	}
	plan.Sections = sections
	return &plan, nil
}

func (r *MealPlanRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]models.MealPlan, error) {
	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM meal_plans
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []models.MealPlan{}
	for rows.Next() {
		var plan models.MealPlan
		if err := rows.Scan(&plan.ID, &plan.UserID, &plan.Title, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range plans {
		sections, err := r.listSections(ctx, plans[i].ID)
		if err != nil {
			return nil, err
		}
		plans[i].Sections = sections
	}
	return plans, nil
}

func (r *MealPlanRepository) CountByUserID(ctx context.Context, userID int64) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM meal_plans WHERE user_id = $1`, userID).Scan(&total)
	return total, err
}

// SetSectionRecipe stores a generated recipe into a slot, but only while the
// slot is still empty. Returns false when another writer got there first; the
// caller should re-read and serve the stored recipe.
func (r *MealPlanRepository) SetSectionRecipe(ctx context.Context, planID int64, slot string, recipe *models.Recipe) (bool, error) {
	payload, err := json.Marshal(recipe)
	if err != nil {
		return false, fmt.Errorf("marshal recipe: %w", err)
	}

	query := `
		UPDATE meal_plan_sections
		SET recipe = $3
		WHERE meal_plan_id = $1 AND slot = $2 AND recipe IS NULL
	`
	tag, err := r.db.Exec(ctx, query, planID, slot, payload)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *MealPlanRepository) GetSectionRecipe(ctx context.Context, planID int64, slot string) (*models.Recipe, error) {
	query := `
		SELECT recipe
		FROM meal_plan_sections
		WHERE meal_plan_id = $1 AND slot = $2
	`
	var payload []byte
	if err := r.db.QueryRow(ctx, query, planID, slot).Scan(&payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}

	var recipe models.Recipe
	if err := json.Unmarshal(payload, &recipe); err != nil {
		return nil, fmt.Errorf("unmarshal stored recipe: %w", err)
	}
	return &recipe, nil
}

func (r *MealPlanRepository) listSections(ctx context.Context, planID int64) ([]models.MealPlanSection, error) {
	query := `
		SELECT id, meal_plan_id, slot, foods, fruits, drinks, nutrition, estimated_cost, recipe
		FROM meal_plan_sections
		WHERE meal_plan_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := []models.MealPlanSection{}
	for rows.Next() {
		var section models.MealPlanSection
		var recipePayload []byte
		if err := rows.Scan(
			&section.ID,
			&section.MealPlanID,
			&section.Slot,
			&section.Foods,
			&section.Fruits,
			&section.Drinks,
			&section.Nutrition,
			&section.EstimatedCost,
			&recipePayload,
		); err != nil {
			return nil, err
		}
		if recipePayload != nil {
			var recipe models.Recipe
			if err := json.Unmarshal(recipePayload, &recipe); err != nil {
				return nil, fmt.Errorf("unmarshal stored recipe: %w", err)
			}
			section.Recipe = &recipe
		}
		sections = append(sections, section)
	}
	return sections, rows.Err()
}
