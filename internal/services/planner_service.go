package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/models"
	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/repository"
)

type mealPlanWriter interface {
	Create(ctx context.Context, input repository.CreateMealPlanInput) (*models.MealPlan, error)
	ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]models.MealPlan, error)
	CountByUserID(ctx context.Context, userID int64) (int, error)
	GetByID(ctx context.Context, planID int64) (*models.MealPlan, error)
}

type conditionReader interface {
	ListByUserID(ctx context.Context, userID int64) ([]models.MedicalCondition, error)
}

type PlannerService struct {
	planRepo   mealPlanWriter
	profiles   profileReader
	conditions conditionReader
	generator  RecipeGenerator
}

func NewPlannerService(
	planRepo *repository.MealPlanRepository,
	profiles *repository.UserProfileRepository,
	conditions *repository.MedicalConditionRepository,
	generator RecipeGenerator,
) *PlannerService {
	return &PlannerService{
		planRepo:   planRepo,
		profiles:   profiles,
		conditions: conditions,
		generator:  generator,
	}
}

// GeneratePlan asks the external generator for a full day plan shaped around
// the user's profile and medical conditions, then persists it with one
// section per meal slot. Unlike recipes there is no raw-text fallback: an
// unparseable plan is a generation error.
func (s *PlannerService) GeneratePlan(ctx context.Context, userID int64) (*models.MealPlan, error) {
	if s.generator == nil {
		return nil, ErrGeneratorUnavailable
	}

	prompt, err := s.buildPlanPrompt(ctx, userID)
	if err != nil {
		return nil, err
	}

	generated, err := s.generator.GeneratePlan(ctx, prompt)
	if err != nil {
		return nil, err
	}

	sections := make([]models.MealPlanSection, 0, len(generated.Sections))
	for _, gen := range generated.Sections {
		slot := strings.ToLower(strings.TrimSpace(gen.Slot))
		if !models.ValidMealType(slot) {
			continue
		}
		sections = append(sections, models.MealPlanSection{
			Slot:          slot,
			Foods:         emptyIfNil(gen.Foods),
			Fruits:        emptyIfNil(gen.Fruits),
			Drinks:        emptyIfNil(gen.Drinks),
			Nutrition:     gen.Nutrition,
			EstimatedCost: gen.EstimatedCost,
		})
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: no usable meal slots in plan", ErrGenerationFailed)
	}

	title := strings.TrimSpace(generated.Title)
	if title == "" {
		title = "Daily meal plan"
	}

	return s.planRepo.Create(ctx, repository.CreateMealPlanInput{
		UserID:   userID,
		Title:    title,
		Sections: sections,
	})
}

func (s *PlannerService) ListPlans(ctx context.Context, userID int64, limit, offset int) ([]models.MealPlan, int, error) {
	plans, err := s.planRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.planRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

func (s *PlannerService) GetPlan(ctx context.Context, userID, planID int64) (*models.MealPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrForbidden
	}
	return plan, nil
}

func (s *PlannerService) buildPlanPrompt(ctx context.Context, userID int64) (string, error) {
	var b strings.Builder
	b.WriteString("Create a one-day meal plan as JSON with fields title and sections, " +
		"where each section has slot (breakfast, lunch, snack or dinner), foods, fruits, " +
		"drinks as string arrays, nutrition as a short text and estimatedCost as a number.")

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err == nil {
		if profile.Age != nil {
			fmt.Fprintf(&b, " The person is %d years old.", *profile.Age)
		}
		if profile.Gender != nil {
			fmt.Fprintf(&b, " Gender: %s.", *profile.Gender)
		}
		if profile.HeightFeet != nil && profile.HeightInches != nil && profile.WeightKG != nil {
			if bmi, err := CalculateBMI(*profile.HeightFeet, *profile.HeightInches, *profile.WeightKG); err == nil {
				fmt.Fprintf(&b, " BMI is %.2f with a daily target of about %d calories.", bmi, SuggestCalorieIntake(bmi))
			}
		}
	}

	conditions, err := s.conditions.ListByUserID(ctx, userID)
	if err == nil && len(conditions) > 0 {
		names := make([]string, 0, len(conditions))
		restrictions := []string{}
		for _, condition := range conditions {
			names = append(names, condition.Name)
			restrictions = append(restrictions, condition.DietaryRestrictions...)
		}
		fmt.Fprintf(&b, " Medical conditions: %s.", strings.Join(names, ", "))
		if len(restrictions) > 0 {
			fmt.Fprintf(&b, " Avoid: %s.", strings.Join(restrictions, ", "))
		}
	}

	return b.String(), nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
