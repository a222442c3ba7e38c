package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/models"
)

type mealPlanStore interface {
	GetByID(ctx context.Context, planID int64) (*models.MealPlan, error)
	SetSectionRecipe(ctx context.Context, planID int64, slot string, recipe *models.Recipe) (bool, error)
	GetSectionRecipe(ctx context.Context, planID int64, slot string) (*models.Recipe, error)
}

type RecipeService struct {
	planRepo  mealPlanStore
	generator RecipeGenerator
}

func NewRecipeService(planRepo mealPlanStore, generator RecipeGenerator) *RecipeService {
	return &RecipeService{
		planRepo:  planRepo,
		generator: generator,
	}
}

// GenerateRecipe returns the recipe for a plan slot, invoking the external
// generator at most once per slot. Once a recipe is stored it is immutable
// cache: later calls return it without touching the generator, and a caller
// that loses the store race gets the winner's recipe.
func (s *RecipeService) GenerateRecipe(ctx context.Context, userID, planID int64, mealType string) (*models.Recipe, error) {
	if planID <= 0 || !models.ValidMealType(mealType) {
		return nil, ErrInvalidInput
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrForbidden
	}

	section := plan.Section(mealType)
	if section == nil {
		return nil, ErrInvalidInput
	}
	if section.Recipe != nil {
		return section.Recipe, nil
	}

	if s.generator == nil {
		return nil, ErrGeneratorUnavailable
	}

	recipe, err := s.generator.GenerateRecipe(ctx, buildRecipePrompt(section))
	if err != nil {
		return nil, err
	}

	stored, err := s.planRepo.SetSectionRecipe(ctx, planID, mealType, recipe)
	if err != nil {
		return nil, err
	}
	if !stored {
		// Another request populated the slot first; serve its result.
		cached, err := s.planRepo.GetSectionRecipe(ctx, planID, mealType)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			return cached, nil
		}
	}
	return recipe, nil
}

func buildRecipePrompt(section *models.MealPlanSection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a simple %s recipe as JSON with fields title, ingredients (array of strings) and steps (array of strings).", section.Slot)
	if len(section.Foods) > 0 {
		fmt.Fprintf(&b, " Use these foods: %s.", strings.Join(section.Foods, ", "))
	}
	if len(section.Fruits) > 0 {
		fmt.Fprintf(&b, " Include fruits: %s.", strings.Join(section.Fruits, ", "))
	}
	if len(section.Drinks) > 0 {
		fmt.Fprintf(&b, " Suggested drinks: %s.", strings.Join(section.Drinks, ", "))
	}
	return b.String()
}
