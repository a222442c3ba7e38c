package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/models"
)

type stubMealPlanStore struct {
	plan       *models.MealPlan
	stored     map[string]*models.Recipe
	storeCalls int
	loseRace   bool
	raceRecipe *models.Recipe
}

func (s *stubMealPlanStore) GetByID(_ context.Context, planID int64) (*models.MealPlan, error) {
	if s.plan == nil || s.plan.ID != planID {
		return nil, pgx.ErrNoRows
	}
	return s.plan, nil
}

func (s *stubMealPlanStore) SetSectionRecipe(_ context.Context, _ int64, slot string, recipe *models.Recipe) (bool, error) {
	s.storeCalls++
	if s.loseRace {
		return false, nil
	}
	if s.stored == nil {
		s.stored = map[string]*models.Recipe{}
	}
	s.stored[slot] = recipe
	return true, nil
}

func (s *stubMealPlanStore) GetSectionRecipe(_ context.Context, _ int64, slot string) (*models.Recipe, error) {
	if s.loseRace {
		return s.raceRecipe, nil
	}
	return s.stored[slot], nil
}

type stubGenerator struct {
	recipe *models.Recipe
	err    error
	calls  int
}

func (s *stubGenerator) GenerateRecipe(_ context.Context, _ string) (*models.Recipe, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.recipe, nil
}

func (s *stubGenerator) GeneratePlan(_ context.Context, _ string) (*GeneratedPlan, error) {
	return nil, errors.New("not implemented")
}

func testPlan(userID int64, lunchRecipe *models.Recipe) *models.MealPlan {
	return &models.MealPlan{
		ID:     7,
		UserID: userID,
		Sections: []models.MealPlanSection{
			{Slot: models.MealTypeLunch, Foods: []string{"rice", "chicken"}, Recipe: lunchRecipe},
		},
	}
}

func TestGenerateRecipeStoresResult(t *testing.T) {
	store := &stubMealPlanStore{plan: testPlan(1, nil)}
	generated := &models.Recipe{Title: "Chicken Rice Bowl", Ingredients: []string{"rice"}, Steps: []string{"cook"}}
	generator := &stubGenerator{recipe: generated}
	service := NewRecipeService(store, generator)

	recipe, err := service.GenerateRecipe(context.Background(), 1, 7, models.MealTypeLunch)
	if err != nil {
		t.Fatalf("GenerateRecipe: %v", err)
	}
	if recipe.Title != "Chicken Rice Bowl" {
		t.Fatalf("unexpected recipe: %+v", recipe)
	}
	if generator.calls != 1 {
		t.Fatalf("expected 1 generator call, got %d", generator.calls)
	}
	if store.stored[models.MealTypeLunch] != generated {
		t.Fatalf("expected recipe stored for lunch")
	}
}

func TestGenerateRecipeServesCacheWithoutGenerator(t *testing.T) {
	cached := &models.Recipe{Title: "Stored"}
	store := &stubMealPlanStore{plan: testPlan(1, cached)}
	generator := &stubGenerator{recipe: &models.Recipe{Title: "Fresh"}}
	service := NewRecipeService(store, generator)

	recipe, err := service.GenerateRecipe(context.Background(), 1, 7, models.MealTypeLunch)
	if err != nil {
		t.Fatalf("GenerateRecipe: %v", err)
	}
	if recipe != cached {
		t.Fatalf("expected cached recipe, got %+v", recipe)
	}
	if generator.calls != 0 {
		t.Fatalf("expected no generator call on cache hit, got %d", generator.calls)
	}
}

func TestGenerateRecipeLostRaceServesWinner(t *testing.T) {
	winner := &models.Recipe{Title: "Winner"}
	store := &stubMealPlanStore{plan: testPlan(1, nil), loseRace: true, raceRecipe: winner}
	generator := &stubGenerator{recipe: &models.Recipe{Title: "Loser"}}
	service := NewRecipeService(store, generator)

	recipe, err := service.GenerateRecipe(context.Background(), 1, 7, models.MealTypeLunch)
	if err != nil {
		t.Fatalf("GenerateRecipe: %v", err)
	}
	if recipe != winner {
		t.Fatalf("expected the winning writer's recipe, got %+v", recipe)
	}
}

func TestGenerateRecipeRejectsForeignPlan(t *testing.T) {
	store := &stubMealPlanStore{plan: testPlan(2, nil)}
	service := NewRecipeService(store, &stubGenerator{})

	if _, err := service.GenerateRecipe(context.Background(), 1, 7, models.MealTypeLunch); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGenerateRecipeValidatesInput(t *testing.T) {
	store := &stubMealPlanStore{plan: testPlan(1, nil)}
	service := NewRecipeService(store, &stubGenerator{})

	if _, err := service.GenerateRecipe(context.Background(), 1, 0, models.MealTypeLunch); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero plan id, got %v", err)
	}
	if _, err := service.GenerateRecipe(context.Background(), 1, 7, "elevenses"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown slot, got %v", err)
	}
	// The plan has no dinner section.
	if _, err := service.GenerateRecipe(context.Background(), 1, 7, models.MealTypeDinner); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing section, got %v", err)
	}
}

func TestGenerateRecipeWithoutGeneratorConfigured(t *testing.T) {
	store := &stubMealPlanStore{plan: testPlan(1, nil)}
	service := NewRecipeService(store, nil)

	if _, err := service.GenerateRecipe(context.Background(), 1, 7, models.MealTypeLunch); !errors.Is(err, ErrGeneratorUnavailable) {
		t.Fatalf("expected ErrGeneratorUnavailable, got %v", err)
	}
}
