package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/models"
	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/repository"
)

type stubMealPlanWriter struct {
	created *repository.CreateMealPlanInput
	plans   []models.MealPlan
}

func (s *stubMealPlanWriter) Create(_ context.Context, input repository.CreateMealPlanInput) (*models.MealPlan, error) {
	s.created = &input
	plan := &models.MealPlan{ID: 1, UserID: input.UserID, Title: input.Title, Sections: input.Sections}
	return plan, nil
}

func (s *stubMealPlanWriter) ListByUserID(_ context.Context, _ int64, limit, offset int) ([]models.MealPlan, error) {
	if offset >= len(s.plans) {
		return []models.MealPlan{}, nil
	}
	end := offset + limit
	if end > len(s.plans) {
		end = len(s.plans)
	}
	return s.plans[offset:end], nil
}

func (s *stubMealPlanWriter) CountByUserID(_ context.Context, _ int64) (int, error) {
	return len(s.plans), nil
}

func (s *stubMealPlanWriter) GetByID(_ context.Context, planID int64) (*models.MealPlan, error) {
	for i := range s.plans {
		if s.plans[i].ID == planID {
			return &s.plans[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

type stubConditionReader struct {
	conditions []models.MedicalCondition
}

func (s *stubConditionReader) ListByUserID(_ context.Context, _ int64) ([]models.MedicalCondition, error) {
	return s.conditions, nil
}

type stubPlanGenerator struct {
	plan       *GeneratedPlan
	err        error
	lastPrompt string
}

func (s *stubPlanGenerator) GenerateRecipe(_ context.Context, _ string) (*models.Recipe, error) {
	return nil, errors.New("not implemented")
}

func (s *stubPlanGenerator) GeneratePlan(_ context.Context, prompt string) (*GeneratedPlan, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return nil, s.err
	}
	return s.plan, nil
}

func newTestPlannerService(store *stubMealPlanWriter, profiles profileReader, conditions conditionReader, generator RecipeGenerator) *PlannerService {
	return &PlannerService{
		planRepo:   store,
		profiles:   profiles,
		conditions: conditions,
		generator:  generator,
	}
}

func TestGeneratePlanPersistsValidSlots(t *testing.T) {
	store := &stubMealPlanWriter{}
	generator := &stubPlanGenerator{plan: &GeneratedPlan{
		Title: "Balanced day",
		Sections: []GeneratedPlanSection{
			{Slot: "Breakfast", Foods: []string{"oats"}},
			{Slot: "brunch", Foods: []string{"ignored"}},
			{Slot: "dinner", Foods: []string{"fish"}, Fruits: []string{"apple"}},
		},
	}}
	service := newTestPlannerService(store, &stubProfileReader{err: pgx.ErrNoRows}, &stubConditionReader{}, generator)

	plan, err := service.GeneratePlan(context.Background(), 1)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}

	if plan.Title != "Balanced day" {
		t.Fatalf("unexpected title %q", plan.Title)
	}
	// The unknown "brunch" slot is dropped, slots are normalized to lower case.
	if got := len(plan.Sections); got != 2 {
		t.Fatalf("expected 2 sections, got %d", got)
	}
	if plan.Sections[0].Slot != models.MealTypeBreakfast || plan.Sections[1].Slot != models.MealTypeDinner {
		t.Fatalf("unexpected slots: %+v", plan.Sections)
	}
	if plan.Sections[0].Fruits == nil || plan.Sections[0].Drinks == nil {
		t.Fatalf("expected empty slices instead of nil: %+v", plan.Sections[0])
	}
}

func TestGeneratePlanFailsWhenNoUsableSlots(t *testing.T) {
	generator := &stubPlanGenerator{plan: &GeneratedPlan{
		Sections: []GeneratedPlanSection{{Slot: "supper"}},
	}}
	service := newTestPlannerService(&stubMealPlanWriter{}, &stubProfileReader{err: pgx.ErrNoRows}, &stubConditionReader{}, generator)

	if _, err := service.GeneratePlan(context.Background(), 1); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGeneratePlanWithoutGenerator(t *testing.T) {
	service := newTestPlannerService(&stubMealPlanWriter{}, &stubProfileReader{}, &stubConditionReader{}, nil)

	if _, err := service.GeneratePlan(context.Background(), 1); !errors.Is(err, ErrGeneratorUnavailable) {
		t.Fatalf("expected ErrGeneratorUnavailable, got %v", err)
	}
}

func TestGeneratePlanPromptCarriesProfileAndConditions(t *testing.T) {
	severity := "moderate"
	generator := &stubPlanGenerator{plan: &GeneratedPlan{
		Sections: []GeneratedPlanSection{{Slot: "lunch"}},
	}}
	service := newTestPlannerService(&stubMealPlanWriter{},
		&stubProfileReader{profile: completeProfile(5, 7, 70)},
		&stubConditionReader{conditions: []models.MedicalCondition{
			{Name: "Diabetes", DietaryRestrictions: []string{"low sugar"}, Severity: &severity},
		}},
		generator,
	)

	if _, err := service.GeneratePlan(context.Background(), 1); err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}

	prompt := generator.lastPrompt
	if !strings.Contains(prompt, "BMI is 24.17") {
		t.Fatalf("expected BMI in prompt, got %q", prompt)
	}
	if !strings.Contains(prompt, "2200 calories") {
		t.Fatalf("expected calorie target in prompt, got %q", prompt)
	}
	if !strings.Contains(prompt, "Diabetes") || !strings.Contains(prompt, "low sugar") {
		t.Fatalf("expected conditions in prompt, got %q", prompt)
	}
}

func TestGetPlanEnforcesOwnership(t *testing.T) {
	store := &stubMealPlanWriter{plans: []models.MealPlan{{ID: 5, UserID: 2}}}
	service := newTestPlannerService(store, &stubProfileReader{}, &stubConditionReader{}, nil)

	if _, err := service.GetPlan(context.Background(), 1, 5); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	plan, err := service.GetPlan(context.Background(), 2, 5)
	if err != nil {
		t.Fatalf("GetPlan as owner: %v", err)
	}
	if plan.ID != 5 {
		t.Fatalf("unexpected plan %+v", plan)
	}
}

func TestListPlansReturnsTotalCount(t *testing.T) {
	store := &stubMealPlanWriter{plans: []models.MealPlan{
		{ID: 1, UserID: 1}, {ID: 2, UserID: 1}, {ID: 3, UserID: 1},
	}}
	service := newTestPlannerService(store, &stubProfileReader{}, &stubConditionReader{}, nil)

	plans, total, err := service.ListPlans(context.Background(), 1, 2, 0)
	if err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	if len(plans) != 2 || total != 3 {
		t.Fatalf("expected 2 plans of 3 total, got %d of %d", len(plans), total)
	}
}
