package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/models"
	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/services"
)

type recipeApplicationService interface {
	GenerateRecipe(ctx context.Context, userID, planID int64, mealType string) (*models.Recipe, error)
}

type plannerApplicationService interface {
	GeneratePlan(ctx context.Context, userID int64) (*models.MealPlan, error)
	ListPlans(ctx context.Context, userID int64, limit, offset int) ([]models.MealPlan, int, error)
	GetPlan(ctx context.Context, userID, planID int64) (*models.MealPlan, error)
}

type MealPlanHandler struct {
	recipes recipeApplicationService
	planner plannerApplicationService
}

func NewMealPlanHandler(recipes *services.RecipeService, planner *services.PlannerService) *MealPlanHandler {
	return &MealPlanHandler{
		recipes: recipes,
		planner: planner,
	}
}

type generateRecipeRequest struct {
	MealID   int64  `json:"mealId"`
	MealType string `json:"mealType"`
}

func (h *MealPlanHandler) GenerateRecipe(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req generateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.MealID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "mealId is required"})
	}
	if req.MealType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "mealType is required"})
	}

	recipe, err := h.recipes.GenerateRecipe(c.Context(), userID, req.MealID, req.MealType)
	if err != nil {
		return mapMealPlanError(c, err)
	}

	return c.JSON(fiber.Map{"recipe": recipe})
}

func (h *MealPlanHandler) GeneratePlan(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	plan, err := h.planner.GeneratePlan(c.Context(), userID)
	if err != nil {
		return mapMealPlanError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"plan": plan})
}

func (h *MealPlanHandler) ListPlans(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	page, limit := parsePagination(c)
	plans, total, err := h.planner.ListPlans(c.Context(), userID, limit, (page-1)*limit)
	if err != nil {
		return mapMealPlanError(c, err)
	}

	return c.JSON(fiber.Map{
		"plans":      plans,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func (h *MealPlanHandler) GetPlan(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	planID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || planID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid plan id"})
	}

	plan, err := h.planner.GetPlan(c.Context(), userID, planID)
	if err != nil {
		return mapMealPlanError(c, err)
	}

	return c.JSON(fiber.Map{"plan": plan})
}

func mapMealPlanError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Meal plan not found"})
	case errors.Is(err, services.ErrGeneratorUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Recipe generation is not available"})
	case errors.Is(err, services.ErrGenerationFailed):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Recipe generation failed"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process meal plan request"})
	}
}
