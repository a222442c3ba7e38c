package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/models"
	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/services"
)

type calorieApplicationService interface {
	LogMeal(ctx context.Context, userID int64, mealType string, calories int) (*models.DailyLog, error)
	SetGoal(ctx context.Context, userID int64, goal int) (*models.DailyLog, error)
	ConfirmMeal(ctx context.Context, userID int64, mealType string) (*models.DailyLog, error)
	GetToday(ctx context.Context, userID int64) (*models.DailyLog, error)
	GetWeekly(ctx context.Context, userID int64) ([]models.DailyLog, error)
}

type CalorieHandler struct {
	service calorieApplicationService
}

func NewCalorieHandler(service *services.CalorieService) *CalorieHandler {
	return &CalorieHandler{service: service}
}

type logMealRequest struct {
	MealType string `json:"mealType"`
	Calories *int   `json:"calories"`
}

type setGoalRequest struct {
	CalorieGoal *int `json:"calorieGoal"`
}

type confirmMealRequest struct {
	MealType string `json:"mealType"`
}

func (h *CalorieHandler) LogMeal(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req logMealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.MealType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "mealType is required"})
	}
	if req.Calories == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "calories is required"})
	}

	logRow, err := h.service.LogMeal(c.Context(), userID, req.MealType, *req.Calories)
	if err != nil {
		return mapCalorieError(c, err)
	}

	return c.JSON(fiber.Map{"log": logRow})
}

func (h *CalorieHandler) SetGoal(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req setGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.CalorieGoal == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "calorieGoal is required"})
	}

	logRow, err := h.service.SetGoal(c.Context(), userID, *req.CalorieGoal)
	if err != nil {
		return mapCalorieError(c, err)
	}

	return c.JSON(fiber.Map{"log": logRow})
}

func (h *CalorieHandler) ConfirmMeal(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req confirmMealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.MealType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "mealType is required"})
	}

	logRow, err := h.service.ConfirmMeal(c.Context(), userID, req.MealType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"error": "No matching meal logged today"})
		}
		return mapCalorieError(c, err)
	}

	return c.JSON(fiber.Map{"log": logRow})
}

// GetToday keeps the client contract of the mobile app: when nothing has
// been logged yet the response is an empty object, not a 404.
func (h *CalorieHandler) GetToday(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	logRow, err := h.service.GetToday(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(fiber.Map{})
		}
		return mapCalorieError(c, err)
	}

	return c.JSON(logRow)
}

func (h *CalorieHandler) GetWeekly(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	logs, err := h.service.GetWeekly(c.Context(), userID)
	if err != nil {
		return mapCalorieError(c, err)
	}

	return c.JSON(fiber.Map{"logs": logs})
}

func mapCalorieError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Log not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process calorie request"})
	}
}
