package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/models"
)

type activityStore interface {
	Upsert(ctx context.Context, userID int64, date string, waterGlasses *int, sleepHours *float64) (*models.DailyActivity, error)
	GetByUserAndDate(ctx context.Context, userID int64, date string) (*models.DailyActivity, error)
}

type ActivityHandler struct {
	activityRepo activityStore
	today        func() string
}

func NewActivityHandler(activityRepo activityStore, today func() string) *ActivityHandler {
	return &ActivityHandler{
		activityRepo: activityRepo,
		today:        today,
	}
}

type logActivityRequest struct {
	WaterGlasses *int     `json:"waterGlasses"`
	SleepHours   *float64 `json:"sleepHours"`
}

func (h *ActivityHandler) LogActivity(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req logActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.WaterGlasses == nil && req.SleepHours == nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "waterGlasses or sleepHours is required"})
	}
	if req.WaterGlasses != nil && *req.WaterGlasses < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "waterGlasses must not be negative"})
	}
	if req.SleepHours != nil && (*req.SleepHours < 0 || *req.SleepHours > 24) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "sleepHours must be between 0 and 24"})
	}

	activity, err := h.activityRepo.Upsert(c.Context(), userID, h.today(), req.WaterGlasses, req.SleepHours)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to log activity"})
	}

	return c.JSON(fiber.Map{"activity": activity})
}

func (h *ActivityHandler) GetToday(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	activity, err := h.activityRepo.GetByUserAndDate(c.Context(), userID, h.today())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(fiber.Map{})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch activity"})
	}

	return c.JSON(activity)
}
