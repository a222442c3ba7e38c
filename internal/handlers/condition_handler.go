package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/models"
	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/repository"
)

type conditionStore interface {
	FindOrCreate(ctx context.Context, input repository.ConditionInput) (*models.MedicalCondition, error)
	ListAll(ctx context.Context) ([]models.MedicalCondition, error)
	LinkToUser(ctx context.Context, userID, conditionID int64) error
	ListByUserID(ctx context.Context, userID int64) ([]models.MedicalCondition, error)
}

type ConditionHandler struct {
	conditionRepo conditionStore
}

func NewConditionHandler(conditionRepo conditionStore) *ConditionHandler {
	return &ConditionHandler{conditionRepo: conditionRepo}
}

type attachConditionRequest struct {
	Name                string   `json:"name"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Severity            *string  `json:"severity"`
	CalorieMin          *int     `json:"calorie_min"`
	CalorieMax          *int     `json:"calorie_max"`
}

func (h *ConditionHandler) ListCatalog(c *fiber.Ctx) error {
	conditions, err := h.conditionRepo.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch conditions"})
	}
	return c.JSON(fiber.Map{"conditions": conditions})
}

// AttachCondition find-or-creates a catalog entry by name and links it to
// the caller. Re-attaching the same condition is a no-op.
func (h *ConditionHandler) AttachCondition(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req attachConditionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	if req.CalorieMin != nil && req.CalorieMax != nil && *req.CalorieMin > *req.CalorieMax {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "calorie_min must not exceed calorie_max"})
	}

	condition, err := h.conditionRepo.FindOrCreate(c.Context(), repository.ConditionInput{
		Name:                req.Name,
		DietaryRestrictions: req.DietaryRestrictions,
		Severity:            req.Severity,
		CalorieMin:          req.CalorieMin,
		CalorieMax:          req.CalorieMax,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save condition"})
	}

	if err := h.conditionRepo.LinkToUser(c.Context(), userID, condition.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to link condition"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"condition": condition})
}

func (h *ConditionHandler) ListUserConditions(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	conditions, err := h.conditionRepo.ListByUserID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch conditions"})
	}
	return c.JSON(fiber.Map{"conditions": conditions})
}
