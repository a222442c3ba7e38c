package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/models"
	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/repository"
	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/services"
)

type profileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
	UpdateOnboarding(ctx context.Context, userID int64, req repository.OnboardingInput) (*models.UserProfile, error)
	UpdatePartial(ctx context.Context, userID int64, req repository.UpdateProfileInput) (*models.UserProfile, error)
}

type ProfileHandler struct {
	profileRepo profileStore
}

func NewProfileHandler(profileRepo profileStore) *ProfileHandler {
	return &ProfileHandler{profileRepo: profileRepo}
}

type onboardingRequest struct {
	FullName     string  `json:"full_name"`
	Age          int     `json:"age"`
	Gender       string  `json:"gender"`
	HeightFeet   int     `json:"height_feet"`
	HeightInches int     `json:"height_inches"`
	WeightKG     float64 `json:"weight_kg"`
}

type updateProfileRequest struct {
	FullName     *string  `json:"full_name"`
	Age          *int     `json:"age"`
	Gender       *string  `json:"gender"`
	HeightFeet   *int     `json:"height_feet"`
	HeightInches *int     `json:"height_inches"`
	WeightKG     *float64 `json:"weight_kg"`
}

func (h *ProfileHandler) Onboarding(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req onboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateOnboardingRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.profileRepo.UpdateOnboarding(c.Context(), userID, repository.OnboardingInput{
		FullName:     req.FullName,
		Age:          req.Age,
		Gender:       req.Gender,
		HeightFeet:   req.HeightFeet,
		HeightInches: req.HeightInches,
		WeightKG:     req.WeightKG,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(profileResponse(profile))
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	return c.JSON(profileResponse(profile))
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateUpdateProfileRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.profileRepo.UpdatePartial(c.Context(), userID, repository.UpdateProfileInput{
		FullName:     req.FullName,
		Age:          req.Age,
		Gender:       req.Gender,
		HeightFeet:   req.HeightFeet,
		HeightInches: req.HeightInches,
		WeightKG:     req.WeightKG,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(profileResponse(profile))
}

// profileResponse enriches the stored profile with the derived BMI and
// suggested intake when height and weight are known.
func profileResponse(profile *models.UserProfile) fiber.Map {
	response := fiber.Map{"profile": profile}
	if profile.HeightFeet != nil && profile.HeightInches != nil && profile.WeightKG != nil {
		if bmi, err := services.CalculateBMI(*profile.HeightFeet, *profile.HeightInches, *profile.WeightKG); err == nil {
			response["bmi"] = bmi
			response["suggested_calorie_intake"] = services.SuggestCalorieIntake(bmi)
		}
	}
	return response
}

func validateOnboardingRequest(req onboardingRequest) string {
	if req.FullName == "" {
		return "full_name is required"
	}
	if req.Age <= 0 || req.Age > 120 {
		return "age must be between 1 and 120"
	}
	if req.Gender != "male" && req.Gender != "female" && req.Gender != "other" {
		return "gender must be male, female or other"
	}
	if req.HeightFeet < 0 || req.HeightInches < 0 || req.HeightInches > 11 {
		return "height_feet must not be negative and height_inches must be between 0 and 11"
	}
	if req.HeightFeet*12+req.HeightInches == 0 {
		return "height must be greater than zero"
	}
	if req.WeightKG <= 0 {
		return "weight_kg must be greater than 0"
	}
	return ""
}

func validateUpdateProfileRequest(req updateProfileRequest) string {
	if req.Age != nil && (*req.Age <= 0 || *req.Age > 120) {
		return "age must be between 1 and 120"
	}
	if req.Gender != nil && *req.Gender != "male" && *req.Gender != "female" && *req.Gender != "other" {
		return "gender must be male, female or other"
	}
	if req.HeightFeet != nil && *req.HeightFeet < 0 {
		return "height_feet must not be negative"
	}
	if req.HeightInches != nil && (*req.HeightInches < 0 || *req.HeightInches > 11) {
		return "height_inches must be between 0 and 11"
	}
	if req.WeightKG != nil && *req.WeightKG <= 0 {
		return "weight_kg must be greater than 0"
	}
	return ""
}
