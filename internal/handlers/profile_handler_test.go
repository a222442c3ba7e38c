package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/models"
	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/repository"
)

type stubProfileStore struct {
	profile        *models.UserProfile
	err            error
	lastOnboarding repository.OnboardingInput
	lastUpdate     repository.UpdateProfileInput
}

func (s *stubProfileStore) GetByUserID(_ context.Context, _ int64) (*models.UserProfile, error) {
	return s.profile, s.err
}

func (s *stubProfileStore) UpdateOnboarding(_ context.Context, _ int64, req repository.OnboardingInput) (*models.UserProfile, error) {
	s.lastOnboarding = req
	return s.profile, s.err
}

func (s *stubProfileStore) UpdatePartial(_ context.Context, _ int64, req repository.UpdateProfileInput) (*models.UserProfile, error) {
	s.lastUpdate = req
	return s.profile, s.err
}

func onboardedProfile() *models.UserProfile {
	fullName := "Nadia Rahman"
	age := 29
	gender := "female"
	heightFeet := 5
	heightInches := 7
	weight := 70.0
	return &models.UserProfile{
		UserID:             42,
		FullName:           &fullName,
		Age:                &age,
		Gender:             &gender,
		HeightFeet:         &heightFeet,
		HeightInches:       &heightInches,
		WeightKG:           &weight,
		OnboardingComplete: true,
	}
}

func newProfileTestApp(store profileStore) *fiber.App {
	handler := &ProfileHandler{profileRepo: store}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Post("/api/users/onboarding", handler.Onboarding)
	app.Get("/api/users/profile", handler.GetProfile)
	app.Put("/api/users/profile", handler.UpdateProfile)
	return app
}

func TestOnboardingStoresProfileAndReturnsDerivedValues(t *testing.T) {
	store := &stubProfileStore{profile: onboardedProfile()}
	app := newProfileTestApp(store)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/users/onboarding", `{
		"full_name": "Nadia Rahman",
		"age": 29,
		"gender": "female",
		"height_feet": 5,
		"height_inches": 7,
		"weight_kg": 70
	}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.lastOnboarding.FullName != "Nadia Rahman" || store.lastOnboarding.WeightKG != 70 {
		t.Fatalf("unexpected onboarding input: %+v", store.lastOnboarding)
	}

	var body struct {
		BMI             float64 `json:"bmi"`
		SuggestedIntake int     `json:"suggested_calorie_intake"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.BMI != 24.17 {
		t.Fatalf("expected bmi 24.17, got %v", body.BMI)
	}
	if body.SuggestedIntake != 2200 {
		t.Fatalf("expected suggested intake 2200, got %d", body.SuggestedIntake)
	}
}

func TestOnboardingValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"age":29,"gender":"female","height_feet":5,"height_inches":7,"weight_kg":70}`},
		{"age out of range", `{"full_name":"A","age":150,"gender":"male","height_feet":5,"height_inches":7,"weight_kg":70}`},
		{"bad gender", `{"full_name":"A","age":29,"gender":"robot","height_feet":5,"height_inches":7,"weight_kg":70}`},
		{"inches overflow", `{"full_name":"A","age":29,"gender":"male","height_feet":5,"height_inches":12,"weight_kg":70}`},
		{"zero height", `{"full_name":"A","age":29,"gender":"male","height_feet":0,"height_inches":0,"weight_kg":70}`},
		{"zero weight", `{"full_name":"A","age":29,"gender":"male","height_feet":5,"height_inches":7,"weight_kg":0}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newProfileTestApp(&stubProfileStore{profile: onboardedProfile()})

			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/users/onboarding", tc.body))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestGetProfileNotFound(t *testing.T) {
	app := newProfileTestApp(&stubProfileStore{err: pgx.ErrNoRows})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/profile", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetProfileWithoutMeasurementsOmitsDerivedValues(t *testing.T) {
	profile := &models.UserProfile{UserID: 42}
	app := newProfileTestApp(&stubProfileStore{profile: profile})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/profile", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := body["bmi"]; ok {
		t.Fatalf("expected no bmi for incomplete profile, got %v", body["bmi"])
	}
}

func TestUpdateProfilePartialFields(t *testing.T) {
	store := &stubProfileStore{profile: onboardedProfile()}
	app := newProfileTestApp(store)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/users/profile", `{"weight_kg":72.5}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.lastUpdate.WeightKG == nil || *store.lastUpdate.WeightKG != 72.5 {
		t.Fatalf("expected weight 72.5 forwarded, got %+v", store.lastUpdate)
	}
	if store.lastUpdate.FullName != nil {
		t.Fatalf("expected untouched fields to stay nil, got %+v", store.lastUpdate)
	}
}
