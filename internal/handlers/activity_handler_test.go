package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/models"
)

type stubActivityStore struct {
	activity  *models.DailyActivity
	err       error
	lastDate  string
	lastWater *int
	lastSleep *float64
}

func (s *stubActivityStore) Upsert(_ context.Context, _ int64, date string, waterGlasses *int, sleepHours *float64) (*models.DailyActivity, error) {
	s.lastDate = date
	s.lastWater = waterGlasses
	s.lastSleep = sleepHours
	return s.activity, s.err
}

func (s *stubActivityStore) GetByUserAndDate(_ context.Context, _ int64, date string) (*models.DailyActivity, error) {
	s.lastDate = date
	return s.activity, s.err
}

func newActivityTestApp(store activityStore) *fiber.App {
	handler := NewActivityHandler(store, func() string { return "2025-03-10" })

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Post("/api/activity/log", handler.LogActivity)
	app.Get("/api/activity/today", handler.GetToday)
	return app
}

func TestLogActivityUpsertsForToday(t *testing.T) {
	store := &stubActivityStore{activity: &models.DailyActivity{UserID: 42, Date: "2025-03-10", WaterGlasses: 6}}
	app := newActivityTestApp(store)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/activity/log", `{"waterGlasses":6}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.lastDate != "2025-03-10" {
		t.Fatalf("expected today's date, got %q", store.lastDate)
	}
	if store.lastWater == nil || *store.lastWater != 6 || store.lastSleep != nil {
		t.Fatalf("unexpected upsert values: water %v, sleep %v", store.lastWater, store.lastSleep)
	}
}

func TestLogActivityValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"negative water", `{"waterGlasses":-1}`},
		{"sleep over 24", `{"sleepHours":25}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newActivityTestApp(&stubActivityStore{})

			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/activity/log", tc.body))
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

func TestGetTodayActivityEmptyWhenUnlogged(t *testing.T) {
	app := newActivityTestApp(&stubActivityStore{err: pgx.ErrNoRows})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/activity/today", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
