package routes

import (
	"time"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/config"
	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/handlers"
	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/middleware"
	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/repository"
	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/services"
	alertws "github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) error {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewUserProfileRepository(db)
	calorieLogRepo := repository.NewCalorieLogRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	mealPlanRepo := repository.NewMealPlanRepository(db)
	conditionRepo := repository.NewMedicalConditionRepository(db)

	var generator services.RecipeGenerator
	if cfg.RecipeGenerationEnabled() {
		generator = services.NewHTTPRecipeGenerator(cfg.RecipeAPIURL, cfg.RecipeAPIKey, cfg.RecipeAPIModel)
	}

	alertHub := alertws.NewHub()
	go alertHub.Run()

	calorieService := services.NewCalorieService(db, calorieLogRepo, profileRepo, alertHub)
	recipeService := services.NewRecipeService(mealPlanRepo, generator)
	plannerService := services.NewPlannerService(mealPlanRepo, profileRepo, conditionRepo, generator)

	authHandler := handlers.NewAuthHandler(db, userRepo, cfg.JWTSecret)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	calorieHandler := handlers.NewCalorieHandler(calorieService)
	activityHandler := handlers.NewActivityHandler(activityRepo, func() string {
		return time.Now().Format("2006-01-02")
	})
	mealPlanHandler := handlers.NewMealPlanHandler(recipeService, plannerService)
	conditionHandler := handlers.NewConditionHandler(conditionRepo)
	alertWSHandler := handlers.NewAlertWSHandler(alertHub, cfg.JWTSecret)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	protected := api.Group("", middleware.AuthRequired(cfg.JWTSecret))

	users := protected.Group("/users")
	users.Post("/onboarding", profileHandler.Onboarding)
	users.Get("/profile", profileHandler.GetProfile)
	users.Put("/profile", profileHandler.UpdateProfile)
	users.Get("/conditions", conditionHandler.ListUserConditions)
	users.Post("/conditions", conditionHandler.AttachCondition)

	calorie := protected.Group("/calorie")
	calorie.Post("/goal", calorieHandler.SetGoal)
	calorie.Post("/log", calorieHandler.LogMeal)
	calorie.Get("/today", calorieHandler.GetToday)
	calorie.Get("/weekly", calorieHandler.GetWeekly)
	calorie.Patch("/confirm", calorieHandler.ConfirmMeal)

	activity := protected.Group("/activity")
	activity.Post("/log", activityHandler.LogActivity)
	activity.Get("/today", activityHandler.GetToday)

	meals := protected.Group("/meals")
	meals.Post("/generate-recipe", mealPlanHandler.GenerateRecipe)
	meals.Post("/plans", mealPlanHandler.GeneratePlan)
	meals.Get("/plans", mealPlanHandler.ListPlans)
	meals.Get("/plans/:id", mealPlanHandler.GetPlan)

	conditions := protected.Group("/conditions")
	conditions.Get("", conditionHandler.ListCatalog)

	api.Use("/ws/alerts", alertWSHandler.WebSocketAuth)
	api.Get("/ws/alerts", websocket.New(alertWSHandler.HandleWebSocket))

	return registerDocsRoutes(app, cfg)
}
