package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DBUrl           string
	JWTSecret       string
	RecipeAPIURL    string
	RecipeAPIKey    string
	RecipeAPIModel  string
	AppEnv          string
	EnableDevRoutes bool
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret, exists := os.LookupEnv("JWT_SECRET")
	if !exists || jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		DBUrl:           getEnv("DB_URL", ""),
		JWTSecret:       jwtSecret,
		RecipeAPIURL:    getEnv("RECIPE_API_URL", ""),
		RecipeAPIKey:    getEnv("RECIPE_API_KEY", ""),
		RecipeAPIModel:  getEnv("RECIPE_API_MODEL", "gemini-1.5-flash"),
		AppEnv:          normalizeEnv(getEnv("APP_ENV", "production")),
		EnableDevRoutes: getEnvBool("ENABLE_DEV_ROUTES", false),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

// RecipeGenerationEnabled reports whether the external generator is
// configured. Endpoints that need it return 503 style errors when it is not.
func (c *Config) RecipeGenerationEnabled() bool {
	return c != nil && c.RecipeAPIURL != ""
}

// DocsEnabled gates the API docs surface to local development.
func (c *Config) DocsEnabled() bool {
	return c != nil && c.EnableDevRoutes && c.AppEnv == "development"
}
