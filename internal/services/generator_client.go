package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/models"
)

// RecipeGenerator is the capability boundary for the external AI service:
// prompt in, structured recipe or raw-text fallback out. Transport failures
// and non-2xx responses come back as errors; an unparseable but successful
// response is not an error, it degrades to the raw-text variant.
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context, prompt string) (*models.Recipe, error)
	GeneratePlan(ctx context.Context, prompt string) (*GeneratedPlan, error)
}

// GeneratedPlan is the parsed shape of a whole-day plan response.
type GeneratedPlan struct {
	Title    string                 `json:"title"`
	Sections []GeneratedPlanSection `json:"sections"`
}

type GeneratedPlanSection struct {
	Slot          string   `json:"slot"`
	Foods         []string `json:"foods"`
	Fruits        []string `json:"fruits"`
	Drinks        []string `json:"drinks"`
	Nutrition     *string  `json:"nutrition"`
	EstimatedCost *float64 `json:"estimatedCost"`
}

type HTTPRecipeGenerator struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewHTTPRecipeGenerator(baseURL, apiKey, model string) *HTTPRecipeGenerator {
	return &HTTPRecipeGenerator{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: http.DefaultClient,
	}
}

type generateRequest struct {
	RequestID string `json:"request_id"`
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
}

type generateResponse struct {
	Content string `json:"content"`
}

func (g *HTTPRecipeGenerator) GenerateRecipe(ctx context.Context, prompt string) (*models.Recipe, error) {
	content, err := g.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	recipe := parseRecipeContent(content)
	return recipe, nil
}

func (g *HTTPRecipeGenerator) GeneratePlan(ctx context.Context, prompt string) (*GeneratedPlan, error) {
	content, err := g.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var plan GeneratedPlan
	if err := json.Unmarshal([]byte(stripMarkdownFences(content)), &plan); err != nil {
		return nil, fmt.Errorf("%w: unparseable plan response", ErrGenerationFailed)
	}
	if len(plan.Sections) == 0 {
		return nil, fmt.Errorf("%w: plan response has no sections", ErrGenerationFailed)
	}
	return &plan, nil
}

func (g *HTTPRecipeGenerator) complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		RequestID: uuid.NewString(),
		Model:     g.model,
		Prompt:    prompt,
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read generate response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: status %d: %s", ErrGenerationFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var response generateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		// Some deployments return the text body directly.
		return string(body), nil
	}
	if response.Content == "" {
		return "", fmt.Errorf("%w: empty response content", ErrGenerationFailed)
	}
	return response.Content, nil
}

// parseRecipeContent is the parsing adapter between the generator's free-form
// text and the recipe variant. Markdown fences are stripped before JSON
// decoding; anything that still fails to parse is preserved verbatim as the
// raw-text fallback rather than discarded.
func parseRecipeContent(content string) *models.Recipe {
	cleaned := stripMarkdownFences(content)

	var recipe models.Recipe
	if err := json.Unmarshal([]byte(cleaned), &recipe); err == nil && recipe.Title != "" {
		recipe.RawText = nil
		return &recipe
	}

	raw := strings.TrimSpace(content)
	return &models.Recipe{RawText: &raw}
}

// stripMarkdownFences unwraps ```json ... ``` style blocks that hosted models
// commonly wrap JSON in. Content without fences passes through unchanged.
func stripMarkdownFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag line (```json).
		trimmed = trimmed[idx+1:]
	}
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
