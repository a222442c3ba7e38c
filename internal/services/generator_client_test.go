package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStripMarkdownFences(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"no fences", `{"title":"Soup"}`, `{"title":"Soup"}`},
		{"json fence", "```json\n{\"title\":\"Soup\"}\n```", `{"title":"Soup"}`},
		{"bare fence", "```\n{\"title\":\"Soup\"}\n```", `{"title":"Soup"}`},
		{"surrounding whitespace", "  ```json\n{\"title\":\"Soup\"}\n```  ", `{"title":"Soup"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripMarkdownFences(tc.content); got != tc.want {
				t.Fatalf("stripMarkdownFences(%q) = %q, want %q", tc.content, got, tc.want)
			}
		})
	}
}

func TestParseRecipeContentStructured(t *testing.T) {
	content := "```json\n{\"title\":\"Oat Bowl\",\"ingredients\":[\"oats\",\"milk\"],\"steps\":[\"soak\",\"stir\"]}\n```"

	recipe := parseRecipeContent(content)
	if !recipe.Structured() {
		t.Fatalf("expected structured recipe, got raw text %v", recipe.RawText)
	}
	if recipe.Title != "Oat Bowl" || len(recipe.Ingredients) != 2 || len(recipe.Steps) != 2 {
		t.Fatalf("unexpected recipe: %+v", recipe)
	}
}

func TestParseRecipeContentFallsBackToRawText(t *testing.T) {
	content := "Heat a pan, crack two eggs, season and serve."

	recipe := parseRecipeContent(content)
	if recipe.Structured() {
		t.Fatalf("expected raw-text fallback, got %+v", recipe)
	}
	if *recipe.RawText != content {
		t.Fatalf("expected response preserved verbatim, got %q", *recipe.RawText)
	}
}

func TestParseRecipeContentJSONWithoutTitleIsRawText(t *testing.T) {
	content := `{"note":"valid json, wrong shape"}`

	recipe := parseRecipeContent(content)
	if recipe.Structured() {
		t.Fatalf("expected raw-text fallback for titleless JSON, got %+v", recipe)
	}
}

func TestHTTPRecipeGeneratorSendsAuthAndModel(t *testing.T) {
	var gotAuth, gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotModel = req.Model
		fmt.Fprint(w, `{"content":"{\"title\":\"Salad\",\"ingredients\":[\"greens\"],\"steps\":[\"toss\"]}"}`)
	}))
	defer server.Close()

	generator := NewHTTPRecipeGenerator(server.URL, "secret-key", "chef-1")
	recipe, err := generator.GenerateRecipe(context.Background(), "make a salad")
	if err != nil {
		t.Fatalf("GenerateRecipe: %v", err)
	}

	if gotAuth != "Bearer secret-key" {
		t.Fatalf("expected bearer auth header, got %q", gotAuth)
	}
	if gotModel != "chef-1" {
		t.Fatalf("expected model chef-1, got %q", gotModel)
	}
	if recipe.Title != "Salad" {
		t.Fatalf("unexpected recipe: %+v", recipe)
	}
}

func TestHTTPRecipeGeneratorUpstreamErrorIsGenerationFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	generator := NewHTTPRecipeGenerator(server.URL, "key", "chef-1")
	if _, err := generator.GenerateRecipe(context.Background(), "anything"); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestHTTPRecipeGeneratorPlainTextBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "Boil pasta for nine minutes.")
	}))
	defer server.Close()

	generator := NewHTTPRecipeGenerator(server.URL, "key", "chef-1")
	recipe, err := generator.GenerateRecipe(context.Background(), "pasta")
	if err != nil {
		t.Fatalf("GenerateRecipe: %v", err)
	}
	if recipe.Structured() {
		t.Fatalf("expected raw-text recipe from plain body, got %+v", recipe)
	}
}

func TestHTTPRecipeGeneratorGeneratePlan(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"content":"{\"title\":\"Day Plan\",\"sections\":[{\"slot\":\"lunch\",\"foods\":[\"rice\"]}]}"}`)
	}))
	defer server.Close()

	generator := NewHTTPRecipeGenerator(server.URL, "key", "chef-1")
	plan, err := generator.GeneratePlan(context.Background(), "plan my day")
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if plan.Title != "Day Plan" || len(plan.Sections) != 1 || plan.Sections[0].Slot != "lunch" {
		t.Fatalf("unexpected plan: %+v", plan)
	}
}

func TestHTTPRecipeGeneratorGeneratePlanRejectsEmptySections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"content":"{\"title\":\"Empty\",\"sections\":[]}"}`)
	}))
	defer server.Close()

	generator := NewHTTPRecipeGenerator(server.URL, "key", "chef-1")
	if _, err := generator.GeneratePlan(context.Background(), "plan"); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}
