package models

import "time"

// MealPlan is an AI-generated day plan with one section per meal slot.
type MealPlan struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"userId"`
	Title     string            `json:"title"`
	Sections  []MealPlanSection `json:"sections"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// MealPlanSection holds the generated content for one slot. Recipe starts
// nil and is populated lazily; once set it is never regenerated.
type MealPlanSection struct {
	ID            int64    `json:"id"`
	MealPlanID    int64    `json:"-"`
	Slot          string   `json:"slot"`
	Foods         []string `json:"foods"`
	Fruits        []string `json:"fruits"`
	Drinks        []string `json:"drinks"`
	Nutrition     *string  `json:"nutrition"`
	EstimatedCost *float64 `json:"estimatedCost"`
	Recipe        *Recipe  `json:"recipe"`
}

// Recipe is the tagged variant produced by the external generator. A
// well-formed response fills Title/Ingredients/Steps; when the generator
// returns text that does not parse, the response is preserved verbatim in
// RawText instead of being discarded.
type Recipe struct {
	Title       string   `json:"title,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Steps       []string `json:"steps,omitempty"`
	RawText     *string  `json:"rawText,omitempty"`
}

// Structured reports whether the recipe carries parsed fields rather than a
// raw-text fallback.
func (r *Recipe) Structured() bool {
	return r != nil && r.RawText == nil
}

func (p *MealPlan) Section(slot string) *MealPlanSection {
	for i := range p.Sections {
		if p.Sections[i].Slot == slot {
			return &p.Sections[i]
		}
	}
	return nil
}
