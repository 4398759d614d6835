package grocery

import (
	"context"
	"errors"

	"ai-grocery-list/internal/llm"
	"ai-grocery-list/internal/shared"
)

// stubTextGenerator returns a canned completion and records the last prompt.
type stubTextGenerator struct {
	completion string
	err        error
	calls      int
	lastPrompt string
}

func (s *stubTextGenerator) GenerateContent(_ context.Context, prompt string) (llm.ContentResponse, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.err != nil {
		return llm.ContentResponse{}, s.err
	}
	return llm.ContentResponse{
		Content: s.completion,
		Usage:   shared.TokenUsage{PromptTokens: 10, CompletionTokens: 5, Model: "stub"},
	}, nil
}

type stubRecorder struct {
	metas []shared.AgentMeta
}

func (r *stubRecorder) RecordMeta(meta shared.AgentMeta) error {
	r.metas = append(r.metas, meta)
	return nil
}

type failingRepository struct {
	*MemoryRepository
}

func (failingRepository) Save(context.Context, MealPlan, GroceryList) (int64, error) {
	return 0, errors.New("disk full")
}

func emptyPlan() MealPlan {
	return MealPlan{
		Monday:    &DayMeals{},
		Tuesday:   &DayMeals{},
		Wednesday: &DayMeals{},
		Thursday:  &DayMeals{},
		Friday:    &DayMeals{},
		Saturday:  &DayMeals{},
		Sunday:    &DayMeals{},
	}
}

func samplePlan() MealPlan {
	people := 4
	plan := emptyPlan()
	plan.Monday = &DayMeals{Lunch: "Caesar salad", Dinner: "Spaghetti bolognese"}
	plan.Wednesday = &DayMeals{Dinner: "  Chicken curry  "}
	plan.Sunday = &DayMeals{Lunch: "Roast beef"}
	plan.NumberOfPeople = &people
	return plan
}

const validCompletion = `{
  "categories": [
    {"name": "Produce", "items": ["Romaine lettuce (2 heads)", "Onions (3 medium)"]},
    {"name": "Meat", "items": ["Ground beef (1 lb)", "Chicken thighs (2 lbs)"]},
    {"name": "Pantry", "items": []}
  ]
}`
