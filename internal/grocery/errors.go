package grocery

import (
	"errors"

	"ai-grocery-list/internal/llm"
)

// Error kinds returned by Generator.Generate. Callers classify with errors.Is.
var (
	// ErrInvalidMealPlan means the submitted plan failed schema checks or had no meals.
	ErrInvalidMealPlan = errors.New("invalid meal plan")
	// ErrUpstream means the model provider failed or returned no completion.
	ErrUpstream = llm.ErrUpstream
	// ErrInvalidCompletion means the completion had no JSON object or did not match the GroceryList shape.
	ErrInvalidCompletion = errors.New("invalid grocery list completion")
	// ErrPersistence means a valid list could not be stored.
	ErrPersistence = errors.New("failed to persist grocery list")
)
