package grocery

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Category groups grocery items, e.g. "Produce".
type Category struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// GroceryList is the categorized output parsed from a model completion.
type GroceryList struct {
	Categories []Category `json:"categories"`
}

// ItemCount returns the total number of items across categories.
func (l GroceryList) ItemCount() int {
	n := 0
	for _, c := range l.Categories {
		n += len(c.Items)
	}
	return n
}

// rawGroceryList mirrors GroceryList with presence checks, so a completion
// missing "categories", "name" or "items", or holding a null item, is rejected
// rather than zero-filled.
type rawGroceryList struct {
	Categories []rawCategory `json:"categories" validate:"required,dive"`
}

type rawCategory struct {
	Name  *string  `json:"name" validate:"required"`
	Items []*string `json:"items" validate:"required,dive,required"`
}

// First "{" through last "}", across lines.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ParseCompletion extracts the JSON object embedded in a model completion and
// validates it against the GroceryList shape. Prose or markdown fences around
// the object are ignored.
func ParseCompletion(completion string) (GroceryList, error) {
	match := jsonObjectPattern.FindString(completion)
	if match == "" {
		return GroceryList{}, fmt.Errorf("%w: no JSON object found in completion", ErrInvalidCompletion)
	}

	var raw rawGroceryList
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return GroceryList{}, fmt.Errorf("%w: failed to parse completion JSON: %v", ErrInvalidCompletion, err)
	}

	if err := validate.Struct(raw); err != nil {
		return GroceryList{}, fmt.Errorf("%w: %s", ErrInvalidCompletion, describeValidation(err))
	}

	list := GroceryList{Categories: make([]Category, 0, len(raw.Categories))}
	for _, c := range raw.Categories {
		items := make([]string, 0, len(c.Items))
		for _, item := range c.Items {
			items = append(items, *item)
		}
		list.Categories = append(list.Categories, Category{Name: *c.Name, Items: items})
	}
	return list, nil
}
