package grocery

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompletion(t *testing.T) {
	t.Run("PlainJSON", func(t *testing.T) {
		list, err := ParseCompletion(validCompletion)
		require.NoError(t, err)
		require.Len(t, list.Categories, 3)
		assert.Equal(t, "Produce", list.Categories[0].Name)
		assert.Equal(t, []string{"Romaine lettuce (2 heads)", "Onions (3 medium)"}, list.Categories[0].Items)
		assert.Equal(t, 4, list.ItemCount())
	})

	t.Run("WrappedInProseAndFences", func(t *testing.T) {
		completion := "Sure! Here is your list:\n```json\n" + validCompletion + "\n```\nEnjoy your week."
		list, err := ParseCompletion(completion)
		require.NoError(t, err)
		assert.Len(t, list.Categories, 3)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		list, err := ParseCompletion(validCompletion)
		require.NoError(t, err)
		encoded, err := json.Marshal(list)
		require.NoError(t, err)
		assert.JSONEq(t, validCompletion, string(encoded))
	})

	t.Run("NullItemReported", func(t *testing.T) {
		_, err := ParseCompletion(`{"categories": [{"name": "Produce", "items": ["Kale", null]}]}`)
		require.ErrorIs(t, err, ErrInvalidCompletion)
		assert.Contains(t, err.Error(), "categories[0].items[1] is required")
	})

	t.Run("EmptyCategories", func(t *testing.T) {
		list, err := ParseCompletion(`{"categories": []}`)
		require.NoError(t, err)
		assert.Empty(t, list.Categories)
	})

	invalid := map[string]string{
		"NotJSON":           "I'm sorry, I can't help with that.",
		"BrokenJSON":        `{"categories": [{"name": "Produce", "items": [}`,
		"MissingCategories": `{"groceries": [{"name": "Produce", "items": ["Apples"]}]}`,
		"NullCategories":    `{"categories": null}`,
		"MissingName":       `{"categories": [{"items": ["Apples"]}]}`,
		"MissingItems":      `{"categories": [{"name": "Produce"}]}`,
		"ItemsWrongType":    `{"categories": [{"name": "Produce", "items": [1, 2]}]}`,
		"CategoriesObject":  `{"categories": {"name": "Produce"}}`,
		"ItemsWithNull":     `{"categories": [{"name": "Produce", "items": ["Kale", null]}]}`,
		"NullName":          `{"categories": [{"name": null, "items": ["Kale"]}]}`,
	}
	for name, completion := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCompletion(completion)
			assert.ErrorIs(t, err, ErrInvalidCompletion)
		})
	}
}
