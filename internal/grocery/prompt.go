package grocery

import (
	"bytes"
	_ "embed"
	"text/template"
)

//go:embed prompt.md
var groceryPrompt string

var groceryPromptTmpl = template.Must(template.New("grocery").Parse(groceryPrompt))

type promptData struct {
	Meals  []string
	People int
}

// BuildPrompt renders the model prompt for a validated plan.
func BuildPrompt(plan MealPlan) (string, error) {
	var buf bytes.Buffer
	if err := groceryPromptTmpl.Execute(&buf, promptData{
		Meals:  plan.Meals(),
		People: plan.People(),
	}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
