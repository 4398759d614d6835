package grocery

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DayMeals holds the optional lunch and dinner for one day.
type DayMeals struct {
	Lunch  string `json:"lunch,omitempty"`
	Dinner string `json:"dinner,omitempty"`
}

// UnmarshalJSON accepts an absent or string lunch/dinner and rejects null or
// any other JSON type.
func (d *DayMeals) UnmarshalJSON(data []byte) error {
	var raw struct {
		Lunch  json.RawMessage `json:"lunch"`
		Dinner json.RawMessage `json:"dinner"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	lunch, err := mealField("lunch", raw.Lunch)
	if err != nil {
		return err
	}
	dinner, err := mealField("dinner", raw.Dinner)
	if err != nil {
		return err
	}

	d.Lunch, d.Dinner = lunch, dinner
	return nil
}

func mealField(name string, raw json.RawMessage) (string, error) {
	if raw == nil {
		return "", nil
	}
	var s string
	if string(raw) == "null" || json.Unmarshal(raw, &s) != nil {
		return "", fmt.Errorf("%s must be a string, got %s", name, raw)
	}
	return s, nil
}

// MealPlan is a week of meals as submitted by the client. Every day must be
// present in the payload even when both of its meals are blank.
type MealPlan struct {
	Monday         *DayMeals `json:"monday" validate:"required"`
	Tuesday        *DayMeals `json:"tuesday" validate:"required"`
	Wednesday      *DayMeals `json:"wednesday" validate:"required"`
	Thursday       *DayMeals `json:"thursday" validate:"required"`
	Friday         *DayMeals `json:"friday" validate:"required"`
	Saturday       *DayMeals `json:"saturday" validate:"required"`
	Sunday         *DayMeals `json:"sunday" validate:"required"`
	NumberOfPeople *int      `json:"numberOfPeople,omitempty" validate:"omitempty,min=1,max=100"`
}

// Day pairs a weekday name with its meals.
type Day struct {
	Name  string
	Meals DayMeals
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Days returns the plan's days in calendar order, Monday first.
func (p MealPlan) Days() []Day {
	days := []struct {
		name  string
		meals *DayMeals
	}{
		{"Monday", p.Monday},
		{"Tuesday", p.Tuesday},
		{"Wednesday", p.Wednesday},
		{"Thursday", p.Thursday},
		{"Friday", p.Friday},
		{"Saturday", p.Saturday},
		{"Sunday", p.Sunday},
	}

	out := make([]Day, 0, len(days))
	for _, d := range days {
		day := Day{Name: d.name}
		if d.meals != nil {
			day.Meals = *d.meals
		}
		out = append(out, day)
	}
	return out
}

// Meals linearizes the non-empty meals as "Monday Lunch: Pasta" lines,
// lunch before dinner.
func (p MealPlan) Meals() []string {
	var meals []string
	for _, day := range p.Days() {
		if lunch := strings.TrimSpace(day.Meals.Lunch); lunch != "" {
			meals = append(meals, fmt.Sprintf("%s Lunch: %s", day.Name, lunch))
		}
		if dinner := strings.TrimSpace(day.Meals.Dinner); dinner != "" {
			meals = append(meals, fmt.Sprintf("%s Dinner: %s", day.Name, dinner))
		}
	}
	return meals
}

// People returns the number of people to shop for, or 0 when unspecified.
func (p MealPlan) People() int {
	if p.NumberOfPeople == nil {
		return 0
	}
	return *p.NumberOfPeople
}

// Validate checks the plan shape and that at least one meal is filled in.
func (p MealPlan) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidMealPlan, describeValidation(err))
	}
	if len(p.Meals()) == 0 {
		return fmt.Errorf("%w: please provide at least one meal", ErrInvalidMealPlan)
	}
	return nil
}

func describeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fieldPath(fe)))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s must be between 1 and 100", fieldPath(fe)))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q check", fieldPath(fe), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// fieldPath drops the root struct name, e.g. "MealPlan.monday" -> "monday".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
