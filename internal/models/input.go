// ABOUTME: MealInput, the caller-facing meal payload shared by the HTTP API, MCP tools, and CLI.
// ABOUTME: Converts loose input (nutrient names, before/after calories) into a MealLog.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// MealInput is a meal as submitted by a client.
type MealInput struct {
	Type          string             `json:"type" jsonschema:"Meal type: calorie (one photo) or before_after (two photos)"`
	Calories      float64            `json:"calories" jsonschema:"Calories of a calorie meal, or the before-photo total of a before_after meal"`
	CaloriesAfter *float64           `json:"calories_after,omitempty" jsonschema:"Calories left on the plate in the after photo (before_after only)"`
	WasteGrams    *float64           `json:"waste_grams,omitempty" jsonschema:"Measured weight of leftovers in grams"`
	Nutrients     map[string]float64 `json:"nutrients,omitempty" jsonschema:"Nutrient grams keyed by code (PROCNT, CHOCDF, FAT, FIBTG, SUGAR) or name (protein, carbs, fat, fiber, sugar)"`
	Items         []string           `json:"items,omitempty" jsonschema:"Detected food item names"`
	ExpEarned     *int64             `json:"exp_earned,omitempty" jsonschema:"XP for this log; defaults to the configured amount for the meal type"`
}

var nutrientAliases = map[string]string{
	"protein": NutrientProtein,
	"carbs":   NutrientCarbs,
	"carb":    NutrientCarbs,
	"fat":     NutrientFat,
	"fiber":   NutrientFiber,
	"fibre":   NutrientFiber,
	"sugar":   NutrientSugar,
}

// NutrientCode resolves a nutrient code or common name to its code.
func NutrientCode(name string) (string, bool) {
	n := strings.TrimSpace(name)
	if _, ok := NutrientLabels[strings.ToUpper(n)]; ok {
		return strings.ToUpper(n), true
	}
	code, ok := nutrientAliases[strings.ToLower(n)]
	return code, ok
}

// MealLog builds the log. defaultXP supplies the reward when ExpEarned is unset.
func (in MealInput) MealLog(defaultXP func(MealType) int64) (*MealLog, error) {
	var m *MealLog
	switch MealType(in.Type) {
	case MealCalorie:
		m = NewCalorieMeal(in.Calories)
	case MealBeforeAfter:
		if in.CaloriesAfter == nil {
			return nil, errors.New("before_after meal needs calories_after")
		}
		m = NewBeforeAfterMeal(in.Calories, *in.CaloriesAfter)
	default:
		return nil, fmt.Errorf("unknown meal type: %q", in.Type)
	}

	for name, qty := range in.Nutrients {
		code, ok := NutrientCode(name)
		if !ok {
			return nil, fmt.Errorf("unknown nutrient: %q", name)
		}
		m.WithNutrient(code, qty)
	}
	m.WithItems(in.Items...)
	if in.WasteGrams != nil {
		m.WithWasteGrams(*in.WasteGrams)
	}

	switch {
	case in.ExpEarned != nil:
		m.WithExp(*in.ExpEarned)
	case defaultXP != nil:
		m.WithExp(defaultXP(m.Type))
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
