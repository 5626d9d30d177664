// ABOUTME: MealLog model and MealType enum for logged meals.
// ABOUTME: Carries calories, nutrient breakdown, detected items, and the XP reward.
package models

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/oklog/ulid/v2"
)

// MealType represents how a meal was analysed.
type MealType string

const (
	// MealCalorie is a single photo analysed for calories. It has no waste concept.
	MealCalorie MealType = "calorie"
	// MealBeforeAfter is a pair of photos taken before and after eating.
	MealBeforeAfter MealType = "before_after"
)

// AllMealTypes returns all valid meal types.
var AllMealTypes = []MealType{MealCalorie, MealBeforeAfter}

// IsValidMealType checks if a string is a valid meal type.
func IsValidMealType(s string) bool {
	for _, mt := range AllMealTypes {
		if string(mt) == s {
			return true
		}
	}
	return false
}

// Nutrient codes used by the food recognition service.
const (
	NutrientProtein = "PROCNT"
	NutrientCarbs   = "CHOCDF"
	NutrientFat     = "FAT"
	NutrientFiber   = "FIBTG"
	NutrientSugar   = "SUGAR"
)

// NutrientLabels maps nutrient codes to display labels.
var NutrientLabels = map[string]string{
	NutrientProtein: "Protein",
	NutrientCarbs:   "Carbs",
	NutrientFat:     "Fat",
	NutrientFiber:   "Fiber",
	NutrientSugar:   "Sugar",
}

// Nutrient is a single nutrient quantity in a meal breakdown.
type Nutrient struct {
	Label    string  `json:"label,omitempty" yaml:"label,omitempty"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
	Unit     string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// DetectedItem is a food item recognised in a meal photo.
type DetectedItem struct {
	Name     string  `json:"name" yaml:"name"`
	Calories float64 `json:"calories,omitempty" yaml:"calories,omitempty"`
}

// MealLog is one meal-logging event.
type MealLog struct {
	ID   ulid.ULID `json:"id" yaml:"id"`
	Type MealType  `json:"type" yaml:"type"`

	// Calories is the direct value for calorie meals and the before-photo total
	// for before/after meals.
	Calories          float64  `json:"calories" yaml:"calories"`
	CaloriesConsumed  *float64 `json:"calories_consumed,omitempty" yaml:"calories_consumed,omitempty"`
	FoodWasteCalories *float64 `json:"food_waste_calories,omitempty" yaml:"food_waste_calories,omitempty"`
	WasteGrams        *float64 `json:"waste_grams,omitempty" yaml:"waste_grams,omitempty"`

	Nutrients     map[string]Nutrient `json:"nutrients,omitempty" yaml:"nutrients,omitempty"`
	DetectedItems []DetectedItem      `json:"detected_items,omitempty" yaml:"detected_items,omitempty"`

	ExpEarned int64     `json:"exp_earned" yaml:"exp_earned"`
	LoggedAt  time.Time `json:"logged_at" yaml:"logged_at"`
}

// NewCalorieMeal creates a single-photo meal log.
func NewCalorieMeal(calories float64) *MealLog {
	now := time.Now()
	return &MealLog{
		ID:       ulid.Make(),
		Type:     MealCalorie,
		Calories: calories,
		LoggedAt: now,
	}
}

// NewBeforeAfterMeal creates a before/after meal log. Whatever is left on the
// plate in the after photo counts as waste.
func NewBeforeAfterMeal(before, after float64) *MealLog {
	consumed := math.Max(before-after, 0)
	waste := after
	return &MealLog{
		ID:                ulid.Make(),
		Type:              MealBeforeAfter,
		Calories:          before,
		CaloriesConsumed:  &consumed,
		FoodWasteCalories: &waste,
		LoggedAt:          time.Now(),
	}
}

// WithNutrient sets a nutrient quantity by code.
func (m *MealLog) WithNutrient(code string, quantity float64) *MealLog {
	if m.Nutrients == nil {
		m.Nutrients = make(map[string]Nutrient)
	}
	m.Nutrients[code] = Nutrient{Label: NutrientLabels[code], Quantity: quantity, Unit: "g"}
	return m
}

// WithItems appends detected food items by name.
func (m *MealLog) WithItems(names ...string) *MealLog {
	for _, n := range names {
		m.DetectedItems = append(m.DetectedItems, DetectedItem{Name: n})
	}
	return m
}

// WithExp sets the XP reward for this log event.
func (m *MealLog) WithExp(xp int64) *MealLog {
	m.ExpEarned = xp
	return m
}

// WithWasteGrams sets the measured waste weight.
func (m *MealLog) WithWasteGrams(grams float64) *MealLog {
	m.WasteGrams = &grams
	return m
}

// WithWaste overrides the waste calories of a before/after meal.
func (m *MealLog) WithWaste(calories float64) *MealLog {
	m.FoodWasteCalories = &calories
	return m
}

// WithLoggedAt sets a custom logged_at timestamp.
func (m *MealLog) WithLoggedAt(t time.Time) *MealLog {
	m.LoggedAt = t
	return m
}

// Nutrient returns the quantity for a nutrient code, or zero if absent.
func (m *MealLog) Nutrient(code string) float64 {
	if m.Nutrients == nil {
		return 0
	}
	return m.Nutrients[code].Quantity
}

// isAmount rejects negatives, NaN, and +Inf.
func isAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// Validate checks the meal log for values no analysis can produce.
func (m *MealLog) Validate() error {
	if !IsValidMealType(string(m.Type)) {
		return fmt.Errorf("unknown meal type: %q", m.Type)
	}
	if !isAmount(m.Calories) {
		return errors.New("calories must be a finite non-negative number")
	}
	if m.CaloriesConsumed != nil && !isAmount(*m.CaloriesConsumed) {
		return errors.New("calories consumed must be a finite non-negative number")
	}
	if m.FoodWasteCalories != nil && !isAmount(*m.FoodWasteCalories) {
		return errors.New("food waste calories must be a finite non-negative number")
	}
	if m.WasteGrams != nil && !isAmount(*m.WasteGrams) {
		return errors.New("waste grams must be a finite non-negative number")
	}
	for code, n := range m.Nutrients {
		if !isAmount(n.Quantity) {
			return fmt.Errorf("nutrient %s must be a finite non-negative number", code)
		}
	}
	for _, item := range m.DetectedItems {
		if !isAmount(item.Calories) {
			return fmt.Errorf("item %q calories must be a finite non-negative number", item.Name)
		}
	}
	if m.ExpEarned < 0 {
		return errors.New("exp earned must be non-negative")
	}
	return nil
}
