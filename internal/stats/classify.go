// ABOUTME: Per-meal classification used by the statistics aggregate.
// ABOUTME: Zero-waste, low-sugar, and balanced rules plus the calorie contribution.
package stats

import "github.com/harperreed/crumb/internal/models"

// Classification thresholds, in grams unless noted.
const (
	LowSugarMax = 10.0

	BalancedMinProtein = 20.0
	BalancedMinFiber   = 5.0
	BalancedMaxSugar   = 15.0
	// BalancedMaxWasteCalories stands in for roughly 10g of waste.
	BalancedMaxWasteCalories = 20.0
)

// WasteCalories returns the meal's waste. Calorie meals have no waste concept.
func WasteCalories(m *models.MealLog) float64 {
	if m.Type == models.MealCalorie || m.FoodWasteCalories == nil {
		return 0
	}
	return *m.FoodWasteCalories
}

// MealCalories returns what the meal adds to the calorie total: the direct value
// for calorie meals and the consumed value for before/after meals, never the
// before-photo total unless no consumed value was recorded.
func MealCalories(m *models.MealLog) float64 {
	if m.Type == models.MealBeforeAfter && m.CaloriesConsumed != nil {
		return *m.CaloriesConsumed
	}
	return m.Calories
}

// IsZeroWaste reports whether the meal left nothing behind.
func IsZeroWaste(m *models.MealLog) bool {
	if m.Type == models.MealCalorie {
		return true
	}
	return WasteCalories(m) <= 0
}

// IsLowSugar reports whether the meal had under 10g of sugar.
func IsLowSugar(m *models.MealLog) bool {
	return m.Nutrient(models.NutrientSugar) < LowSugarMax
}

// IsBalanced reports whether the meal meets all four balance thresholds.
func IsBalanced(m *models.MealLog) bool {
	return m.Nutrient(models.NutrientProtein) >= BalancedMinProtein &&
		m.Nutrient(models.NutrientFiber) >= BalancedMinFiber &&
		m.Nutrient(models.NutrientSugar) <= BalancedMaxSugar &&
		WasteCalories(m) <= BalancedMaxWasteCalories
}
