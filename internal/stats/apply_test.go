// ABOUTME: Tests for the meal-log statistics transition.
// ABOUTME: Covers streak rules, unique items, classification, and totals.
package stats

import (
	"testing"
	"time"

	"github.com/harperreed/crumb/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func ptr(d time.Time) *time.Time { return &d }

func TestNextDailyStreak(t *testing.T) {
	tests := []struct {
		name    string
		current int
		last    *time.Time
		today   time.Time
		want    int
	}{
		{"first log", 0, nil, day("2024-03-10"), 1},
		{"same day", 4, ptr(day("2024-03-10")), day("2024-03-10"), 4},
		{"next day", 4, ptr(day("2024-03-09")), day("2024-03-10"), 5},
		{"gap", 4, ptr(day("2024-03-07")), day("2024-03-10"), 1},
		{"future last date", 4, ptr(day("2024-03-12")), day("2024-03-10"), 1},
		{"month boundary", 2, ptr(day("2024-02-29")), day("2024-03-01"), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextDailyStreak(tt.current, tt.last, tt.today))
		})
	}
}

func TestNextZeroWasteStreak(t *testing.T) {
	assert.Equal(t, 3, NextZeroWasteStreak(2, true))
	assert.Equal(t, 0, NextZeroWasteStreak(7, false))
	assert.Equal(t, 1, NextZeroWasteStreak(0, true))
}

func TestMergeUniqueItems(t *testing.T) {
	got := MergeUniqueItems([]string{"rice"}, []string{" Rice ", "Chicken", "chicken", "", "   ", "Broccoli"})
	assert.Equal(t, []string{"rice", "chicken", "broccoli"}, got)

	existing := []string{"apple"}
	_ = MergeUniqueItems(existing, []string{"pear"})
	assert.Equal(t, []string{"apple"}, existing)

	assert.Empty(t, MergeUniqueItems(nil, nil))
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name      string
		meal      *models.MealLog
		zeroWaste bool
		lowSugar  bool
		balanced  bool
		calories  float64
	}{
		{
			name:      "plain calorie meal",
			meal:      models.NewCalorieMeal(500),
			zeroWaste: true,
			lowSugar:  true,
			calories:  500,
		},
		{
			name:      "clean plate",
			meal:      models.NewBeforeAfterMeal(600, 0),
			zeroWaste: true,
			lowSugar:  true,
			calories:  600,
		},
		{
			name:     "leftovers",
			meal:     models.NewBeforeAfterMeal(600, 150),
			lowSugar: true,
			calories: 450,
		},
		{
			name: "balanced with small waste",
			meal: models.NewBeforeAfterMeal(700, 20).
				WithNutrient(models.NutrientProtein, 30).
				WithNutrient(models.NutrientFiber, 6).
				WithNutrient(models.NutrientSugar, 12),
			balanced: true,
			calories: 680,
		},
		{
			name: "too much waste to be balanced",
			meal: models.NewBeforeAfterMeal(700, 21).
				WithNutrient(models.NutrientProtein, 30).
				WithNutrient(models.NutrientFiber, 6),
			lowSugar: true,
			calories: 679,
		},
		{
			name: "sugar at ten is not low",
			meal: models.NewCalorieMeal(200).
				WithNutrient(models.NutrientSugar, 10),
			zeroWaste: true,
			calories:  200,
		},
		{
			name: "balanced calorie meal",
			meal: models.NewCalorieMeal(400).
				WithNutrient(models.NutrientProtein, 20).
				WithNutrient(models.NutrientFiber, 5).
				WithNutrient(models.NutrientSugar, 15),
			zeroWaste: true,
			balanced:  true,
			calories:  400,
		},
		{
			name:      "consumed missing falls back to calories",
			meal:      &models.MealLog{Type: models.MealBeforeAfter, Calories: 300},
			zeroWaste: true,
			lowSugar:  true,
			calories:  300,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.zeroWaste, IsZeroWaste(tt.meal), "zero waste")
			assert.Equal(t, tt.lowSugar, IsLowSugar(tt.meal), "low sugar")
			assert.Equal(t, tt.balanced, IsBalanced(tt.meal), "balanced")
			assert.InDelta(t, tt.calories, MealCalories(tt.meal), 1e-9)
		})
	}
}

func TestCalorieMealIgnoresWasteField(t *testing.T) {
	m := models.NewCalorieMeal(300).WithWaste(50)
	assert.True(t, IsZeroWaste(m))
	assert.Zero(t, WasteCalories(m))
}

func TestApplyFirstMeal(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	today := models.CalendarDate(now, time.UTC)
	prev := models.NewUserStats("u1")

	meal := models.NewBeforeAfterMeal(600, 0).
		WithNutrient(models.NutrientProtein, 25).
		WithNutrient(models.NutrientCarbs, 60).
		WithNutrient(models.NutrientFat, 15).
		WithNutrient(models.NutrientFiber, 7).
		WithNutrient(models.NutrientSugar, 5).
		WithItems("Rice", "Chicken").
		WithWasteGrams(0).
		WithExp(15)

	next := Apply(prev, meal, today, now)

	assert.Equal(t, 1, next.TotalMealsLogged)
	assert.Equal(t, 1, next.ZeroWasteMealsCount)
	assert.Equal(t, 1, next.LowSugarMealsCount)
	assert.Equal(t, 1, next.BalancedMealsCount)
	assert.Equal(t, 1, next.DailyLogStreak)
	assert.Equal(t, 1, next.ZeroWasteStreak)
	assert.Equal(t, []string{"rice", "chicken"}, next.UniqueFoodItems)
	assert.Equal(t, 2, next.UniqueFoodItemsCount)
	assert.InDelta(t, 600, next.TotalCalories, 1e-9)
	assert.InDelta(t, 25, next.TotalProtein, 1e-9)
	assert.InDelta(t, 60, next.TotalCarbs, 1e-9)
	assert.InDelta(t, 15, next.TotalFat, 1e-9)
	assert.InDelta(t, 7, next.TotalFiber, 1e-9)
	assert.InDelta(t, 5, next.TotalSugar, 1e-9)
	assert.Equal(t, int64(15), next.TotalXP)
	require.NotNil(t, next.LastLogDate)
	assert.Equal(t, today, *next.LastLogDate)
	assert.Equal(t, now, next.UpdatedAt)

	assert.Zero(t, prev.TotalMealsLogged, "input must not be mutated")
	assert.Nil(t, prev.LastLogDate)
	assert.Empty(t, prev.UniqueFoodItems)
}

func TestApplySequence(t *testing.T) {
	s := models.NewUserStats("u1")
	log := func(date string, m *models.MealLog) {
		d := day(date)
		s = Apply(s, m, d, d.Add(9*time.Hour))
	}

	log("2024-03-01", models.NewCalorieMeal(400).WithItems("Oats"))
	log("2024-03-01", models.NewBeforeAfterMeal(500, 0).WithItems("oats", "Banana"))
	assert.Equal(t, 1, s.DailyLogStreak, "same-day logs keep the streak")
	assert.Equal(t, 2, s.ZeroWasteStreak)

	log("2024-03-02", models.NewBeforeAfterMeal(500, 100))
	assert.Equal(t, 2, s.DailyLogStreak)
	assert.Equal(t, 0, s.ZeroWasteStreak, "waste clears the zero-waste streak")
	assert.Equal(t, 2, s.ZeroWasteMealsCount)

	log("2024-03-05", models.NewCalorieMeal(300).WithWasteGrams(12.5))
	assert.Equal(t, 1, s.DailyLogStreak, "a gap restarts the streak")
	assert.Equal(t, 1, s.ZeroWasteStreak)

	assert.Equal(t, 4, s.TotalMealsLogged)
	assert.Equal(t, []string{"oats", "banana"}, s.UniqueFoodItems)
	assert.InDelta(t, 400+500+400+300, s.TotalCalories, 1e-9)
	assert.InDelta(t, 12.5, s.TotalWasteGrams, 1e-9)
	assert.Equal(t, day("2024-03-05"), *s.LastLogDate)
}

func TestApplyCountersNeverDecrease(t *testing.T) {
	meals := []*models.MealLog{
		models.NewCalorieMeal(100),
		models.NewBeforeAfterMeal(300, 300),
		models.NewCalorieMeal(0).WithNutrient(models.NutrientSugar, 40),
		models.NewBeforeAfterMeal(200, 5).WithExp(15),
	}
	s := models.NewUserStats("u1")
	for i, m := range meals {
		d := day("2024-01-01").AddDate(0, 0, i*2)
		next := Apply(s, m, d, d)
		assert.GreaterOrEqual(t, next.TotalMealsLogged, s.TotalMealsLogged)
		assert.GreaterOrEqual(t, next.ZeroWasteMealsCount, s.ZeroWasteMealsCount)
		assert.GreaterOrEqual(t, next.LowSugarMealsCount, s.LowSugarMealsCount)
		assert.GreaterOrEqual(t, next.BalancedMealsCount, s.BalancedMealsCount)
		assert.GreaterOrEqual(t, next.UniqueFoodItemsCount, s.UniqueFoodItemsCount)
		assert.GreaterOrEqual(t, next.TotalCalories, s.TotalCalories)
		assert.GreaterOrEqual(t, next.TotalXP, s.TotalXP)
		assert.GreaterOrEqual(t, next.DailyLogStreak, 1)
		assert.GreaterOrEqual(t, next.ZeroWasteStreak, 0)
		s = next
	}
}
