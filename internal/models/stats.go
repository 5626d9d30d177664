// ABOUTME: UserStats model, the per-user cumulative statistics snapshot.
// ABOUTME: Holds meal counters, nutrient totals, streaks, unique foods, and total XP.
package models

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DateLayout is the storage format for calendar dates.
const DateLayout = "2006-01-02"

// UserStats is the cumulative statistics record for one user.
// Counters and totals only ever grow; streaks reset per the streak rules.
type UserStats struct {
	UserID string `json:"user_id" yaml:"user_id"`

	TotalMealsLogged    int `json:"total_meals_logged" yaml:"total_meals_logged"`
	ZeroWasteMealsCount int `json:"zero_waste_meals_count" yaml:"zero_waste_meals_count"`
	LowSugarMealsCount  int `json:"low_sugar_meals_count" yaml:"low_sugar_meals_count"`
	BalancedMealsCount  int `json:"balanced_meals_count" yaml:"balanced_meals_count"`

	// UniqueFoodItems is lower-cased and trimmed, in first-seen order.
	UniqueFoodItems      []string `json:"unique_food_items" yaml:"unique_food_items"`
	UniqueFoodItemsCount int      `json:"unique_food_items_count" yaml:"unique_food_items_count"`

	TotalCalories   float64 `json:"total_calories" yaml:"total_calories"`
	TotalProtein    float64 `json:"total_protein" yaml:"total_protein"`
	TotalCarbs      float64 `json:"total_carbs" yaml:"total_carbs"`
	TotalFat        float64 `json:"total_fat" yaml:"total_fat"`
	TotalFiber      float64 `json:"total_fiber" yaml:"total_fiber"`
	TotalSugar      float64 `json:"total_sugar" yaml:"total_sugar"`
	TotalWasteGrams float64 `json:"total_waste_grams" yaml:"total_waste_grams"`

	DailyLogStreak int `json:"daily_log_streak" yaml:"daily_log_streak"`
	// LastLogDate is a calendar date at UTC midnight, nil if never logged.
	LastLogDate     *time.Time `json:"last_log_date,omitempty" yaml:"last_log_date,omitempty"`
	ZeroWasteStreak int        `json:"zero_waste_streak" yaml:"zero_waste_streak"`

	TotalXP   int64     `json:"total_xp" yaml:"total_xp"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewUserStats returns the all-zero snapshot for a user with no history.
func NewUserStats(userID string) *UserStats {
	return &UserStats{
		UserID:          userID,
		UniqueFoodItems: []string{},
		UpdatedAt:       time.Now(),
	}
}

// Clone returns a deep copy.
func (s *UserStats) Clone() *UserStats {
	c := *s
	c.UniqueFoodItems = append([]string{}, s.UniqueFoodItems...)
	if s.LastLogDate != nil {
		d := *s.LastLogDate
		c.LastLogDate = &d
	}
	return &c
}

// CheckTotals reports the first running total that is no longer a finite
// number, or a TotalXP that wrapped.
func (s *UserStats) CheckTotals() error {
	totals := []struct {
		name string
		v    float64
	}{
		{"total_calories", s.TotalCalories},
		{"total_protein", s.TotalProtein},
		{"total_carbs", s.TotalCarbs},
		{"total_fat", s.TotalFat},
		{"total_fiber", s.TotalFiber},
		{"total_sugar", s.TotalSugar},
		{"total_waste_grams", s.TotalWasteGrams},
	}
	for _, t := range totals {
		if math.IsNaN(t.v) || math.IsInf(t.v, 0) {
			return fmt.Errorf("%s is not finite", t.name)
		}
	}
	if s.TotalXP < 0 {
		return errors.New("total_xp overflowed")
	}
	return nil
}

// CalendarDate returns the calendar day of t as seen in loc, normalised to
// UTC midnight so that dates from any zone compare and subtract exactly.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
