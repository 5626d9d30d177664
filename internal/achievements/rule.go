// ABOUTME: Achievement rules: a metric enum plus a single dispatch over rule kinds.
// ABOUTME: Threshold rules track one metric; all-of rules count satisfied conditions.
package achievements

import (
	"math"

	"github.com/harperreed/crumb/internal/models"
)

// Metric identifies a statistic an achievement is measured against.
type Metric int

const (
	MetricMealsLogged Metric = iota + 1
	MetricZeroWasteMeals
	MetricZeroWasteStreak
	MetricLowSugarMeals
	MetricBalancedMeals
	MetricUniqueFoods
	MetricDailyStreak
	MetricTotalCalories
	MetricTotalProtein
	MetricTotalFiber
)

var metricNames = map[Metric]string{
	MetricMealsLogged:     "meals_logged",
	MetricZeroWasteMeals:  "zero_waste_meals",
	MetricZeroWasteStreak: "zero_waste_streak",
	MetricLowSugarMeals:   "low_sugar_meals",
	MetricBalancedMeals:   "balanced_meals",
	MetricUniqueFoods:     "unique_foods",
	MetricDailyStreak:     "daily_streak",
	MetricTotalCalories:   "total_calories",
	MetricTotalProtein:    "total_protein",
	MetricTotalFiber:      "total_fiber",
}

func (m Metric) String() string {
	if name, ok := metricNames[m]; ok {
		return name
	}
	return "unknown"
}

// Raw returns the unrounded value of the metric in s.
func (m Metric) Raw(s *models.UserStats) float64 {
	switch m {
	case MetricMealsLogged:
		return float64(s.TotalMealsLogged)
	case MetricZeroWasteMeals:
		return float64(s.ZeroWasteMealsCount)
	case MetricZeroWasteStreak:
		return float64(s.ZeroWasteStreak)
	case MetricLowSugarMeals:
		return float64(s.LowSugarMealsCount)
	case MetricBalancedMeals:
		return float64(s.BalancedMealsCount)
	case MetricUniqueFoods:
		return float64(s.UniqueFoodItemsCount)
	case MetricDailyStreak:
		return float64(s.DailyLogStreak)
	case MetricTotalCalories:
		return s.TotalCalories
	case MetricTotalProtein:
		return s.TotalProtein
	case MetricTotalFiber:
		return s.TotalFiber
	default:
		return 0
	}
}

// Value returns the metric rounded to the nearest integer, as shown on a
// progress bar. Totals past math.MaxInt32 report math.MaxInt32.
func (m Metric) Value(s *models.UserStats) int {
	v := m.Raw(s)
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int(math.Round(v))
}

// RuleKind discriminates Rule variants.
type RuleKind int

const (
	// RuleThreshold unlocks when one metric reaches a target.
	RuleThreshold RuleKind = iota
	// RuleAllOf unlocks when every condition holds at once. Progress is the
	// number of conditions met.
	RuleAllOf
)

// Condition is one clause of an all-of rule, met when the raw metric is >= Min.
type Condition struct {
	Metric Metric
	Min    float64
}

// Met reports whether the condition holds for s.
func (c Condition) Met(s *models.UserStats) bool {
	return c.Metric.Raw(s) >= c.Min
}

// Rule is how an achievement measures progress.
type Rule struct {
	Kind       RuleKind
	Metric     Metric
	Target     int
	Conditions []Condition
}

// Threshold builds a single-metric rule.
func Threshold(m Metric, target int) Rule {
	return Rule{Kind: RuleThreshold, Metric: m, Target: target}
}

// AllOf builds a compound rule. There is no partial credit: the rule unlocks
// only when every condition is met.
func AllOf(conds ...Condition) Rule {
	return Rule{Kind: RuleAllOf, Conditions: append([]Condition(nil), conds...)}
}

// Progress evaluates the rule against s.
func (r Rule) Progress(s *models.UserStats) (current, target int) {
	switch r.Kind {
	case RuleAllOf:
		for _, c := range r.Conditions {
			if c.Met(s) {
				current++
			}
		}
		return current, len(r.Conditions)
	default:
		return r.Metric.Value(s), r.Target
	}
}
