// ABOUTME: The meal-log transition over a UserStats snapshot.
// ABOUTME: Pure: computes the next snapshot without touching storage.
package stats

import (
	"strings"
	"time"

	"github.com/harperreed/crumb/internal/models"
)

// Apply returns the snapshot that results from logging m on calendar day today
// (UTC midnight, see models.CalendarDate). prev is not modified.
func Apply(prev *models.UserStats, m *models.MealLog, today, now time.Time) *models.UserStats {
	next := prev.Clone()

	next.DailyLogStreak = NextDailyStreak(prev.DailyLogStreak, prev.LastLogDate, today)

	zeroWaste := IsZeroWaste(m)
	next.ZeroWasteStreak = NextZeroWasteStreak(prev.ZeroWasteStreak, zeroWaste)

	names := make([]string, 0, len(m.DetectedItems))
	for _, item := range m.DetectedItems {
		names = append(names, item.Name)
	}
	next.UniqueFoodItems = MergeUniqueItems(prev.UniqueFoodItems, names)
	next.UniqueFoodItemsCount = len(next.UniqueFoodItems)

	next.TotalCalories += MealCalories(m)
	next.TotalProtein += m.Nutrient(models.NutrientProtein)
	next.TotalCarbs += m.Nutrient(models.NutrientCarbs)
	next.TotalFat += m.Nutrient(models.NutrientFat)
	next.TotalFiber += m.Nutrient(models.NutrientFiber)
	next.TotalSugar += m.Nutrient(models.NutrientSugar)
	if m.WasteGrams != nil {
		next.TotalWasteGrams += *m.WasteGrams
	}

	next.TotalMealsLogged++
	if zeroWaste {
		next.ZeroWasteMealsCount++
	}
	if IsLowSugar(m) {
		next.LowSugarMealsCount++
	}
	if IsBalanced(m) {
		next.BalancedMealsCount++
	}
	next.TotalXP += m.ExpEarned

	d := today
	next.LastLogDate = &d
	next.UpdatedAt = now

	return next
}

// NextDailyStreak advances the daily logging streak:
// first log starts at 1, a same-day log leaves it alone, a log the day after
// the last one extends it, and anything else (a gap, or a last date in the
// future) restarts at 1.
func NextDailyStreak(current int, last *time.Time, today time.Time) int {
	if last == nil {
		return 1
	}
	switch DaysBetween(*last, today) {
	case 0:
		return current
	case 1:
		return current + 1
	default:
		return 1
	}
}

// NextZeroWasteStreak extends the streak on a zero-waste meal and clears it otherwise.
func NextZeroWasteStreak(current int, zeroWaste bool) int {
	if zeroWaste {
		return current + 1
	}
	return 0
}

// DaysBetween returns the number of calendar days from a to b. Both must be
// calendar dates at UTC midnight.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// MergeUniqueItems appends names not already present, compared after trimming
// and lower-casing. Order of first sighting is kept. Blank names are skipped.
func MergeUniqueItems(existing, names []string) []string {
	out := append([]string{}, existing...)
	seen := make(map[string]bool, len(existing)+len(names))
	for _, e := range existing {
		seen[strings.ToLower(e)] = true
	}
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}
