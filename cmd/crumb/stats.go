// ABOUTME: CLI command for showing a user's cumulative stats.
// ABOUTME: Prints streaks, meal counters, nutrient totals, variety, and level.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/crumb/internal/level"
	"github.com/harperreed/crumb/internal/models"
	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"st"},
	Short:   "Show your stats",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser()
		if err != nil {
			return err
		}

		st, err := eng.GetUserStats(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		out := cmd.OutOrStdout()
		if statsJSON {
			data, err := json.MarshalIndent(st, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)
		p := level.FromXP(float64(st.TotalXP))

		fmt.Fprintf(out, "%s %d  %s %s\n",
			bold.Sprint("Level"), p.Level,
			progressBar(p.Fraction(), 20),
			faint.Sprintf("%d XP total, %.1f to level %d", st.TotalXP, p.Remaining(), p.Level+1))
		fmt.Fprintln(out)

		fmt.Fprintln(out, bold.Sprint("Streaks"))
		fmt.Fprintf(out, "  %s %d day(s)\n", padRight("daily logging", 20), st.DailyLogStreak)
		fmt.Fprintf(out, "  %s %d meal(s)\n", padRight("zero waste", 20), st.ZeroWasteStreak)
		if st.LastLogDate != nil {
			fmt.Fprintf(out, "  %s %s\n", padRight("last log", 20), st.LastLogDate.Format(models.DateLayout))
		}
		fmt.Fprintln(out)

		fmt.Fprintln(out, bold.Sprint("Meals"))
		fmt.Fprintf(out, "  %s %d\n", padRight("logged", 20), st.TotalMealsLogged)
		fmt.Fprintf(out, "  %s %d\n", padRight("zero waste", 20), st.ZeroWasteMealsCount)
		fmt.Fprintf(out, "  %s %d\n", padRight("low sugar", 20), st.LowSugarMealsCount)
		fmt.Fprintf(out, "  %s %d\n", padRight("balanced", 20), st.BalancedMealsCount)
		fmt.Fprintln(out)

		fmt.Fprintln(out, bold.Sprint("Totals"))
		fmt.Fprintf(out, "  %s %.0f kcal\n", padRight("calories", 20), st.TotalCalories)
		fmt.Fprintf(out, "  %s %.1f g\n", padRight("protein", 20), st.TotalProtein)
		fmt.Fprintf(out, "  %s %.1f g\n", padRight("carbs", 20), st.TotalCarbs)
		fmt.Fprintf(out, "  %s %.1f g\n", padRight("fat", 20), st.TotalFat)
		fmt.Fprintf(out, "  %s %.1f g\n", padRight("fiber", 20), st.TotalFiber)
		fmt.Fprintf(out, "  %s %.1f g\n", padRight("sugar", 20), st.TotalSugar)
		if st.TotalWasteGrams > 0 {
			fmt.Fprintf(out, "  %s %.1f g\n", padRight("food waste", 20), st.TotalWasteGrams)
		}
		fmt.Fprintln(out)

		fmt.Fprintf(out, "%s %d unique food(s)\n", bold.Sprint("Variety"), st.UniqueFoodItemsCount)
		if n := len(st.UniqueFoodItems); n > 0 {
			recent := st.UniqueFoodItems
			if n > 10 {
				recent = recent[n-10:]
			}
			fmt.Fprintf(out, "  %s\n", faint.Sprint(truncate(strings.Join(recent, ", "), 72)))
		}
		return nil
	},
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print raw JSON")
	rootCmd.AddCommand(statsCmd)
}
