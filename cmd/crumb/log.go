// ABOUTME: CLI commands for logging meals.
// ABOUTME: Builds a meal from flags, runs it through the engine, and celebrates unlocks.
package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/crumb/internal/engine"
	"github.com/harperreed/crumb/internal/models"
	"github.com/spf13/cobra"
)

var (
	logNutrients  []string
	logItems      []string
	logWasteGrams float64
	logXP         int64
)

var logCmd = &cobra.Command{
	Use:     "log",
	Aliases: []string{"l"},
	Short:   "Log a meal",
	Long: `Log a meal and update streaks, totals, and achievements.

MEAL TYPES:

  calorie <kcal>                  One photo, the whole plate was eaten
  before-after <before> <after>   Two photos; <after> is what was left

NUTRIENTS:

  Pass grams with -n name=grams. Names: protein, carbs, fat, fiber, sugar
  (or the codes PROCNT, CHOCDF, FAT, FIBTG, SUGAR).

EXAMPLES:

  crumb log calorie 520 --item rice --item salmon
  crumb log before-after 700 40 -n protein=32 -n fiber=6 -n sugar=4
  crumb log before-after 650 0 --waste-grams 0`,
}

var logCalorieCmd = &cobra.Command{
	Use:   "calorie <kcal>",
	Short: "Log a single-photo meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kcal, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid calories: %s", args[0])
		}
		return runLogMeal(cmd, models.MealInput{Type: string(models.MealCalorie), Calories: kcal})
	},
}

var logBeforeAfterCmd = &cobra.Command{
	Use:     "before-after <before> <after>",
	Aliases: []string{"ba"},
	Short:   "Log a before/after meal",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		before, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid before calories: %s", args[0])
		}
		after, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid after calories: %s", args[1])
		}
		return runLogMeal(cmd, models.MealInput{
			Type:          string(models.MealBeforeAfter),
			Calories:      before,
			CaloriesAfter: &after,
		})
	},
}

func runLogMeal(cmd *cobra.Command, in models.MealInput) error {
	userID, err := requireUser()
	if err != nil {
		return err
	}

	nutrients, err := parseNutrients(logNutrients)
	if err != nil {
		return err
	}
	in.Nutrients = nutrients
	in.Items = logItems
	if cmd.Flags().Changed("waste-grams") {
		grams := logWasteGrams
		in.WasteGrams = &grams
	}
	if cmd.Flags().Changed("xp") {
		xp := logXP
		in.ExpEarned = &xp
	}

	m, err := in.MealLog(cfg.MealXP)
	if err != nil {
		return err
	}

	res, err := eng.LogMeal(cmd.Context(), userID, m)
	if res == nil {
		return fmt.Errorf("failed to log meal: %w", err)
	}
	printMealResult(cmd.OutOrStdout(), m, res)
	if err != nil {
		return fmt.Errorf("meal saved but achievements were not awarded: %w", err)
	}
	return nil
}

// parseNutrients turns name=grams pairs into a nutrient map.
func parseNutrients(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid nutrient %q (use name=grams)", p)
		}
		grams, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid grams for %s: %s", name, value)
		}
		code, ok := models.NutrientCode(name)
		if !ok {
			return nil, fmt.Errorf("unknown nutrient: %s", name)
		}
		out[code] += grams
	}
	return out, nil
}

func printMealResult(out io.Writer, m *models.MealLog, res *engine.MealResult) {
	faint := color.New(color.Faint)

	fmt.Fprintln(out, color.GreenString("✓ Logged %s meal", m.Type))
	fmt.Fprintf(out, "  %s +%d XP\n", faint.Sprint("meal"), m.ExpEarned)

	if res.Award != nil {
		for _, d := range res.Award.Awarded {
			fmt.Fprintf(out, "  %s %s %s %s\n",
				color.YellowString("★"),
				d.Icon,
				color.New(color.Bold).Sprint(d.Title),
				faint.Sprintf("+%d XP", d.RewardXP))
		}
	}

	st := res.Stats
	fmt.Fprintf(out, "  %s %d day(s)   %s %d meal(s)\n",
		faint.Sprint("streak"), st.DailyLogStreak,
		faint.Sprint("zero-waste streak"), st.ZeroWasteStreak)

	p := res.LevelAfter
	if res.LeveledUp {
		fmt.Fprintln(out, color.MagentaString("  ▲ Level up! %d → %d", res.LevelBefore.Level, p.Level))
	}
	fmt.Fprintf(out, "  %s %d  %s %s\n",
		faint.Sprint("level"), p.Level,
		progressBar(p.Fraction(), 20),
		faint.Sprintf("%.0f/%.1f XP", p.XPInLevel, p.LevelWidth))
}

func progressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func init() {
	logCmd.PersistentFlags().StringArrayVarP(&logNutrients, "nutrient", "n", nil, "nutrient grams as name=grams (repeatable)")
	logCmd.PersistentFlags().StringArrayVarP(&logItems, "item", "i", nil, "detected food item (repeatable)")
	logCmd.PersistentFlags().Float64Var(&logWasteGrams, "waste-grams", 0, "measured leftover weight in grams")
	logCmd.PersistentFlags().Int64Var(&logXP, "xp", 0, "XP for this meal (default from config)")

	logCmd.AddCommand(logCalorieCmd)
	logCmd.AddCommand(logBeforeAfterCmd)
	rootCmd.AddCommand(logCmd)
}
