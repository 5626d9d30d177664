// ABOUTME: CLI commands for the level curve.
// ABOUTME: Places an XP total on the curve and prints the per-level XP table.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/crumb/internal/level"
	"github.com/spf13/cobra"
)

var levelTableRows int

var levelCmd = &cobra.Command{
	Use:   "level [xp]",
	Short: "Show level progress",
	Long: `Show where an XP total sits on the level curve.

Without an argument, your own total XP is used.

EXAMPLES:

  crumb level
  crumb level 1500
  crumb level table --rows 30`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var xp float64
		if len(args) == 1 {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid xp: %s", args[0])
			}
			if err := level.CheckXP(v); err != nil {
				return fmt.Errorf("invalid xp %s: %w", args[0], err)
			}
			xp = v
		} else {
			userID, err := requireUser()
			if err != nil {
				return err
			}
			if err := openStoreFor(cmd); err != nil {
				return err
			}
			st, err := eng.GetUserStats(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("failed to get stats: %w", err)
			}
			xp = float64(st.TotalXP)
		}

		p := level.FromXP(xp)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %d  %s\n",
			color.New(color.Bold).Sprint("Level"), p.Level, progressBar(p.Fraction(), 20))
		fmt.Fprintf(out, "  %s %.1f / %.1f\n", padRight("xp in level", 16), p.XPInLevel, p.LevelWidth)
		fmt.Fprintf(out, "  %s %.1f\n", padRight("to next level", 16), p.Remaining())
		fmt.Fprintf(out, "  %s %.1f\n", padRight("next level at", 16), level.CumulativeXPForLevel(p.Level))
		return nil
	},
}

var levelTableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print XP needed per level",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if levelTableRows <= 0 || levelTableRows > level.MaxLevel {
			return fmt.Errorf("rows must be between 1 and %d", level.MaxLevel)
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		fmt.Fprintf(out, "%s %s %s\n",
			faint.Sprint(padRight("LEVEL", 6)),
			faint.Sprint(padRight("COST", 12)),
			faint.Sprint("REACHED AT"))
		reached := 0.0
		for n := 1; n <= levelTableRows; n++ {
			cost := level.XPForLevel(n)
			fmt.Fprintf(out, "%s %s %.1f\n",
				padRight(strconv.Itoa(n), 6),
				padRight(fmt.Sprintf("%.1f", cost), 12),
				reached)
			reached += cost
		}
		return nil
	},
}

func init() {
	levelCmd.Annotations = map[string]string{annotationSkipStore: "true"}
	levelTableCmd.Flags().IntVar(&levelTableRows, "rows", 20, "number of levels to print")
	levelCmd.AddCommand(levelTableCmd)
	rootCmd.AddCommand(levelCmd)
}
