// ABOUTME: CLI commands for the achievement board.
// ABOUTME: Lists achievements by category with progress, and re-checks unlocks on demand.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	achievementsUnlocked bool
	achievementsCategory string
)

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "Show the achievement board",
	Long: `Show every achievement grouped by category with your progress.

EXAMPLES:

  crumb achievements
  crumb achievements --unlocked
  crumb achievements --category variety
  crumb achievements check`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser()
		if err != nil {
			return err
		}

		board, err := eng.Board(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("failed to build board: %w", err)
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		fmt.Fprintf(out, "%s %d/%d unlocked\n", bold.Sprint("Achievements"), board.Unlocked, board.Total)
		for _, cat := range board.Categories {
			if achievementsCategory != "" && !strings.EqualFold(cat.Name, achievementsCategory) {
				continue
			}

			printed := false
			for _, e := range cat.Entries {
				if achievementsUnlocked && !e.Unlocked {
					continue
				}
				if !printed {
					fmt.Fprintln(out)
					fmt.Fprintf(out, "%s %s\n", cat.Icon, bold.Sprint(cat.Name))
					printed = true
				}

				mark := faint.Sprint("○")
				title := padRight(e.Title, 28)
				status := faint.Sprintf("%d/%d", e.Current, e.Target)
				if e.Unlocked {
					mark = color.GreenString("●")
					title = color.New(color.Bold).Sprint(title)
					status = color.GreenString("unlocked %s", e.UnlockedAt.Format("2006-01-02"))
				}
				fmt.Fprintf(out, "  %s %s %s %s %s\n",
					mark, e.Icon, title,
					faint.Sprint(padRight(fmt.Sprintf("+%d XP", e.RewardXP), 10)),
					status)
			}
		}
		return nil
	},
}

var achievementsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Award any achievements your current stats qualify for",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser()
		if err != nil {
			return err
		}

		st, err := eng.GetUserStats(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}
		res, err := eng.CheckAndAwardAchievements(cmd.Context(), userID, st)
		if err != nil {
			return fmt.Errorf("failed to check achievements: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(res.Awarded) == 0 {
			fmt.Fprintln(out, "No new achievements.")
			return nil
		}
		for _, d := range res.Awarded {
			fmt.Fprintf(out, "%s %s %s %s\n",
				color.YellowString("★"), d.Icon, d.Title,
				color.New(color.Faint).Sprintf("+%d XP", d.RewardXP))
		}
		fmt.Fprintln(out, color.GreenString("✓ Unlocked %d achievement(s), total XP %d", len(res.Awarded), res.TotalXP))
		return nil
	},
}

func init() {
	achievementsCmd.Flags().BoolVarP(&achievementsUnlocked, "unlocked", "u", false, "only show unlocked achievements")
	achievementsCmd.Flags().StringVarP(&achievementsCategory, "category", "c", "", "only show this category")
	achievementsCmd.AddCommand(achievementsCheckCmd)
	rootCmd.AddCommand(achievementsCmd)
}
