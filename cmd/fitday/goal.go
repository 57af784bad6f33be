// ABOUTME: CLI command to show or set the weekly workout goal.
// ABOUTME: The goal belongs to the account, so it is stored with the history.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal [days]",
	Short: "Show or set the weekly goal (1-7 days)",
	Long: `Show the weekly goal, or set it to a number of days between 1 and 7.

EXAMPLES:

  fitday goal      # Show the current goal
  fitday goal 5    # Work out five days a week`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := loadTracker(cmd.Context())
		if err != nil {
			return err
		}

		if len(args) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Weekly goal: %d days\n", tr.WeeklyGoal())
			return nil
		}

		goal, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid goal: %s", args[0])
		}
		if err := warnTransient(tr.SetWeeklyGoal(cmd.Context(), goal)); err != nil {
			return err
		}

		color.Green("✓ Weekly goal set to %d days", goal)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
}
