// ABOUTME: CLI command showing the workout planned for a day.
// ABOUTME: Marks today's plan as done when the signed-in user already completed it.
package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitday/internal/identity"
	"github.com/harperreed/fitday/internal/models"
	"github.com/harperreed/fitday/internal/planner"
	"github.com/spf13/cobra"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:     "today",
	Aliases: []string{"t"},
	Short:   "Show today's workout",
	Long: `Show the workout planned for today, or for another day with --date.

Every user gets the same workout on the same date.

EXAMPLES:

  fitday today
  fitday today --date 2025-12-25`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		now := today()

		date := now
		if todayDate != "" {
			d, err := models.ParseDate(todayDate)
			if err != nil {
				return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", todayDate)
			}
			date = d
		}

		if date != now {
			printWorkout(out, planner.SelectWorkout(date))
			return nil
		}

		tr, err := loadTracker(cmd.Context())
		if errors.Is(err, identity.ErrNoUser) {
			printWorkout(out, planner.SelectWorkout(date))
			return nil
		}
		if err != nil {
			return err
		}

		printWorkout(out, tr.TodayWorkout())
		if tr.IsCompletedToday() {
			color.New(color.FgGreen).Fprintln(out, "\n✓ Done for today")
		} else {
			fmt.Fprintln(out, "\nRun 'fitday start' to begin.")
		}
		return nil
	},
}

func printWorkout(w io.Writer, wo *models.Workout) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Fprintf(w, "%s  %s\n", wo.Name, faint.Sprint(wo.Date))
	fmt.Fprintf(w, "%d exercises, about %d min, %s\n\n", wo.Len(), wo.Minutes(), wo.Difficulty)
	for i, e := range wo.Exercises {
		fmt.Fprintf(w, "%2d. %s %s %s\n",
			i+1,
			padRight(e.Name, 18),
			padRight(e.Target(), 9),
			faint.Sprintf("%s, rest %ds", e.MuscleGroup, e.RestSeconds))
	}
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	todayCmd.Flags().StringVar(&todayDate, "date", "", "show the plan for this date (YYYY-MM-DD)")
	rootCmd.AddCommand(todayCmd)
}
