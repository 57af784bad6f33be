// ABOUTME: CLI command summarising monthly, weekly, and streak progress.
// ABOUTME: Reads the signed-in user's history through the tracker.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitday/internal/tracker"
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:     "progress",
	Aliases: []string{"p"},
	Short:   "Show this month's and this week's progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := loadTracker(cmd.Context())
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), tr.Summary())
		return nil
	},
}

func printSummary(w io.Writer, s tracker.Summary) {
	bold := color.New(color.Bold)

	bold.Fprintf(w, "%s %d\n", s.Today.Month, s.Today.Year)
	fmt.Fprintf(w, "  %s %d/%d days (%d%%)\n", bar(s.Month.Percentage, 20), s.Month.Completed, s.Month.DaysInMonth, s.Month.Percentage)

	bold.Fprintln(w, "This week")
	fmt.Fprintf(w, "  %d of %d days", s.Week.Completed, s.Week.Goal)
	if s.Week.Met {
		color.New(color.FgGreen).Fprint(w, "  ✓ goal met")
	} else {
		fmt.Fprintf(w, "  (%d to go)", s.Week.Remaining)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Streak: %d day%s\n", s.Streak, plural(s.Streak))
	if s.CompletedToday {
		color.New(color.FgGreen).Fprintln(w, "✓ Done for today")
	}
}

func bar(percent, width int) string {
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func init() {
	rootCmd.AddCommand(progressCmd)
}
