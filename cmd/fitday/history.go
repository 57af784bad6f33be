// ABOUTME: CLI command listing the signed-in user's completed workouts.
// ABOUTME: Newest first, with exercise counts and time spent.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h", "list"},
	Short:   "List completed workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := loadTracker(cmd.Context())
		if err != nil {
			return err
		}

		records, err := tr.History(cmd.Context(), historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list completions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No completed workouts yet.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, r := range records {
			fmt.Fprintf(out, "%s %s %d/%d exercises  %s\n",
				faint.Sprint(r.ID.String()[:8]),
				r.Date,
				r.ExercisesCompleted,
				r.TotalExercises,
				time.Duration(r.DurationSeconds)*time.Second)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(historyCmd)
}
