// ABOUTME: CLI command listing the built-in exercise catalog.
// ABOUTME: Shows targets, rest, and optionally instructions for each exercise.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitday/internal/catalog"
	"github.com/spf13/cobra"
)

var catalogVerbose bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List every exercise fitday can pick",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)

		for _, e := range catalog.All() {
			fmt.Fprintf(out, "%s %s %s %s\n",
				faint.Sprint(padRight(e.ID, 16)),
				padRight(e.Name, 18),
				padRight(e.Target(), 9),
				faint.Sprintf("%s, rest %ds", e.MuscleGroup, e.RestSeconds))
			if catalogVerbose {
				for _, step := range e.Instructions {
					fmt.Fprintf(out, "    - %s\n", step)
				}
			}
		}
		return nil
	},
}

func init() {
	catalogCmd.Flags().BoolVarP(&catalogVerbose, "verbose", "v", false, "include instructions")
	rootCmd.AddCommand(catalogCmd)
}
