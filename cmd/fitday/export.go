// ABOUTME: CLI commands for exporting and importing workout history.
// ABOUTME: Supports JSON (backup/restore) and YAML (human-readable) exports.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/fitday/internal/storage"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export your workout history",
	Long: `Export the signed-in user's completions and weekly goal.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)

EXAMPLES:

  fitday export json                  # Export as JSON
  fitday export json -o backup.json   # Save to file
  fitday export yaml                  # Export as YAML`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml"},
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := signedInUser(cmd.Context())
		if err != nil {
			return err
		}
		r, err := openRepo()
		if err != nil {
			return err
		}

		var data []byte
		switch args[0] {
		case "json":
			data, err = storage.ExportJSON(cmd.Context(), r, u.ID)
		case "yaml":
			data, err = storage.ExportYAML(cmd.Context(), r, u.ID)
		default:
			return fmt.Errorf("unknown format: %s (use json or yaml)", args[0])
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import workout history from a JSON export",
	Long: `Import completions and the weekly goal from a JSON export.

Duplicate entries (same ID) will cause an error.

EXAMPLES:

  fitday import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		r, err := openRepo()
		if err != nil {
			return err
		}
		if err := storage.ImportJSON(cmd.Context(), r, data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
