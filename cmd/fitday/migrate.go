// ABOUTME: CLI command for copying history between storage backends.
// ABOUTME: Moves completions and weekly goals, e.g. from SQLite to Charm or Redis.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitday/internal/config"
	"github.com/harperreed/fitday/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateAll    bool
	migrateForce  bool
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy workout history between backends",
	Long: `Copy completions and weekly goals from one backend to another.

By default only the signed-in user's history is copied. Use --all to copy
every user the source knows about.

BACKENDS: sqlite, charm, redis (settings come from the config file)

EXAMPLES:

  fitday migrate --from sqlite --to charm --dry-run
  fitday migrate --from sqlite --to charm
  fitday migrate --from charm --to redis --all

The destination should be empty. Migrating into a backend that already holds
history for the same users creates duplicate records, so it is refused
unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if migrateFrom == migrateTo {
			return fmt.Errorf("--from and --to must differ")
		}

		src, err := cfg.OpenBackend(migrateFrom)
		if err != nil {
			return fmt.Errorf("failed to open source %s: %w", migrateFrom, err)
		}
		defer src.Close()

		var users []string
		if !migrateAll {
			u, err := signedInUser(ctx)
			if err != nil {
				return fmt.Errorf("%w (or pass --all)", err)
			}
			users = []string{u.ID}
		} else {
			users, err = src.ListUsers(ctx)
			if err != nil {
				return fmt.Errorf("failed to list source users: %w", err)
			}
		}

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			for _, user := range users {
				records, err := src.ListCompletionRecords(ctx, user, 0)
				if err != nil {
					return fmt.Errorf("failed to list completions: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d completions\n", user, len(records))
			}
			return nil
		}

		dst, err := cfg.OpenBackend(migrateTo)
		if err != nil {
			return fmt.Errorf("failed to open destination %s: %w", migrateTo, err)
		}
		defer dst.Close()

		if !migrateForce {
			exists, err := storage.HasHistory(ctx, dst, users)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("destination %s already has history for these users (use --force to append anyway)", migrateTo)
			}
		}

		summary, err := storage.MigrateData(ctx, src, dst, users)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %s → %s", migrateFrom, migrateTo)
		fmt.Fprintf(cmd.OutOrStdout(), "  Users: %d\n  Completions: %d\n  Goals: %d\n",
			summary.Users, summary.Completions, summary.Goals)
		if migrateTo != cfg.GetBackend() {
			fmt.Fprintf(cmd.OutOrStdout(), "\nSet \"backend\": %q in %s to start using it.\n", migrateTo, config.GetConfigPath())
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "sqlite", "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "charm", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateAll, "all", false, "migrate every user in the source")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "migrate even if the destination has history")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
