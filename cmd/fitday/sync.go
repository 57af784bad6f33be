// ABOUTME: CLI commands for Charm-based sync.
// ABOUTME: Supports link, status, and reset operations.
package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/fatih/color"
	"github.com/harperreed/fitday/internal/charm"
	"github.com/harperreed/fitday/internal/config"
	"github.com/harperreed/fitday/internal/storage"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync workout history across devices",
	Long: `Sync workout history across devices using Charm Cloud.

Your data is E2E encrypted with your SSH key before upload.

GETTING STARTED:

  1. Link your device (creates/uses SSH key automatically):
     fitday sync link

  2. Copy existing local history into Charm:
     fitday migrate --from sqlite --to charm

  3. Check sync status:
     fitday sync status

COMMANDS:

  link        Link this device to Charm and switch the backend to charm
  status      Show backend, account, and record counts
  reset       Reset local Charm data and restore from cloud (destructive)

Data syncs automatically after each write.`,
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	Long: `Link this device to your Charm account and use Charm as the backend.

If you don't have a Charm account, one will be created using your SSH key.

Example:
  fitday sync link`,
	RunE: func(cmd *cobra.Command, args []string) error {
		charmCmd := exec.Command("charm", "link")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}
		color.Green("\n✓ Device linked to Charm")

		// Persist the file config only, so env overrides are not written back.
		fileCfg, err := config.LoadFile()
		if err != nil {
			return err
		}
		fileCfg.Backend = config.BackendCharm
		if err := fileCfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Println("Backend set to charm in", config.GetConfigPath())

		client, err := charm.InitClient()
		if err != nil {
			color.Yellow("⚠ Charm client unavailable: %v", err)
			return nil
		}
		if err := client.Sync(); err != nil {
			color.Yellow("⚠ Initial sync failed: %v", err)
		} else {
			color.Green("✓ Initial sync complete")
		}
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Backend:", cfg.GetBackend())

		switch cfg.GetBackend() {
		case config.BackendCharm:
			id, err := charm.AccountID()
			if err != nil {
				color.Yellow("Not linked to Charm")
				fmt.Fprintln(out, "\nRun 'fitday sync link' to connect to Charm.")
				return nil
			}
			fmt.Fprintln(out, "Charm ID:", id)
		case config.BackendRedis:
			fmt.Fprintln(out, "Redis:", cfg.Redis.Addr)
		default:
			fmt.Fprintln(out, "Data dir:", cfg.GetDataDir())
			fmt.Fprintln(out, "\nHistory is local to this machine. Run 'fitday sync link' to sync with Charm.")
		}

		u, err := signedInUser(cmd.Context())
		if err != nil {
			return nil
		}
		r, err := openRepo()
		if err != nil {
			color.Yellow("⚠ %v", err)
			return nil
		}
		if db, ok := r.(*storage.DB); ok {
			fmt.Fprintln(out, "Database:", db.Path())
			if err := db.Ping(cmd.Context()); err != nil {
				color.Yellow("⚠ Database unreachable: %v", err)
				return nil
			}
		}
		records, err := r.ListCompletionRecords(cmd.Context(), u.ID, 0)
		if err != nil {
			color.Yellow("⚠ Storage unavailable: %v", err)
			return nil
		}

		color.Green("✓ Connected")
		fmt.Fprintf(out, "  Completed workouts for %s: %d\n", u.Email, len(records))
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local Charm data and restore from cloud",
	Long: `Delete the local Charm copy of your history and restore it from Charm Cloud.

Use this to fix sync conflicts or reset a device to cloud state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("This will DELETE the local Charm data and restore it from cloud.")
		fmt.Print("Continue? [y/N]: ")
		var confirm string
		_, _ = fmt.Fscanln(cmd.InOrStdin(), &confirm)
		if confirm != "y" && confirm != "Y" {
			fmt.Println("Canceled.")
			return nil
		}

		client, err := charm.InitClient()
		if err != nil {
			return fmt.Errorf("failed to initialize charm client: %w", err)
		}
		if err := client.Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}

		color.Green("✓ Local data reset and restored from cloud")
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncResetCmd)

	rootCmd.AddCommand(syncCmd)
}
