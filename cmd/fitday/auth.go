// ABOUTME: CLI commands for signing in and out.
// ABOUTME: The user ID comes from the email or, with --charm, from the Charm account.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitday/internal/charm"
	"github.com/harperreed/fitday/internal/identity"
	"github.com/spf13/cobra"
)

var authCharm bool

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in, sign out, and show the current user",
	Long: `Manage who fitday records workouts for.

Your history is keyed by a user ID. By default the ID is derived from your
email, so signing in with the same email on another machine that shares the
same backend shows the same history. With --charm the ID is your Charm
account ID instead.

COMMANDS:

  login <email>   Sign in on this device
  logout          Sign out (history is kept)
  whoami          Show the signed-in user`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in on this device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := ""
		if authCharm {
			var err error
			id, err = charm.AccountID()
			if err != nil {
				return fmt.Errorf("failed to read charm account: %w\n\nRun 'fitday sync link' first.", err)
			}
		}

		u, err := identityProvider().SignIn(cmd.Context(), args[0], id)
		if err != nil {
			return fmt.Errorf("sign in failed: %w", err)
		}

		color.Green("✓ Signed in as %s", u.Email)
		fmt.Fprintf(cmd.OutOrStdout(), "User ID: %s\n", u.ID)
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out on this device",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := identityProvider().SignOut(cmd.Context()); err != nil {
			return err
		}
		color.Green("✓ Signed out")
		return nil
	},
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := identityProvider().CurrentUser(cmd.Context())
		if errors.Is(err, identity.ErrNoUser) {
			color.Yellow("Not signed in")
			fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'fitday auth login <email>' to sign in.")
			return nil
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Email:   %s\n", u.Email)
		fmt.Fprintf(out, "User ID: %s\n", u.ID)
		fmt.Fprintf(out, "Since:   %s\n", u.SignedInAt.Local().Format("2006-01-02 15:04"))
		fmt.Fprintf(out, "Backend: %s\n", cfg.GetBackend())
		return nil
	},
}

func init() {
	authLoginCmd.Flags().BoolVar(&authCharm, "charm", false, "use the Charm account ID as the user ID")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)
	rootCmd.AddCommand(authCmd)
}
