// ABOUTME: Root Cobra command for fitday CLI.
// ABOUTME: Loads config and logger up front; opens storage lazily and closes it after each command.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitday/internal/config"
	"github.com/harperreed/fitday/internal/identity"
	"github.com/harperreed/fitday/internal/logging"
	"github.com/harperreed/fitday/internal/models"
	"github.com/harperreed/fitday/internal/storage"
	"github.com/harperreed/fitday/internal/tracker"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfg    = &config.Config{}
	logger = zerolog.Nop()
	repo   storage.Repository

	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "fitday",
	Short: "One short guided workout every day",
	Long: `fitday picks a short bodyweight workout for each day, times it for you,
and tracks how many days you showed up.

QUICK START:

  $ fitday auth login you@example.com   # Sign in (creates your history)
  $ fitday today                        # See today's workout
  $ fitday start                        # Run it with a timer
  $ fitday progress                     # Month, week, and streak

DURING A WORKOUT:

  p   pause / resume
  s   skip to the next exercise
  q   stop (asks first; stopped workouts are not recorded)

SETTINGS:

  $ fitday goal 5          # Aim for 5 workout days per week (1-7)
  $ fitday sound off       # Silence the bell on this device

STORAGE:

  History lives in SQLite at ~/.local/share/fitday/fitday.db by default.
  Set "backend" in ~/.config/fitday/config.json to "charm" (Charm Cloud,
  E2E encrypted) or "redis" to share history between machines.

  $ fitday sync link                       # Use Charm Cloud
  $ fitday migrate --from sqlite --to charm

INTEGRATIONS:

  $ fitday serve    # HTTP JSON API with Prometheus /metrics
  $ fitday mcp      # Model Context Protocol server on stdio`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		level := cfg.LogLevel
		if logLevelFlag != "" {
			level = logLevelFlag
		}
		logger = logging.New(level, cfg.LogFormat, os.Stderr)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeRepo()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level (debug, info, warn, error)")
}

// openRepo opens the configured backend once per command.
func openRepo() (storage.Repository, error) {
	if repo != nil {
		return repo, nil
	}
	r, err := cfg.OpenStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
	}
	repo = r
	return repo, nil
}

func closeRepo() error {
	if repo == nil {
		return nil
	}
	err := repo.Close()
	repo = nil
	return err
}

func identityProvider() *identity.FileProvider {
	return identity.NewFileProvider("")
}

// signedInUser returns the current user or a hint to sign in.
func signedInUser(ctx context.Context) (identity.User, error) {
	u, err := identityProvider().CurrentUser(ctx)
	if errors.Is(err, identity.ErrNoUser) {
		return identity.User{}, fmt.Errorf("not signed in: run 'fitday auth login <email>' first: %w", err)
	}
	return u, err
}

// location returns the zone that decides what "today" is.
func location() *time.Location {
	loc, err := cfg.Location()
	if err != nil {
		return time.Local
	}
	return loc
}

func today() models.Date {
	return models.DateOf(time.Now().In(location()))
}

// loadTracker builds a tracker for the signed-in user and loads their history.
// Transient storage failures are printed as warnings and the tracker still
// works locally. Any other failure is returned.
func loadTracker(ctx context.Context) (*tracker.Tracker, error) {
	u, err := signedInUser(ctx)
	if err != nil {
		return nil, err
	}
	r, err := openRepo()
	if err != nil {
		return nil, err
	}

	tr := tracker.New(r, u.ID, tracker.Options{Location: location(), Logger: logger})
	if err := warnTransient(tr.Load(ctx)); err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return tr, nil
}

// warnTransient prints a storage warning, or returns err when it is not transient.
func warnTransient(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, tracker.ErrTransient) {
		color.Yellow("⚠ %v", err)
		return nil
	}
	return err
}
