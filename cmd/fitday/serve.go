// ABOUTME: CLI command for the HTTP JSON API.
// ABOUTME: Serves the signed-in user's workout and progress plus Prometheus metrics.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/fitday/internal/logging"
	"github.com/harperreed/fitday/internal/server"
	"github.com/spf13/cobra"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start an HTTP JSON API for the signed-in user.

ROUTES:

  GET  /api/v1/workout/today   Today's workout
  GET  /api/v1/progress        Month, week, and streak progress
  GET  /api/v1/goal            Weekly goal
  PUT  /api/v1/goal            Set weekly goal {"weekly_goal": 5}
  GET  /api/v1/completions     Completed workouts (?limit=N)
  POST /api/v1/completions     Mark today done
  GET  /metrics                Prometheus metrics

The listen address comes from --listen, then "listen" in the config file,
then 127.0.0.1:8080.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// A server wants request logs, so default to info rather than warn.
		if cfg.LogLevel == "" && logLevelFlag == "" {
			logger = logging.New("info", cfg.LogFormat, os.Stderr)
		}

		tr, err := loadTracker(ctx)
		if err != nil {
			return err
		}

		addr := cfg.GetListen()
		if serveListen != "" {
			addr = serveListen
		}
		return server.New(tr, logger).ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (host:port)")
	rootCmd.AddCommand(serveCmd)
}
