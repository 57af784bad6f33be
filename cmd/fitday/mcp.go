// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/fitday/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server acts for the signed-in user and communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "fitday": {
        "command": "fitday",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  get_daily_workout   Today's (or any date's) workout
  get_progress        Month, week, and streak progress
  set_weekly_goal     Set the weekly goal (1-7 days)
  record_completion   Mark today's workout as done
  list_completions    Recent completed workouts

AVAILABLE RESOURCES:

  fitday://today      Today's workout and whether it is done
  fitday://progress   Progress summary`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		tr, err := loadTracker(ctx)
		if err != nil {
			return err
		}

		server, err := mcp.NewServer(tr)
		if err != nil {
			return err
		}
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
