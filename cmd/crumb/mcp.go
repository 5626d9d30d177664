// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/crumb/internal/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server acts as the configured user and communicates via stdin/stdout.
Logs go to stderr.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "crumb": {
        "command": "crumb",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  log_meal             Log a meal and award achievements
  get_stats            Get cumulative stats and level
  check_achievements   Re-evaluate achievements against current stats
  list_achievements    List achievements with progress
  get_level            Place an XP total on the level curve

AVAILABLE RESOURCES:

  crumb://stats          Stats with level progress
  crumb://achievements   Full achievement board
  crumb://levels         Level curve thresholds`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser()
		if err != nil {
			return err
		}

		server, err := mcp.NewServer(eng, mcp.Options{UserID: userID, MealXP: cfg.MealXP})
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		log.Info("mcp server starting", zap.String("user_id", userID), zap.String("backend", cfg.GetBackend()))
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
