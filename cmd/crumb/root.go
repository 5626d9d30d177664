// ABOUTME: Root Cobra command for crumb CLI.
// ABOUTME: Loads config and opens the store and engine via PersistentPre/PostRunE.
package main

import (
	"errors"
	"fmt"

	"github.com/harperreed/crumb/internal/config"
	"github.com/harperreed/crumb/internal/engine"
	"github.com/harperreed/crumb/internal/logger"
	"github.com/harperreed/crumb/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// annotationSkipStore marks commands that run without an open store.
const annotationSkipStore = "skipStore"

var (
	cfg   *config.Config
	store storage.Store
	eng   *engine.Engine
	log   *zap.Logger

	flagVerbose bool
	flagUser    string
	flagBackend string
)

var rootCmd = &cobra.Command{
	Use:   "crumb",
	Short: "Gamified food logging: streaks, levels, and achievements",
	Long: `Crumb turns meal logging into a game.

Every logged meal earns XP, extends your daily streak, and counts toward
achievements for clean plates, low sugar, balanced meals, and food variety.

QUICK START:

  $ crumb init                                  # Create config with a user id
  $ crumb log calorie 520 --item rice --item salmon
  $ crumb log before-after 700 40 -n protein=32 -n sugar=6
  $ crumb stats                                 # Streaks, totals, and level
  $ crumb achievements                          # Achievement board

STORAGE BACKENDS:

  sqlite     Local database at ~/.local/share/crumb/crumb.db (default)
  postgres   Shared database, set postgres_url
  redis      Shared key-value store, set redis_addr
  charm      Charm KV, synced across devices

  Choose with 'crumb init --backend <name>', CRUMB_BACKEND, or --backend.

MCP INTEGRATION:

  Run 'crumb mcp' to start the Model Context Protocol server. Add to your
  Claude config:

  {
    "mcpServers": {
      "crumb": { "command": "crumb", "args": ["mcp"] }
    }
  }`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if flagBackend != "" {
			cfg.Backend = flagBackend
		}
		if flagUser != "" {
			cfg.UserID = flagUser
		}

		if flagVerbose {
			log = logger.NewDevelopment()
		} else {
			log, err = logger.New(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
		}

		if skipsStore(cmd) {
			return nil
		}
		return openStoreFor(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

// skipsStore reports whether cmd or one of its parents is marked to run
// without a store.
func skipsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationSkipStore] == "true" {
			return true
		}
	}
	return false
}

// openStoreFor opens the configured store and builds the engine on it.
func openStoreFor(cmd *cobra.Command) error {
	if store != nil {
		return nil
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	store, err = cfg.OpenStorage(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
	}
	eng = engine.New(store, nil, engine.WithLogger(log), engine.WithLocation(loc))
	return nil
}

// closeStore releases the store opened by PersistentPreRunE. Cobra skips
// PersistentPostRunE when RunE fails, so main calls it as well.
func closeStore() error {
	var err error
	if store != nil {
		err = store.Close()
		store = nil
		eng = nil
	}
	if log != nil {
		_ = log.Sync()
	}
	return err
}

// requireUser returns the configured user id.
func requireUser() (string, error) {
	if cfg == nil || cfg.UserID == "" {
		return "", errors.New("no user id configured: run 'crumb init' or set CRUMB_USER_ID")
	}
	return cfg.UserID, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "act as this user id")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend (sqlite, postgres, redis, charm)")
}
