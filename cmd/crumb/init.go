// ABOUTME: CLI command for creating the crumb config file.
// ABOUTME: Generates a user id and records backend and timezone choices.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/crumb/internal/config"
	"github.com/spf13/cobra"
)

var (
	initTimezone string
	initDataDir  string
	initNewUser  bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or update the crumb config",
	Long: `Create or update ~/.config/crumb/config.json.

A random user id is generated on first run and kept afterwards unless
--new-user is given. Environment overrides (CRUMB_*) are not written.

EXAMPLES:

  crumb init
  crumb init --backend postgres
  crumb init --timezone Europe/Berlin
  crumb init --data-dir ~/Dropbox/crumb`,
	Annotations: map[string]string{annotationSkipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fileCfg, err := config.LoadFile()
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		switch flagBackend {
		case "":
		case config.BackendSQLite, config.BackendPostgres, config.BackendRedis, config.BackendCharm:
			fileCfg.Backend = flagBackend
		default:
			return fmt.Errorf("unknown backend: %s (use sqlite, postgres, redis, or charm)", flagBackend)
		}
		if initTimezone != "" {
			if _, err := time.LoadLocation(initTimezone); err != nil {
				return fmt.Errorf("invalid timezone: %s", initTimezone)
			}
			fileCfg.Timezone = initTimezone
		}
		if initDataDir != "" {
			fileCfg.DataDir = initDataDir
		}
		if flagUser != "" {
			fileCfg.UserID = flagUser
		}
		if fileCfg.UserID == "" || initNewUser {
			fileCfg.UserID = uuid.New().String()
		}

		if err := fileCfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Config saved to %s", config.GetConfigPath()))
		fmt.Fprintf(out, "  user id:  %s\n", fileCfg.UserID)
		fmt.Fprintf(out, "  backend:  %s\n", fileCfg.GetBackend())
		if fileCfg.GetBackend() == config.BackendSQLite {
			fmt.Fprintf(out, "  data dir: %s\n", fileCfg.GetDataDir())
		}
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initTimezone, "timezone", "", "IANA time zone deciding calendar days")
	initCmd.Flags().StringVar(&initDataDir, "data-dir", "", "directory for the SQLite database")
	initCmd.Flags().BoolVar(&initNewUser, "new-user", false, "generate a fresh user id")
	rootCmd.AddCommand(initCmd)
}
