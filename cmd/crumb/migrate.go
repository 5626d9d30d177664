// ABOUTME: CLI command for copying data between storage backends.
// ABOUTME: Reads everything from one configured backend and writes it to another.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/crumb/internal/config"
	"github.com/harperreed/crumb/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data between storage backends",
	Long: `Copy all stats and achievements from one backend to another.

Both backends are opened with the connection settings from your config, so
set postgres_url or redis_addr first when they are involved.

IMPORTANT:

  - Stats snapshots in the destination are overwritten
  - Achievements already in the destination are kept and counted as skipped
  - Run with --dry-run first to see what would be copied

USAGE:

  crumb migrate --from charm --to sqlite --dry-run
  crumb migrate --from sqlite --to postgres`,
	Annotations: map[string]string{annotationSkipStore: "true"},
	Args:        cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == "" || migrateTo == "" {
			return fmt.Errorf("both --from and --to are required")
		}
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are the same backend: %s", migrateFrom)
		}

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		src, err := openBackend(cmd, migrateFrom)
		if err != nil {
			return err
		}
		defer src.Close()

		if migrateDryRun {
			data, err := storage.GetAllData(ctx, src)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", migrateFrom, err)
			}
			fmt.Fprintln(out, color.YellowString("Dry run mode - no changes will be made"))
			fmt.Fprintf(out, "  would copy %d stats row(s) and %d achievement(s) from %s to %s\n",
				len(data.Stats), len(data.Achievements), migrateFrom, migrateTo)
			return nil
		}

		dst, err := openBackend(cmd, migrateTo)
		if err != nil {
			return err
		}
		defer dst.Close()

		summary, err := storage.MigrateData(ctx, src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		fmt.Fprintln(out, color.GreenString("✓ Migrated %s → %s", migrateFrom, migrateTo))
		fmt.Fprintf(out, "  stats: %d  achievements: %d  skipped: %d\n",
			summary.Stats, summary.Achievements, summary.Skipped)
		return nil
	},
}

// openBackend opens the named backend with the loaded connection settings.
func openBackend(cmd *cobra.Command, backend string) (storage.Store, error) {
	switch backend {
	case config.BackendSQLite, config.BackendPostgres, config.BackendRedis, config.BackendCharm:
	default:
		return nil, fmt.Errorf("unknown backend: %s (use sqlite, postgres, redis, or charm)", backend)
	}
	c := *cfg
	c.Backend = backend
	s, err := c.OpenStorage(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", backend, err)
	}
	return s, nil
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
