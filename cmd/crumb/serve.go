// ABOUTME: CLI command for running the crumb HTTP API.
// ABOUTME: Serves the chi router until SIGINT/SIGTERM, then shuts down gracefully.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harperreed/crumb/internal/httpapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serveAddr    string
	serveOrigins []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the crumb HTTP API on top of the configured backend.

ENDPOINTS:

  GET  /healthz
  GET  /achievements
  GET  /levels/{xp}
  GET  /users/{userID}/stats
  POST /users/{userID}/meals
  GET  /users/{userID}/achievements

EXAMPLES:

  crumb serve
  crumb serve --addr :9000 --cors https://app.example.com`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := &http.Server{
			Addr: serveAddr,
			Handler: httpapi.NewRouter(eng, httpapi.Options{
				AllowedOrigins: serveOrigins,
				MealXP:         cfg.MealXP,
				Logger:         log,
			}),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("listening", zap.String("addr", serveAddr), zap.String("backend", cfg.GetBackend()))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		// graceful shutdown
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringSliceVar(&serveOrigins, "cors", nil, "allowed CORS origins (repeatable or comma separated)")
	rootCmd.AddCommand(serveCmd)
}
