package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"stunden/internal/backend"
	apphttp "stunden/internal/http"
	"stunden/internal/services"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			loadEnvFile()
			logger := setupLogger("serve")

			cfg, err := loadAndValidateConfig(logger.Logger)
			if err != nil {
				return err
			}

			result, err := backend.New(cfg, logger.Logger)
			if err != nil {
				logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
				return err
			}
			defer func() {
				if err := result.Cleanup(); err != nil {
					logger.Error("Backend cleanup error", "error", err)
				}
			}()

			svc := services.NewEntryService(result.Store, cfg.QuotaHours)
			srv := apphttp.NewServer(":"+cfg.Port, svc, cfg.AdminPassword)

			srv.ReadTimeout = 10 * time.Second
			srv.WriteTimeout = 10 * time.Second
			srv.IdleTimeout = 60 * time.Second
			srv.MaxHeaderBytes = 1 << 16 // 64KB

			if cfg.AdminPassword == "" {
				logger.Warn("ADMIN_PASSWORD not set, write access disabled")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logger.Info("Starting stunden server",
					"port", cfg.Port,
					"backend", cfg.DataBackend,
					"quota_hours", cfg.QuotaHours)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				logger.Info("Shutdown signal received")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			if err := g.Wait(); err != nil {
				logger.Error("Server error", "error", err, "port", cfg.Port)
				os.Exit(1)
			}

			logger.Info("Server stopped gracefully")
			return nil
		},
	}
}
