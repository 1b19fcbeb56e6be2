// Package cli wires process startup: flags, environment, logging and
// the serve/migrate commands.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"stunden/internal/config"
	applog "stunden/internal/log"
)

// NewRootCommand builds the stunden command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stunden",
		Short: "Personal time-quota dashboard",
		Long:  "stunden records dated work entries and serves a dashboard of usage against a configured hour quota.",
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())

	return rootCmd
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogger initializes structured logging and sets it as default.
func setupLogger(component string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Component = component
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// loadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func loadEnvFile() {
	_ = godotenv.Load()
}

// loadAndValidateConfig loads configuration and validates it.
func loadAndValidateConfig(logger *slog.Logger) (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		return nil, err
	}
	return cfg, nil
}
