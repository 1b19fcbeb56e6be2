package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stunden/internal/storage"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			loadEnvFile()
			logger := setupLogger("migrate")

			cfg, err := loadAndValidateConfig(logger.Logger)
			if err != nil {
				return err
			}
			if cfg.DataBackend != "sqlite" {
				return fmt.Errorf("migrate requires the sqlite backend, got %q", cfg.DataBackend)
			}

			if err := storage.RunMigrations(cfg.SQLiteDBPath); err != nil {
				logger.Error("Migration failed", "error", err, "path", cfg.SQLiteDBPath)
				return err
			}

			logger.Info("Migrations applied", "path", cfg.SQLiteDBPath)
			return nil
		},
	}
}
