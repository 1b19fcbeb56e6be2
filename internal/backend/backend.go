package backend

import (
	"fmt"
	"log/slog"

	"stunden/internal/config"
	"stunden/internal/services"
	"stunden/internal/storage"
)

// BackendType selects the entry store implementation.
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

func (t BackendType) IsValid() bool {
	return t == SQLiteBackend || t == MemoryBackend
}

// CleanupFunc releases the resources a backend holds.
type CleanupFunc func() error

// Result carries the created store and its cleanup function.
type Result struct {
	Store   services.EntryStore
	Cleanup CleanupFunc
}

// New creates the entry store selected by the application config.
func New(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	backendType := BackendType(cfg.DataBackend)
	switch backendType {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("create sqlite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil
	case MemoryBackend:
		store := storage.NewMemoryRepository()
		logger.Info("Initialized memory backend")
		return &Result{Store: store, Cleanup: store.Close}, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.DataBackend)
	}
}
