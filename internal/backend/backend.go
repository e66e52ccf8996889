// Package backend builds the persistence gateway the service runs on.
package backend

import (
	"fmt"
	"log/slog"

	"github.com/PCalderonpm/menu-escolar/internal/config"
	"github.com/PCalderonpm/menu-escolar/internal/menus"
	"github.com/PCalderonpm/menu-escolar/internal/menus/memory"
	"github.com/PCalderonpm/menu-escolar/internal/storage"
)

// CleanupFunc releases backend resources; may be nil.
type CleanupFunc func() error

// Result pairs a ready gateway with its cleanup.
type Result struct {
	Gateway menus.Gateway
	Cleanup CleanupFunc
}

// New selects and initializes the configured backend.
func New(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite repository: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Gateway: repo, Cleanup: repo.Close}, nil

	case "memory":
		logger.Info("Initialized memory backend")
		return &Result{Gateway: memory.New()}, nil

	default:
		return nil, fmt.Errorf("unsupported data backend: %s", cfg.DataBackend)
	}
}
