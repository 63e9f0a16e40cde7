// Package backend selects the remote persistence backend from
// configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"ledger/internal/config"
	"ledger/internal/remote"
	"ledger/internal/remote/google"
	"ledger/internal/remote/memory"
	"ledger/internal/storage"
)

// Result bundles the selected backend with its cleanup hook.
type Result struct {
	Backend remote.Backend
	Cleanup func() error
}

// Create builds the remote backend named by cfg.DataBackend.
func Create(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.DataBackend {
	case "memory":
		logger.Info("Initialized memory backend")
		return &Result{Backend: memory.New()}, nil

	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Backend: repo, Cleanup: repo.Close}, nil

	case "sheets":
		cli, err := google.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
		}
		logger.Info("Initialized Google Sheets backend")
		return &Result{Backend: cli}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.DataBackend)
	}
}
