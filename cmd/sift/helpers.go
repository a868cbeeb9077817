package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flowlytics/basket-sift/internal/model"
	"github.com/flowlytics/basket-sift/internal/service"
	"github.com/flowlytics/basket-sift/internal/storage"
	"github.com/spf13/viper"
)

// openStorage opens and migrates the run-history database configured via
// --db / storage.path, defaulting to $HOME/.local/share/sift/runs.db.
func openStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("storage.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "sift", "runs.db")
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate run history: %w", err)
	}
	return store, nil
}

func saveRun(ctx context.Context, run *model.Run) error {
	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}
