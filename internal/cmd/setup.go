package cmd

import (
	"context"
	"fmt"

	"github.com/Iron-Ham/lazyfeed/internal/config"
	"github.com/Iron-Ham/lazyfeed/internal/feed"
	"github.com/Iron-Ham/lazyfeed/internal/logging"
)

// newLogger returns a file logger when logging is enabled and a no-op
// logger otherwise. Stderr belongs to the TUI, so there is no console mode.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(cfg.Logging.ResolveDir(), cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// openStore opens and migrates the configured feed store.
func openStore(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*feed.Store, error) {
	store, err := feed.Open(cfg.Feed.Driver, cfg.Feed.DSN, feed.WithStoreLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// seedIfEmpty fills an empty store with n generated items. It reports how
// many items were inserted.
func seedIfEmpty(ctx context.Context, store *feed.Store, n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	count, err := store.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	if err := store.Seed(ctx, n); err != nil {
		return 0, err
	}
	return n, nil
}
