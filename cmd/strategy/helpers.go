package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/app-strategy/internal/config"
	"github.com/Veraticus/app-strategy/internal/loader"
	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/Veraticus/app-strategy/internal/sheets"
	"github.com/Veraticus/app-strategy/internal/storage"
	"github.com/Veraticus/app-strategy/internal/tui/themes"
	"github.com/spf13/viper"
)

// loadConfig resolves the dashboard configuration from viper.
func loadConfig() (config.Dashboard, error) {
	return config.LoadDashboard(viper.GetViper())
}

// initStorage opens the snapshot database and applies migrations.
func initStorage(ctx context.Context, dbPath string) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadTable loads the configured source. Snapshot sources open the
// snapshot database only for the duration of the load.
func loadTable(ctx context.Context, cfg config.Dashboard) (*model.Table, error) {
	var snapshots loader.SnapshotSource
	if strings.HasPrefix(strings.TrimSpace(cfg.Source), model.SnapshotPrefix) {
		store, err := initStorage(ctx, cfg.SnapshotDB)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := store.Close(); err != nil {
				slog.Warn("Failed to close snapshot store", "error", err)
			}
		}()
		snapshots = store
	}

	return loader.New(snapshots).Load(ctx, cfg.Source)
}

// resolveTheme returns the theme file when one is configured, otherwise the
// named built-in theme.
func resolveTheme(cfg config.Dashboard) (themes.Theme, error) {
	if cfg.ThemeFile != "" {
		return themes.LoadFile(cfg.ThemeFile)
	}
	return themes.GetTheme(cfg.Theme)
}

// newPublisher returns a Sheets writer, or nil when no credentials are
// configured.
func newPublisher(ctx context.Context) (sheets.Publisher, error) {
	if !config.SheetsConfigured(viper.GetViper()) {
		return nil, nil
	}

	sheetsConfig, err := config.LoadSheetsConfig(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("invalid Google Sheets configuration: %w", err)
	}

	writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
	if err != nil {
		return nil, err
	}
	return writer, nil
}
