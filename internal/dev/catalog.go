package dev

import (
	"context"
	"log/slog"
	"time"

	"github.com/xferant/panel/internal/i18n"
)

// CatalogExtensions are the file types that trigger a catalog reload.
var CatalogExtensions = []string{".yaml", ".yml"}

// WatchCatalogs reloads store whenever a catalog under dir changes and, on
// success, asks connected pages to reload. A catalog that fails to load keeps
// the previous bundle active. The watcher stops when ctx is done; callers
// still Close it.
func WatchCatalogs(ctx context.Context, dir string, store *i18n.Store, lr *LiveReload, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	onChange := func(path string) {
		if err := store.Reload(); err != nil {
			logger.Error("Catalog reload failed, keeping previous catalogs", "path", path, "error", err)
			return
		}
		logger.Info("Catalogs reloaded", "path", path, "locales", store.Bundle().Locales())
		if lr != nil {
			lr.Reload(path)
		}
	}

	w, err := NewWatcher([]string{dir}, CatalogExtensions, debounce, onChange, logger)
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}
