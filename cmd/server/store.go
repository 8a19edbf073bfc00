package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/0xi4o/cms-api/internal/config"
	"github.com/0xi4o/cms-api/internal/schema"
	"github.com/0xi4o/cms-api/internal/store"
)

// buildStore constructs the content store for the configured backend. For the
// filesystem backend it also returns a watch function that invalidates the
// cache when content files change; the github backend relies on TTL expiry
// alone and returns a nil watch function.
func buildStore(cfg *config.Config, logger *slog.Logger) (store.Store, func(ctx context.Context), error) {
	var (
		st  store.Store
		err error
	)

	switch cfg.Store.Backend {
	case config.StoreBackendGitHub:
		st, err = store.NewGitHub(&cfg.Store, logger)
	case config.StoreBackendFilesystem:
		st, err = store.NewFilesystem(&cfg.Store, logger)
	default:
		return nil, nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
	if err != nil {
		return nil, nil, err
	}

	ttl := cfg.Store.CacheTTLDuration()
	if ttl <= 0 {
		return st, nil, nil
	}

	cached := store.WithCache(st, ttl)

	var watch func(ctx context.Context)
	if cfg.Store.Backend == config.StoreBackendFilesystem {
		root := cfg.Store.ContentDir
		watch = func(ctx context.Context) {
			if err := store.Watch(ctx, root, schema.All(), logger, cached.Invalidate); err != nil {
				logger.Error("content watcher stopped", "error", err)
			}
		}
	}

	return cached, watch, nil
}
