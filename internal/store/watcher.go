package store

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/0xi4o/cms-api/internal/schema"
)

// Watch observes the collection directories of a local content tree and
// invokes onChange when any entry file changes. It is paired with the
// filesystem backend to invalidate the entry cache during development;
// the GitHub backend relies on the cache TTL alone.
//
// Watch blocks until the context is canceled.
func Watch(ctx context.Context, root string, collections []schema.Collection, logger *slog.Logger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, collection := range collections {
		dir := filepath.Join(root, filepath.FromSlash(collection.Path))
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	logger.Info("watching content tree", "root", root)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("content change", "path", event.Name, "op", event.Op.String())
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}
