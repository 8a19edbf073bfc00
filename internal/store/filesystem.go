package store

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xi4o/cms-api/internal/config"
	"github.com/0xi4o/cms-api/internal/schema"
)

// filesystem reads entries from a local checkout of the content
// repository. It serves local development, where the remote store's
// GitHub round-trips are pure overhead.
type filesystem struct {
	root        string
	maxFileSize int64
	logger      *slog.Logger
}

// NewFilesystem creates a content store over a local content tree.
func NewFilesystem(cfg *config.StoreConfig, logger *slog.Logger) (Store, error) {
	if cfg.ContentDir == "" {
		return nil, fmt.Errorf("filesystem store requires content_dir")
	}

	root, err := filepath.Abs(cfg.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("resolve content_dir: %w", err)
	}

	return &filesystem{
		root:        root,
		maxFileSize: cfg.MaxFileSizeBytes(),
		logger:      logger.With("system", "store", "backend", "filesystem"),
	}, nil
}

func (f *filesystem) FetchOne(ctx context.Context, collection schema.Collection, slug string) (*Entry, error) {
	path, err := f.entryPath(collection, slug+EntryExt)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s/%s: %w", collection.Name, slug, ErrNotFound)
		}
		return nil, fmt.Errorf("read entry %s/%s: %w", collection.Name, slug, err)
	}
	if f.maxFileSize > 0 && int64(len(data)) > f.maxFileSize {
		return nil, fmt.Errorf("%s/%s: %w", collection.Name, slug, ErrTooLarge)
	}

	return decodeEntry(slug, data, true)
}

func (f *filesystem) FetchAll(ctx context.Context, collection schema.Collection) ([]Entry, error) {
	dir := filepath.Join(f.root, filepath.FromSlash(collection.Path))

	items, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("collection %s: %w", collection.Name, ErrNotFound)
		}
		return nil, fmt.Errorf("list collection %s: %w", collection.Name, err)
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		if item.IsDir() || !strings.HasSuffix(item.Name(), EntryExt) {
			continue
		}
		if info, err := item.Info(); err == nil && f.maxFileSize > 0 && info.Size() > f.maxFileSize {
			f.logger.Warn("skipping oversized entry", "collection", collection.Name, "name", item.Name(), "size", info.Size())
			continue
		}

		slug := strings.TrimSuffix(item.Name(), EntryExt)
		data, err := os.ReadFile(filepath.Join(dir, item.Name()))
		if err != nil {
			return nil, fmt.Errorf("read entry %s/%s: %w", collection.Name, slug, err)
		}

		entry, err := decodeEntry(slug, data, false)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// entryPath joins the collection path and file name under the root,
// rejecting names that escape the content tree.
func (f *filesystem) entryPath(collection schema.Collection, name string) (string, error) {
	if strings.Contains(name, "/") || strings.Contains(name, "\\") || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid entry name %q: %w", name, fs.ErrInvalid)
	}
	return filepath.Join(f.root, filepath.FromSlash(collection.Path), name), nil
}
