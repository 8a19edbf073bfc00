package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/0xi4o/cms-api/internal/config"
	"github.com/0xi4o/cms-api/internal/schema"
)

const (
	acceptJSON = "application/vnd.github+json"
	acceptRaw  = "application/vnd.github.raw+json"
)

// github reads entries from a GitHub-hosted content repository through
// the repository contents API. Every fetch is a fresh read; requests
// carry the caller's context and are never retried.
type github struct {
	client      *http.Client
	base        string
	owner       string
	repo        string
	ref         string
	token       string
	maxFileSize int64
	logger      *slog.Logger
}

// NewGitHub creates a GitHub-backed content store.
func NewGitHub(cfg *config.StoreConfig, logger *slog.Logger) (Store, error) {
	if cfg.Owner == "" || cfg.Repo == "" {
		return nil, fmt.Errorf("github store requires owner and repo")
	}

	return &github{
		client:      &http.Client{Timeout: cfg.RequestTimeoutDuration()},
		base:        strings.TrimSuffix(cfg.APIBaseURL, "/"),
		owner:       cfg.Owner,
		repo:        cfg.Repo,
		ref:         cfg.Branch,
		token:       cfg.Token,
		maxFileSize: cfg.MaxFileSizeBytes(),
		logger:      logger.With("system", "store", "backend", "github"),
	}, nil
}

func (g *github) FetchOne(ctx context.Context, collection schema.Collection, slug string) (*Entry, error) {
	data, err := g.fetchFile(ctx, collection.Path+"/"+slug+EntryExt)
	if err != nil {
		return nil, err
	}
	return decodeEntry(slug, data, true)
}

func (g *github) FetchAll(ctx context.Context, collection schema.Collection) ([]Entry, error) {
	listing, err := g.fetchListing(ctx, collection.Path)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(listing))
	for _, item := range listing {
		if item.Type != "file" || !strings.HasSuffix(item.Name, EntryExt) {
			continue
		}
		if g.maxFileSize > 0 && item.Size > g.maxFileSize {
			g.logger.Warn("skipping oversized entry", "collection", collection.Name, "name", item.Name, "size", item.Size)
			continue
		}

		slug := strings.TrimSuffix(item.Name, EntryExt)
		data, err := g.fetchFile(ctx, collection.Path+"/"+item.Name)
		if err != nil {
			return nil, err
		}

		entry, err := decodeEntry(slug, data, false)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

type listingItem struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

func (g *github) fetchListing(ctx context.Context, path string) ([]listingItem, error) {
	res, err := g.get(ctx, path, acceptJSON)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, g.statusError(path, res.StatusCode)
	}

	var listing []listingItem
	if err := json.NewDecoder(res.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("github: decode listing %s: %w", path, err)
	}
	return listing, nil
}

func (g *github) fetchFile(ctx context.Context, path string) ([]byte, error) {
	res, err := g.get(ctx, path, acceptRaw)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, g.statusError(path, res.StatusCode)
	}

	limit := g.maxFileSize
	if limit <= 0 {
		limit = 1 << 20
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("github: read %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("github: %s: %w", path, ErrTooLarge)
	}
	return data, nil
}

func (g *github) get(ctx context.Context, path, accept string) (*http.Response, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s", g.base, g.owner, g.repo, path)
	if g.ref != "" {
		u += "?ref=" + url.QueryEscape(g.ref)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("github: build request %s: %w", path, err)
	}

	req.Header.Set("Accept", accept)
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	res, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: fetch %s: %w", path, err)
	}
	return res, nil
}

// statusError maps a non-200 contents API response to a domain error.
// Error strings carry the repository path and status only; credentials
// never appear in them.
func (g *github) statusError(path string, status int) error {
	if status == http.StatusNotFound {
		return fmt.Errorf("github: %s: %w", path, ErrNotFound)
	}
	return fmt.Errorf("github: fetch %s: status %d", path, status)
}
