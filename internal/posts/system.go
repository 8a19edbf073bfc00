package posts

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/0xi4o/cms-api/internal/markdown"
	"github.com/0xi4o/cms-api/internal/schema"
	"github.com/0xi4o/cms-api/internal/store"
)

// System defines the post retrieval operations.
type System interface {
	// List returns all published posts; drafts are excluded. Document
	// bodies are not rendered on listings.
	List(ctx context.Context) ([]Post, error)

	// Find returns the post with the given slug with its content
	// rendered. Drafts are retrievable by direct slug; only listings
	// hide them, so preview links keep working.
	Find(ctx context.Context, slug string) (*Post, error)
}

type resolver struct {
	store      store.Store
	pipeline   *markdown.Pipeline
	collection schema.Collection
	logger     *slog.Logger
}

// New creates the post system over the content store and document pipeline.
func New(st store.Store, pipeline *markdown.Pipeline, logger *slog.Logger) System {
	return &resolver{
		store:      st,
		pipeline:   pipeline,
		collection: schema.Posts,
		logger:     logger.With("system", "posts"),
	}
}

func (r *resolver) List(ctx context.Context) ([]Post, error) {
	entries, err := r.store.FetchAll(ctx, r.collection)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	result := make([]Post, 0, len(entries))
	for i := range entries {
		post := fromEntry(&entries[i])
		if r.collection.HasDraft && post.Draft {
			continue
		}
		result = append(result, post)
	}

	r.logger.DebugContext(ctx, "listed posts", "total", len(entries), "published", len(result))
	return result, nil
}

func (r *resolver) Find(ctx context.Context, slug string) (*Post, error) {
	entry, err := r.store.FetchOne(ctx, r.collection, slug)
	if err != nil {
		return nil, fmt.Errorf("find post %q: %w", slug, err)
	}

	content, err := r.pipeline.Render(entry.Body, "collection", r.collection.Name, "slug", slug)
	if err != nil {
		return nil, err
	}

	post := fromEntry(entry)
	post.Content = content
	return &post, nil
}
