package booknotes

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/0xi4o/cms-api/internal/markdown"
	"github.com/0xi4o/cms-api/internal/schema"
	"github.com/0xi4o/cms-api/internal/store"
)

// System defines the book note retrieval operations.
type System interface {
	// List returns all published book notes; drafts are excluded.
	List(ctx context.Context) ([]BookNote, error)

	// Find returns the book note with the given slug with its content
	// rendered. Drafts are retrievable by direct slug.
	Find(ctx context.Context, slug string) (*BookNote, error)
}

type resolver struct {
	store      store.Store
	pipeline   *markdown.Pipeline
	collection schema.Collection
	logger     *slog.Logger
}

// New creates the book note system over the content store and document pipeline.
func New(st store.Store, pipeline *markdown.Pipeline, logger *slog.Logger) System {
	return &resolver{
		store:      st,
		pipeline:   pipeline,
		collection: schema.BookNotes,
		logger:     logger.With("system", "booknotes"),
	}
}

func (r *resolver) List(ctx context.Context) ([]BookNote, error) {
	entries, err := r.store.FetchAll(ctx, r.collection)
	if err != nil {
		return nil, fmt.Errorf("list book notes: %w", err)
	}

	result := make([]BookNote, 0, len(entries))
	for i := range entries {
		note := fromEntry(&entries[i])
		if r.collection.HasDraft && note.Draft {
			continue
		}
		result = append(result, note)
	}

	r.logger.DebugContext(ctx, "listed book notes", "total", len(entries), "published", len(result))
	return result, nil
}

func (r *resolver) Find(ctx context.Context, slug string) (*BookNote, error) {
	entry, err := r.store.FetchOne(ctx, r.collection, slug)
	if err != nil {
		return nil, fmt.Errorf("find book note %q: %w", slug, err)
	}

	content, err := r.pipeline.Render(entry.Body, "collection", r.collection.Name, "slug", slug)
	if err != nil {
		return nil, err
	}

	note := fromEntry(entry)
	note.Content = content
	return &note, nil
}
