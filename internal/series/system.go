package series

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/0xi4o/cms-api/internal/markdown"
	"github.com/0xi4o/cms-api/internal/posts"
	"github.com/0xi4o/cms-api/internal/schema"
	"github.com/0xi4o/cms-api/internal/store"
)

// System defines the series retrieval operations.
type System interface {
	// List returns all series with metadata only; excerpts are not
	// rendered on listings.
	List(ctx context.Context) ([]Series, error)

	// Find returns the series with the given slug with its excerpt
	// rendered.
	Find(ctx context.Context, slug string) (*Series, error)

	// FindWithPost returns the series together with the named post,
	// resolved through the collection the series' post relationship
	// declares. Both entries resolve independently: the endpoint does
	// not assert that the post actually belongs to the series, matching
	// the API's long-standing behavior. Resolution is sequential; the
	// post is only fetched once the series resolved.
	FindWithPost(ctx context.Context, slug, postSlug string) (*Series, *posts.Post, error)
}

type resolver struct {
	store    store.Store
	pipeline *markdown.Pipeline
	posts    posts.System
	logger   *slog.Logger
}

// New creates the series system. The post system must serve the
// collection the series' post relationship targets.
func New(st store.Store, pipeline *markdown.Pipeline, postSys posts.System, logger *slog.Logger) (System, error) {
	target, ok := schema.RelationshipTarget(schema.Series, "post")
	if !ok {
		return nil, fmt.Errorf("series schema declares no post relationship")
	}
	if target.Name != schema.Posts.Name {
		return nil, fmt.Errorf("series post relationship targets %s, expected %s", target.Name, schema.Posts.Name)
	}

	return &resolver{
		store:    st,
		pipeline: pipeline,
		posts:    postSys,
		logger:   logger.With("system", "series"),
	}, nil
}

func (r *resolver) List(ctx context.Context) ([]Series, error) {
	entries, err := r.store.FetchAll(ctx, schema.Series)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}

	result := make([]Series, 0, len(entries))
	for i := range entries {
		result = append(result, fromEntry(&entries[i]))
	}

	r.logger.DebugContext(ctx, "listed series", "total", len(result))
	return result, nil
}

func (r *resolver) Find(ctx context.Context, slug string) (*Series, error) {
	entry, err := r.store.FetchOne(ctx, schema.Series, slug)
	if err != nil {
		return nil, fmt.Errorf("find series %q: %w", slug, err)
	}

	excerpt, err := r.pipeline.Render(entry.Body, "collection", schema.Series.Name, "slug", slug)
	if err != nil {
		return nil, err
	}

	s := fromEntry(entry)
	s.Excerpt = excerpt
	return &s, nil
}

func (r *resolver) FindWithPost(ctx context.Context, slug, postSlug string) (*Series, *posts.Post, error) {
	s, err := r.Find(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	post, err := r.posts.Find(ctx, postSlug)
	if err != nil {
		return nil, nil, err
	}
	return s, post, nil
}
