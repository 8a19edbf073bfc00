// Package store provides read access to the version-controlled content
// repository. Backends expose the same capability interface so resolvers
// and tests can swap the remote GitHub store for a local tree or an
// in-memory fixture.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/0xi4o/cms-api/internal/schema"
)

// EntryExt is the file extension of markup document entries.
const EntryExt = ".mdoc"

// Domain errors for store operations.
var (
	// ErrNotFound reports that a slug does not exist in its collection.
	// It is a normal outcome callers branch on, distinct from transport
	// failures which surface as wrapped errors.
	ErrNotFound = errors.New("entry not found")

	// ErrTooLarge reports that an entry file exceeds the configured size limit.
	ErrTooLarge = errors.New("entry file exceeds size limit")
)

// Entry is a single collection entry: decoded metadata fields plus,
// when resolved, the raw markup document body. Entries are owned by the
// store; callers never mutate them.
type Entry struct {
	Slug   string
	Fields map[string]any

	// Body holds the raw markup document. It is nil on listing fetches,
	// which deliberately skip body resolution.
	Body []byte
}

// Store is the content store capability.
type Store interface {
	// FetchOne returns the entry with the given slug, with its document
	// body resolved. Returns ErrNotFound when the slug does not exist.
	FetchOne(ctx context.Context, collection schema.Collection, slug string) (*Entry, error)

	// FetchAll returns every entry in the collection with metadata only;
	// document bodies are not resolved. Order follows the backing store.
	FetchAll(ctx context.Context, collection schema.Collection) ([]Entry, error)
}

// String returns the named field as a string. Date-typed values decode
// to their calendar form.
func (e *Entry) String(field string) string {
	switch v := e.Fields[field].(type) {
	case string:
		return v
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return ""
	}
}

// Bool returns the named field as a bool, false when absent.
func (e *Entry) Bool(field string) bool {
	v, _ := e.Fields[field].(bool)
	return v
}

// Strings returns the named field as a string slice, nil when absent.
func (e *Entry) Strings(field string) []string {
	items, ok := e.Fields[field].([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
