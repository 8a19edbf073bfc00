package store

import (
	"context"
	"sync"
	"time"

	"github.com/0xi4o/cms-api/internal/schema"
)

// Cached decorates a Store with a TTL cache keyed by (collection, slug).
// It is behaviorally transparent: misses and expiries fall through to
// the underlying store, and ErrNotFound outcomes are never cached so a
// newly published entry appears as soon as the store has it.
type Cached struct {
	next Store
	ttl  time.Duration

	// now is replaceable in tests.
	now func() time.Time

	mu       sync.Mutex
	entries  map[string]cachedEntry
	listings map[string]cachedListing
}

type cachedEntry struct {
	entry   *Entry
	expires time.Time
}

type cachedListing struct {
	entries []Entry
	expires time.Time
}

// WithCache wraps next with a TTL cache. The TTL must be positive.
func WithCache(next Store, ttl time.Duration) *Cached {
	return &Cached{
		next:     next,
		ttl:      ttl,
		now:      time.Now,
		entries:  map[string]cachedEntry{},
		listings: map[string]cachedListing{},
	}
}

func (c *Cached) FetchOne(ctx context.Context, collection schema.Collection, slug string) (*Entry, error) {
	key := collection.Name + "/" + slug

	c.mu.Lock()
	if item, ok := c.entries[key]; ok && c.now().Before(item.expires) {
		c.mu.Unlock()
		return item.entry, nil
	}
	c.mu.Unlock()

	entry, err := c.next.FetchOne(ctx, collection, slug)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cachedEntry{entry: entry, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return entry, nil
}

func (c *Cached) FetchAll(ctx context.Context, collection schema.Collection) ([]Entry, error) {
	c.mu.Lock()
	if item, ok := c.listings[collection.Name]; ok && c.now().Before(item.expires) {
		c.mu.Unlock()
		return item.entries, nil
	}
	c.mu.Unlock()

	entries, err := c.next.FetchAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.listings[collection.Name] = cachedListing{entries: entries, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return entries, nil
}

// Invalidate drops every cached entry and listing.
func (c *Cached) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]cachedEntry{}
	c.listings = map[string]cachedListing{}
}
