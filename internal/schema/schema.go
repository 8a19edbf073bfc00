// Package schema declares the collections of the content repository and
// their structural metadata: where entries live in the content tree,
// which field holds the markup document body, whether entries carry a
// draft flag, and which fields reference entries in other collections.
//
// The declarations mirror the content repository's editor configuration;
// they are static and shared by every store backend.
package schema

// Collection describes one content collection.
type Collection struct {
	// Name is the collection identifier used in store keys and cache keys.
	Name string

	// Path is the entry directory relative to the content repository root.
	Path string

	// DocumentField names the entry field holding the markup document body.
	DocumentField string

	// HasDraft reports whether entries carry a draft flag. Listings for
	// collections without one are returned unfiltered.
	HasDraft bool

	// Relationships maps relationship field names to the target
	// collection name the referenced slug belongs to.
	Relationships map[string]string
}

// The declared collections.
var (
	Posts = Collection{
		Name:          "posts",
		Path:          "src/content/posts",
		DocumentField: "content",
		HasDraft:      true,
		Relationships: map[string]string{
			"series": "series",
		},
	}

	BookNotes = Collection{
		Name:          "bookNotes",
		Path:          "src/content/book-notes",
		DocumentField: "content",
		HasDraft:      true,
	}

	Series = Collection{
		Name:          "series",
		Path:          "src/content/series",
		DocumentField: "excerpt",
		Relationships: map[string]string{
			"post": "posts",
		},
	}
)

var collections = map[string]Collection{
	Posts.Name:     Posts,
	BookNotes.Name: BookNotes,
	Series.Name:    Series,
}

// All returns every declared collection.
func All() []Collection {
	return []Collection{Posts, BookNotes, Series}
}

// Lookup returns the collection with the given name.
func Lookup(name string) (Collection, bool) {
	c, ok := collections[name]
	return c, ok
}

// RelationshipTarget resolves the target collection of the named
// relationship field on c.
func RelationshipTarget(c Collection, field string) (Collection, bool) {
	target, ok := c.Relationships[field]
	if !ok {
		return Collection{}, false
	}
	return Lookup(target)
}
