// Package posts provides retrieval and rendering of blog post entries.
package posts

import (
	"github.com/0xi4o/cms-api/internal/markdown"
	"github.com/0xi4o/cms-api/internal/store"
)

// Post is a blog post entry. Content is only populated on detail
// fetches, where the document body is resolved and rendered.
type Post struct {
	Slug          string         `json:"slug"`
	Title         string         `json:"title"`
	Excerpt       string         `json:"excerpt,omitempty"`
	Series        string         `json:"series,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	DatePublished string         `json:"date_published,omitempty"`
	DateUpdated   string         `json:"date_updated,omitempty"`
	Draft         bool           `json:"draft"`
	Featured      bool           `json:"featured"`
	Content       *markdown.Node `json:"content,omitempty"`
}

func fromEntry(e *store.Entry) Post {
	return Post{
		Slug:          e.Slug,
		Title:         e.String("title"),
		Excerpt:       e.String("excerpt"),
		Series:        e.String("series"),
		Tags:          e.Strings("tags"),
		DatePublished: e.String("date_published"),
		DateUpdated:   e.String("date_updated"),
		Draft:         e.Bool("draft"),
		Featured:      e.Bool("featured"),
	}
}
