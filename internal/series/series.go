// Package series provides retrieval and rendering of post series entries,
// including resolution of a series' related post.
package series

import (
	"github.com/0xi4o/cms-api/internal/markdown"
	"github.com/0xi4o/cms-api/internal/store"
)

// Series is a post series entry. Its document body is the excerpt,
// populated rendered on detail fetches only. Series carry no draft
// flag, so listings are returned unfiltered.
type Series struct {
	Slug          string         `json:"slug"`
	Title         string         `json:"title"`
	Tags          []string       `json:"tags,omitempty"`
	DatePublished string         `json:"date_published,omitempty"`
	DateUpdated   string         `json:"date_updated,omitempty"`
	Status        string         `json:"status,omitempty"`
	Excerpt       *markdown.Node `json:"excerpt,omitempty"`
}

func fromEntry(e *store.Entry) Series {
	return Series{
		Slug:          e.Slug,
		Title:         e.String("title"),
		Tags:          e.Strings("tags"),
		DatePublished: e.String("date_published"),
		DateUpdated:   e.String("date_updated"),
		Status:        e.String("status"),
	}
}
