// Package booknotes provides retrieval and rendering of book note entries.
package booknotes

import (
	"github.com/0xi4o/cms-api/internal/markdown"
	"github.com/0xi4o/cms-api/internal/store"
)

// BookNote is a book note entry. Content is only populated on detail
// fetches, where the document body is resolved and rendered.
type BookNote struct {
	Slug          string         `json:"slug"`
	Title         string         `json:"title"`
	Author        string         `json:"author,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	DatePublished string         `json:"date_published,omitempty"`
	DateUpdated   string         `json:"date_updated,omitempty"`
	Draft         bool           `json:"draft"`
	Featured      bool           `json:"featured"`
	Content       *markdown.Node `json:"content,omitempty"`
}

func fromEntry(e *store.Entry) BookNote {
	return BookNote{
		Slug:          e.Slug,
		Title:         e.String("title"),
		Author:        e.String("author"),
		Tags:          e.Strings("tags"),
		DatePublished: e.String("date_published"),
		DateUpdated:   e.String("date_updated"),
		Draft:         e.Bool("draft"),
		Featured:      e.Bool("featured"),
	}
}
