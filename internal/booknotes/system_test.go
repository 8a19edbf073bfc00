package booknotes_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/0xi4o/cms-api/internal/booknotes"
	"github.com/0xi4o/cms-api/internal/config"
	"github.com/0xi4o/cms-api/internal/markdown"
	"github.com/0xi4o/cms-api/internal/schema"
	"github.com/0xi4o/cms-api/internal/store"
)

// fakeStore serves entries from memory.
type fakeStore struct {
	entries map[string]*store.Entry
}

func (s *fakeStore) FetchOne(ctx context.Context, collection schema.Collection, slug string) (*store.Entry, error) {
	entry, ok := s.entries[slug]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", collection.Name, slug, store.ErrNotFound)
	}
	return entry, nil
}

func (s *fakeStore) FetchAll(ctx context.Context, collection schema.Collection) ([]store.Entry, error) {
	var entries []store.Entry
	for _, entry := range s.entries {
		listed := *entry
		listed.Body = nil
		entries = append(entries, listed)
	}
	return entries, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError + 1,
	}))
}

func newSystem(st store.Store) booknotes.System {
	engine := markdown.New(&config.ContentConfig{
		MaxHeadingDepth: 4,
		AllowedSchemes:  []string{"http", "https", "mailto"},
	})
	pipeline := markdown.NewPipeline(engine, testLogger())
	return booknotes.New(st, pipeline, testLogger())
}

func noteEntry(slug, title, author string, draft bool) *store.Entry {
	return &store.Entry{
		Slug: slug,
		Fields: map[string]any{
			"title":  title,
			"author": author,
			"draft":  draft,
		},
		Body: []byte("# Notes\n"),
	}
}

func TestList_FiltersDrafts(t *testing.T) {
	sys := newSystem(&fakeStore{entries: map[string]*store.Entry{
		"finished": noteEntry("finished", "Finished", "An Author", false),
		"reading":  noteEntry("reading", "Reading", "An Author", true),
	}})

	result, err := sys.List(context.Background())
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	if len(result) != 1 {
		t.Fatalf("Expected 1 book note, got %d", len(result))
	}
	if result[0].Slug != "finished" {
		t.Errorf("Expected slug %q, got %q", "finished", result[0].Slug)
	}
	if result[0].Content != nil {
		t.Error("Expected no rendered content on listings")
	}
}

func TestList_LogsCounts(t *testing.T) {
	st := &fakeStore{entries: map[string]*store.Entry{
		"finished": noteEntry("finished", "Finished", "An Author", false),
		"reading":  noteEntry("reading", "Reading", "An Author", true),
	}}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	engine := markdown.New(&config.ContentConfig{
		MaxHeadingDepth: 4,
		AllowedSchemes:  []string{"http", "https", "mailto"},
	})
	sys := booknotes.New(st, markdown.NewPipeline(engine, testLogger()), logger)

	if _, err := sys.List(context.Background()); err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "listed book notes") {
		t.Errorf("Expected listing log entry, got %q", out)
	}
	if !strings.Contains(out, "total=2") || !strings.Contains(out, "published=1") {
		t.Errorf("Expected entry counts in log output, got %q", out)
	}
}

func TestFind_RendersContent(t *testing.T) {
	sys := newSystem(&fakeStore{entries: map[string]*store.Entry{
		"clean-code": noteEntry("clean-code", "Clean Code", "Robert C. Martin", false),
	}})

	note, err := sys.Find(context.Background(), "clean-code")
	if err != nil {
		t.Fatalf("Find() failed: %v", err)
	}

	if note.Author != "Robert C. Martin" {
		t.Errorf("Expected author %q, got %q", "Robert C. Martin", note.Author)
	}
	if note.Content == nil || note.Content.Type != "document" {
		t.Errorf("Expected rendered content, got %v", note.Content)
	}
}

func TestFind_ReturnsDrafts(t *testing.T) {
	sys := newSystem(&fakeStore{entries: map[string]*store.Entry{
		"reading": noteEntry("reading", "Reading", "An Author", true),
	}})

	note, err := sys.Find(context.Background(), "reading")
	if err != nil {
		t.Fatalf("Find() failed: %v", err)
	}

	if !note.Draft {
		t.Error("Expected draft flag to be set")
	}
}

func TestFind_NotFound(t *testing.T) {
	sys := newSystem(&fakeStore{entries: map[string]*store.Entry{}})

	_, err := sys.Find(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("wrapped: %w", store.ErrNotFound), 404},
		{"missing slug", booknotes.ErrMissingSlug, 400},
		{"other", errors.New("boom"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := booknotes.MapHTTPStatus(tt.err); got != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, got)
			}
		})
	}
}
