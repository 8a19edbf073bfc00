package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/0xi4o/cms-api/internal/config"
	"github.com/0xi4o/cms-api/internal/schema"
	"github.com/0xi4o/cms-api/internal/store"
)

type fakeContentsAPI struct {
	files map[string]string

	lastAuth   string
	lastAccept string
}

func (api *fakeContentsAPI) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.lastAuth = r.Header.Get("Authorization")
		api.lastAccept = r.Header.Get("Accept")

		const prefix = "/repos/owner/repo/contents/"
		if !strings.HasPrefix(r.URL.Path, prefix) {
			t.Errorf("Unexpected request path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		path := strings.TrimPrefix(r.URL.Path, prefix)

		if content, ok := api.files[path]; ok {
			w.Write([]byte(content))
			return
		}

		// Directory listing.
		var listing []map[string]any
		for name, content := range api.files {
			if dir := name[:strings.LastIndex(name, "/")]; dir != path {
				continue
			}
			listing = append(listing, map[string]any{
				"name": name[strings.LastIndex(name, "/")+1:],
				"type": "file",
				"size": len(content),
			})
		}
		if len(listing) == 0 {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "Not Found"}`))
			return
		}
		json.NewEncoder(w).Encode(listing)
	})
}

func newGitHub(t *testing.T, baseURL string) store.Store {
	t.Helper()

	cfg := &config.StoreConfig{
		Backend:        config.StoreBackendGitHub,
		Owner:          "owner",
		Repo:           "repo",
		Branch:         "main",
		APIBaseURL:     baseURL,
		Token:          "test-token",
		RequestTimeout: "5s",
		MaxFileSize:    "1MB",
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Failed to finalize store config: %v", err)
	}

	st, err := store.NewGitHub(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewGitHub() failed: %v", err)
	}
	return st
}

func TestGitHub_FetchOne(t *testing.T) {
	api := &fakeContentsAPI{
		files: map[string]string{
			"src/content/posts/hello.mdoc": "---\ntitle: Hello\ndraft: false\n---\n# Hello\n",
		},
	}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	st := newGitHub(t, srv.URL)

	entry, err := st.FetchOne(context.Background(), schema.Posts, "hello")
	if err != nil {
		t.Fatalf("FetchOne() failed: %v", err)
	}

	if entry.String("title") != "Hello" {
		t.Errorf("Expected title %q, got %q", "Hello", entry.String("title"))
	}

	if string(entry.Body) != "# Hello\n" {
		t.Errorf("Unexpected body: %q", string(entry.Body))
	}

	if api.lastAuth != "Bearer test-token" {
		t.Errorf("Expected bearer token header, got %q", api.lastAuth)
	}

	if api.lastAccept != "application/vnd.github.raw+json" {
		t.Errorf("Expected raw accept header, got %q", api.lastAccept)
	}
}

func TestGitHub_FetchOne_NotFound(t *testing.T) {
	api := &fakeContentsAPI{files: map[string]string{}}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	st := newGitHub(t, srv.URL)

	_, err := st.FetchOne(context.Background(), schema.Posts, "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGitHub_FetchAll(t *testing.T) {
	api := &fakeContentsAPI{
		files: map[string]string{
			"src/content/posts/first.mdoc":  "---\ntitle: First\n---\nbody one\n",
			"src/content/posts/second.mdoc": "---\ntitle: Second\n---\nbody two\n",
		},
	}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	st := newGitHub(t, srv.URL)

	entries, err := st.FetchAll(context.Background(), schema.Posts)
	if err != nil {
		t.Fatalf("FetchAll() failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	for _, entry := range entries {
		if entry.Body != nil {
			t.Errorf("Expected nil body on listing fetch for %q", entry.Slug)
		}
		if entry.String("title") == "" {
			t.Errorf("Expected title on entry %q", entry.Slug)
		}
	}
}

func TestGitHub_FetchAll_SkipsNonEntries(t *testing.T) {
	api := &fakeContentsAPI{
		files: map[string]string{
			"src/content/posts/post.mdoc":  "---\ntitle: Post\n---\nbody\n",
			"src/content/posts/README.md":  "readme",
			"src/content/posts/notes.json": "{}",
		},
	}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	st := newGitHub(t, srv.URL)

	entries, err := st.FetchAll(context.Background(), schema.Posts)
	if err != nil {
		t.Fatalf("FetchAll() failed: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Slug != "post" {
		t.Errorf("Expected slug %q, got %q", "post", entries[0].Slug)
	}
}

func TestGitHub_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	st := newGitHub(t, srv.URL)

	_, err := st.FetchOne(context.Background(), schema.Posts, "hello")
	if err == nil {
		t.Fatal("Expected error for server failure")
	}
	if errors.Is(err, store.ErrNotFound) {
		t.Error("Server errors must not map to ErrNotFound")
	}
	if strings.Contains(err.Error(), "test-token") {
		t.Error("Error message must not contain the access token")
	}
}

func TestGitHub_RefQuery(t *testing.T) {
	var ref string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ref = r.URL.Query().Get("ref")
		w.Write([]byte("---\ntitle: Hello\n---\nbody\n"))
	}))
	defer srv.Close()

	st := newGitHub(t, srv.URL)

	if _, err := st.FetchOne(context.Background(), schema.Posts, "hello"); err != nil {
		t.Fatalf("FetchOne() failed: %v", err)
	}

	if ref != "main" {
		t.Errorf("Expected ref query %q, got %q", "main", ref)
	}
}
