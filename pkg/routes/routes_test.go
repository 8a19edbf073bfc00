package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/0xi4o/cms-api/pkg/routes"
)

func okHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestBuild_Route(t *testing.T) {
	sys := routes.New()
	sys.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: okHandler("ok"),
	})

	handler := sys.Build()

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("Unexpected body: %q", rec.Body.String())
	}
}

func TestBuild_MethodMatters(t *testing.T) {
	sys := routes.New()
	sys.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: okHandler("ok"),
	})

	handler := sys.Build()

	req := httptest.NewRequest("POST", "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rec.Code)
	}
}

func TestBuild_Group(t *testing.T) {
	sys := routes.New()
	sys.RegisterGroup(routes.Group{
		Prefix: "/posts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: okHandler("list")},
			{Method: "GET", Pattern: "/{slug}", Handler: okHandler("find")},
		},
	})

	handler := sys.Build()

	tests := []struct {
		path string
		body string
	}{
		{"/posts", "list"},
		{"/posts/hello", "find"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", rec.Code)
			}
			if rec.Body.String() != tt.body {
				t.Errorf("Expected body %q, got %q", tt.body, rec.Body.String())
			}
		})
	}
}

func TestBuild_NestedGroups(t *testing.T) {
	sys := routes.New()
	sys.RegisterGroup(routes.Group{
		Prefix: "/api",
		Children: []routes.Group{
			{
				Prefix: "/posts",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: okHandler("posts")},
				},
			},
			{
				Prefix: "/series",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/{slug}/{post}", Handler: okHandler("composite")},
				},
			},
		},
	})

	handler := sys.Build()

	tests := []struct {
		path string
		body string
	}{
		{"/api/posts", "posts"},
		{"/api/series/go-basics/part-one", "composite"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", rec.Code)
			}
			if rec.Body.String() != tt.body {
				t.Errorf("Expected body %q, got %q", tt.body, rec.Body.String())
			}
		})
	}
}

func TestGroupsAndRoutes_Accessors(t *testing.T) {
	sys := routes.New()
	sys.RegisterRoute(routes.Route{Method: "GET", Pattern: "/healthz", Handler: okHandler("ok")})
	sys.RegisterGroup(routes.Group{Prefix: "/api"})

	if len(sys.Routes()) != 1 {
		t.Errorf("Expected 1 route, got %d", len(sys.Routes()))
	}
	if len(sys.Groups()) != 1 {
		t.Errorf("Expected 1 group, got %d", len(sys.Groups()))
	}
}
