package posts

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/0xi4o/cms-api/internal/store"
	"github.com/0xi4o/cms-api/pkg/handlers"
	"github.com/0xi4o/cms-api/pkg/routes"
)

// Handler provides HTTP endpoints for post retrieval.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a post handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "posts"),
	}
}

// Routes returns the post endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/posts",
		Description: "Blog post listing and retrieval",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{slug}", Handler: h.Find},
		},
	}
}

type listResponse struct {
	Posts []Post `json:"posts"`
}

type findResponse struct {
	Post *Post  `json:"post"`
	Slug string `json:"slug"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	handlers.NoCache(w)

	result, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, listResponse{Posts: result})
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingSlug)
		return
	}

	post, err := h.sys.Find(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			handlers.RespondJSON(w, http.StatusNotFound, handlers.Message{Message: "not_found"})
			return
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, findResponse{Post: post, Slug: slug})
}
