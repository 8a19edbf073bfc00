package series

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/0xi4o/cms-api/internal/posts"
	"github.com/0xi4o/cms-api/internal/store"
	"github.com/0xi4o/cms-api/pkg/handlers"
	"github.com/0xi4o/cms-api/pkg/routes"
)

// Handler provides HTTP endpoints for series retrieval.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a series handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "series"),
	}
}

// Routes returns the series endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/series",
		Description: "Series listing and retrieval, including the series' related post",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{slug}", Handler: h.Find},
			{Method: "GET", Pattern: "/{slug}/{post}", Handler: h.FindWithPost},
		},
	}
}

type listResponse struct {
	Series []Series `json:"series"`
}

type findResponse struct {
	Series *Series `json:"series"`
	Slug   string  `json:"slug"`
}

type findWithPostResponse struct {
	Post   *posts.Post `json:"post"`
	Series *Series     `json:"series"`
	Slug   string      `json:"slug"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	handlers.NoCache(w)

	result, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, listResponse{Series: result})
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingSlug)
		return
	}

	s, err := h.sys.Find(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			handlers.RespondJSON(w, http.StatusNotFound, handlers.Message{Message: "not_found"})
			return
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, findResponse{Series: s, Slug: slug})
}

func (h *Handler) FindWithPost(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingSlug)
		return
	}
	postSlug := r.PathValue("post")
	if postSlug == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingPost)
		return
	}

	s, post, err := h.sys.FindWithPost(r.Context(), slug, postSlug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			handlers.RespondJSON(w, http.StatusNotFound, handlers.Message{Message: "not_found"})
			return
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, findWithPostResponse{
		Post:   post,
		Series: s,
		Slug:   slug,
	})
}
