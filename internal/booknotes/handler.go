package booknotes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/0xi4o/cms-api/internal/store"
	"github.com/0xi4o/cms-api/pkg/handlers"
	"github.com/0xi4o/cms-api/pkg/routes"
)

// Handler provides HTTP endpoints for book note retrieval.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a book note handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "booknotes"),
	}
}

// Routes returns the book note endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/book-notes",
		Description: "Book note listing and retrieval",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{slug}", Handler: h.Find},
		},
	}
}

type listResponse struct {
	BookNotes []BookNote `json:"bookNotes"`
}

type findResponse struct {
	BookNote *BookNote `json:"bookNote"`
	Slug     string    `json:"slug"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	handlers.NoCache(w)

	result, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, listResponse{BookNotes: result})
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingSlug)
		return
	}

	note, err := h.sys.Find(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			handlers.RespondJSON(w, http.StatusNotFound, handlers.Message{Message: "not_found"})
			return
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, findResponse{BookNote: note, Slug: slug})
}
