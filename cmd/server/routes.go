package main

import (
	"log/slog"
	"net/http"

	"github.com/0xi4o/cms-api/internal/booknotes"
	"github.com/0xi4o/cms-api/internal/posts"
	"github.com/0xi4o/cms-api/internal/series"
	"github.com/0xi4o/cms-api/pkg/handlers"
	"github.com/0xi4o/cms-api/pkg/routes"
)

func registerRoutes(
	routeSys routes.System,
	postSys posts.System,
	seriesSys series.System,
	noteSys booknotes.System,
	logger *slog.Logger,
) {
	routeSys.RegisterGroup(routes.Group{
		Prefix:      "/api",
		Description: "Content API",
		Children: []routes.Group{
			posts.NewHandler(postSys, logger).Routes(),
			series.NewHandler(seriesSys, logger).Routes(),
			booknotes.NewHandler(noteSys, logger).Routes(),
		},
	})

	routeSys.RegisterRoute(routes.Route{
		Method:  http.MethodGet,
		Pattern: "/healthz",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		},
	})
}
