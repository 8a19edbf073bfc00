package main

import (
	"log/slog"

	"github.com/0xi4o/cms-api/internal/config"
	"github.com/0xi4o/cms-api/internal/middleware"
)

func buildMiddleware(logger *slog.Logger, cfg *config.Config) middleware.System {
	sys := middleware.New()
	sys.Use(middleware.Logger(logger))
	sys.Use(middleware.CORS(&cfg.CORS))
	sys.Use(middleware.TrimSlash())
	return sys
}
