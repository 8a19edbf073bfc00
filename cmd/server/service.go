package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/0xi4o/cms-api/internal/booknotes"
	"github.com/0xi4o/cms-api/internal/config"
	"github.com/0xi4o/cms-api/internal/logger"
	"github.com/0xi4o/cms-api/internal/markdown"
	"github.com/0xi4o/cms-api/internal/posts"
	"github.com/0xi4o/cms-api/internal/series"
	"github.com/0xi4o/cms-api/internal/server"
	"github.com/0xi4o/cms-api/pkg/routes"
)

// Service coordinates the lifecycle of all subsystems.
type Service struct {
	ctx        context.Context
	cancel     context.CancelFunc
	shutdownWg sync.WaitGroup

	logger logger.System
	server server.System
	watch  func(ctx context.Context)
}

// NewService creates and initializes the service with all subsystems.
func NewService(cfg *config.Config) (*Service, error) {
	ctx, cancel := context.WithCancel(context.Background())

	loggerSys := logger.New(&cfg.Logging)
	log := loggerSys.Logger()

	st, watch, err := buildStore(cfg, log)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("store init failed: %w", err)
	}

	pipeline := markdown.NewPipeline(markdown.New(&cfg.Content), log)

	postSys := posts.New(st, pipeline, log)
	seriesSys, err := series.New(st, pipeline, postSys, log)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("series init failed: %w", err)
	}
	noteSys := booknotes.New(st, pipeline, log)

	routeSys := routes.New()
	registerRoutes(routeSys, postSys, seriesSys, noteSys, log)

	middlewareSys := buildMiddleware(log, cfg)
	handler := middlewareSys.Apply(routeSys.Build())

	serverSys := server.New(&cfg.Server, handler, log, cfg.ShutdownTimeoutDuration())

	log.Info("service initialized",
		"addr", cfg.Server.Addr(),
		"store", cfg.Store.Backend,
	)

	return &Service{
		ctx:    ctx,
		cancel: cancel,
		logger: loggerSys,
		server: serverSys,
		watch:  watch,
	}, nil
}

// Start begins all subsystems and returns when they are ready.
func (s *Service) Start() error {
	s.logger.Logger().Info("starting service")

	if s.watch != nil {
		go s.watch(s.ctx)
	}

	if err := s.server.Start(s.ctx, &s.shutdownWg); err != nil {
		return fmt.Errorf("server start failed: %w", err)
	}

	s.logger.Logger().Info("service started")
	return nil
}

// Shutdown gracefully stops all subsystems within the provided context deadline.
func (s *Service) Shutdown(ctx context.Context) error {
	s.logger.Logger().Info("initiating shutdown")

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.shutdownWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Logger().Info("all subsystems shut down successfully")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}
}
