package server

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/ai"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/api/middleware"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/domain/workspace"
	apihttp "github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/http"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/config"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/logging"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/monitoring"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/tracing"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/ws"
)

// Server wraps the HTTP API server and its dependencies.
type Server struct {
	router     *gin.Engine
	cfg        *config.Config
	logger     *logging.Logger
	metrics    *monitoring.Registry
	workspace  *workspace.Manager
	aiClient   *ai.Client
	exposition *Exposition
}

// New assembles the API server: domain managers, AI client, middleware chain
// and routes.
func New(cfg *config.Config, logger *logging.Logger) *Server {
	metrics := monitoring.New(monitoring.Config{
		Port:                 cfg.Metrics.Port,
		Path:                 cfg.Metrics.Path,
		Prefix:               cfg.Metrics.Prefix,
		EnableDefaultMetrics: cfg.Metrics.EnableDefaultMetrics,
	})

	workspaceManager := workspace.NewManager().WithMetrics(metrics)
	aiClient := ai.NewClient(cfg.AI).WithMetrics(metrics)
	tracer := tracing.New("backend", logger.Logger)

	if logging.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitFromConfig(cfg.RateLimit)))
	}
	router.Use(monitoring.Middleware(metrics))

	handlers := apihttp.NewHandlers(workspaceManager, aiClient, metrics)
	wsHandler := ws.NewHandler(workspaceManager, metrics, logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Workspace
	router.POST("/projects", handlers.CreateProject)
	router.GET("/projects", handlers.ListProjects)
	router.GET("/projects/:id", handlers.GetProject)
	router.DELETE("/projects/:id", handlers.DeleteProject)

	// Files
	router.PUT("/projects/:id/files", handlers.SaveFile)
	router.GET("/projects/:id/files", handlers.ListFiles)
	router.GET("/projects/:id/file", handlers.GetFile)
	router.DELETE("/projects/:id/file", handlers.DeleteFile)

	// AI operations
	router.POST("/ai/complete", handlers.Complete)

	// Metrics snapshot for dashboards
	router.GET("/metrics/json", handlers.MetricsJSON)

	// WebSocket collaboration
	router.GET("/projects/:id/collab", wsHandler.HandleConnection)

	return &Server{
		router:     router,
		cfg:        cfg,
		logger:     logger,
		metrics:    metrics,
		workspace:  workspaceManager,
		aiClient:   aiClient,
		exposition: NewExposition(metrics, logger),
	}
}

// Router exposes the assembled engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Metrics exposes the registry for tests and the system sampler.
func (s *Server) Metrics() *monitoring.Registry {
	return s.metrics
}

// Run starts the API server, the exposition listener and the periodic
// runtime sampler, and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.exposition.Start()

	interval := time.Duration(s.cfg.Metrics.SampleIntervalSec) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go s.sampleSystemMetrics(ctx, interval)

	addr := s.cfg.Server.Host + ":" + s.cfg.Server.Port
	s.logger.Info("starting API server", zap.String("addr", addr))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.router.Run(addr)
	}()

	select {
	case <-ctx.Done():
		return s.Close()
	case err := <-errCh:
		return err
	}
}

// Close shuts down the exposition listener.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.exposition.Shutdown(ctx)
}

// sampleSystemMetrics refreshes runtime gauges on a fixed interval. The
// registry itself never schedules sampling.
func (s *Server) sampleSystemMetrics(ctx context.Context, interval time.Duration) {
	s.metrics.RecordSystemMetrics()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.metrics.RecordSystemMetrics()
		}
	}
}
