package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/logging"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/monitoring"
)

// Exposition serves the Prometheus text endpoint on its own listener,
// separate from the API server, so scrapes never compete with user traffic
// and never pass through the API middleware chain.
type Exposition struct {
	registry *monitoring.Registry
	logger   *logging.Logger
	srv      *http.Server
}

// NewExposition creates the exposition server for a registry. The bind port
// and endpoint path come from the registry's configuration.
func NewExposition(registry *monitoring.Registry, logger *logging.Logger) *Exposition {
	e := &Exposition{
		registry: registry,
		logger:   logger,
	}

	cfg := registry.Config()
	mux := http.NewServeMux()
	mux.HandleFunc(cfg.Path, e.handleMetrics)

	e.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return e
}

// Handler exposes the underlying handler for tests.
func (e *Exposition) Handler() http.Handler {
	return e.srv.Handler
}

// Start begins serving in a background goroutine.
func (e *Exposition) Start() {
	e.logger.Info("starting metrics exposition",
		zap.String("addr", e.srv.Addr),
		zap.String("path", e.registry.Config().Path),
	)

	go func() {
		if err := e.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			e.logger.Error("metrics exposition failed", zap.Error(err))
		}
	}()
}

// Shutdown stops the listener gracefully.
func (e *Exposition) Shutdown(ctx context.Context) error {
	return e.srv.Shutdown(ctx)
}

// handleMetrics renders the registry in Prometheus text format. Rendering is
// read-only; a failed render returns 500 and leaves the registry untouched.
func (e *Exposition) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	text, err := e.registry.PrometheusText()
	if err != nil {
		e.logger.Error("metrics render failed", zap.Error(err))
		http.Error(w, "metrics render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}
