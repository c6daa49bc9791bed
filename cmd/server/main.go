package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/config"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/logging"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/server"
)

func main() {
	// Flags override environment configuration for local development.
	port := flag.String("port", "", "API server port")
	metricsPort := flag.Int("metrics-port", 0, "Metrics exposition port")
	aiURL := flag.String("ai", "", "AI service base URL")
	dev := flag.Bool("dev", false, "Development mode logging")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Metrics.Port = *metricsPort
	}
	if *aiURL != "" {
		cfg.AI.BaseURL = *aiURL
	}
	if *dev {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}

	logger := logging.NewFor(cfg.Logging.Level, cfg.Logging.Development)
	defer logger.Sync()

	logger.Info("starting platform backend",
		zap.String("port", cfg.Server.Port),
		zap.Int("metrics_port", cfg.Metrics.Port),
		zap.String("ai_url", cfg.AI.BaseURL),
	)

	srv := server.New(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}

	logger.Info("shutdown complete")
}
