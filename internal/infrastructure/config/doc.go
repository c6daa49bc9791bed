// Package config provides 12-factor configuration management for the
// platform backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP API server settings (port, host)
//   - Metrics: registry prefix and exposition listener settings
//   - AI: AI provider proxy settings
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting configuration
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - METRICS_PORT, METRICS_PATH, METRICS_PREFIX, METRICS_DEFAULT, METRICS_SAMPLE_INTERVAL
//   - AI_BASE_URL, AI_PROVIDER, AI_MODEL, AI_TIMEOUT
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
