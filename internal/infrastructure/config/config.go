package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Metrics   MetricsConfig
	AI        AIConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP API server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// MetricsConfig holds metrics registry and exposition configuration.
type MetricsConfig struct {
	Port                 int    `envconfig:"METRICS_PORT" default:"9090"`
	Path                 string `envconfig:"METRICS_PATH" default:"/metrics"`
	Prefix               string `envconfig:"METRICS_PREFIX" default:"myco_"`
	EnableDefaultMetrics bool   `envconfig:"METRICS_DEFAULT" default:"true"`
	SampleIntervalSec    int    `envconfig:"METRICS_SAMPLE_INTERVAL" default:"30"`
}

// AIConfig holds AI provider proxy configuration.
type AIConfig struct {
	BaseURL    string `envconfig:"AI_BASE_URL" default:"http://localhost:50052"`
	Provider   string `envconfig:"AI_PROVIDER" default:"anthropic"`
	Model      string `envconfig:"AI_MODEL" default:"default"`
	TimeoutSec int    `envconfig:"AI_TIMEOUT" default:"120"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Metrics: MetricsConfig{
			Port:                 9090,
			Path:                 "/metrics",
			Prefix:               "myco_",
			EnableDefaultMetrics: true,
			SampleIntervalSec:    30,
		},
		AI: AIConfig{
			BaseURL:    "http://localhost:50052",
			Provider:   "anthropic",
			Model:      "default",
			TimeoutSec: 120,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
