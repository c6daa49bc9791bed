/*
Package monitoring provides in-process metrics collection and aggregation.

# Overview

This package implements the platform's metric registry: thread-safe
counters, gauges and histograms dimensioned by label sets, with percentile
estimation over a bounded observation window and two export formats
(structured JSON and Prometheus text exposition).

# Features

- Counter/gauge/histogram primitives keyed by (name, label set)
- Bounded histogram windows (most recent 1000 observations per series)
- Nearest-rank p50/p95/p99 estimation
- Timer handles and operation timing wrappers
- Domain recorders for HTTP, store, file, AI and websocket events
- Runtime gauge sampling driven by a caller-owned ticker
- JSON snapshot and Prometheus 0.0.4 text rendering

# Usage

	registry := monitoring.New(monitoring.DefaultConfig())

	// Add middleware to the Gin router
	router.Use(monitoring.Middleware(registry))

	// Record custom metrics
	registry.IncCounter("cache_hits_total", 1, monitoring.Labels{"cache": "files"})
	registry.SetGauge("sessions_active", 12, nil)

	// Time operations
	handle := registry.StartTimer("save")
	// ... perform operation ...
	elapsed, err := registry.EndTimer(handle, "save_duration_seconds", nil)

# Exposition

The server layer exposes PrometheusText on a dedicated listener (default
:9090 /metrics) and Snapshot as JSON for internal callers. The registry
itself never listens and never self-schedules background work.
*/
package monitoring
