package monitoring

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// The convenience recorders below are fixed mappings from business events to
// primitive calls, each with a documented label shape. Every name they
// register is prepended with the configured prefix.

// RecordAPICall records one completed HTTP request.
//
// Counter  api_requests_total{endpoint, method, status}  status bucketed "2xx"
// Histogram api_request_duration_seconds{endpoint, method}
// Counter  api_errors_total{endpoint, method, code}      exact code, >=400 only
//
// UUID path segments in endpoint collapse to ":id" so per-resource routes
// stay one series.
func (r *Registry) RecordAPICall(endpoint, method string, status int, duration time.Duration) {
	ep := NormalizeEndpoint(endpoint)

	r.IncCounter(r.prefixed("api_requests_total"), 1, Labels{
		"endpoint": ep,
		"method":   method,
		"status":   statusBucket(status),
	})
	r.Observe(r.prefixed("api_request_duration_seconds"), duration.Seconds(), Labels{
		"endpoint": ep,
		"method":   method,
	})
	if status >= 400 {
		r.IncCounter(r.prefixed("api_errors_total"), 1, Labels{
			"endpoint": ep,
			"method":   method,
			"code":     strconv.Itoa(status),
		})
	}
}

// RecordDatabaseOperation records one store operation.
//
// Counter  db_operations_total{operation, table, status}
// Histogram db_operation_duration_seconds{operation, table}
// Counter  db_errors_total{operation, table}  on failure only
func (r *Registry) RecordDatabaseOperation(operation, table string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	r.IncCounter(r.prefixed("db_operations_total"), 1, Labels{
		"operation": operation,
		"table":     table,
		"status":    status,
	})
	r.Observe(r.prefixed("db_operation_duration_seconds"), duration.Seconds(), Labels{
		"operation": operation,
		"table":     table,
	})
	if err != nil {
		r.IncCounter(r.prefixed("db_errors_total"), 1, Labels{
			"operation": operation,
			"table":     table,
		})
	}
}

// RecordFileOperation records one workspace file operation.
//
// Counter  file_operations_total{operation, status}
// Histogram file_operation_duration_seconds{operation}
func (r *Registry) RecordFileOperation(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	r.IncCounter(r.prefixed("file_operations_total"), 1, Labels{
		"operation": operation,
		"status":    status,
	})
	r.Observe(r.prefixed("file_operation_duration_seconds"), duration.Seconds(), Labels{
		"operation": operation,
	})
}

// RecordAIUsage records one AI provider round trip, including token spend.
//
// Counter  ai_requests_total{provider, model, status}
// Counter  ai_tokens_total{provider, model, type}  type is prompt|completion
// Histogram ai_request_duration_seconds{provider, model}
func (r *Registry) RecordAIUsage(provider, model string, promptTokens, completionTokens int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	r.IncCounter(r.prefixed("ai_requests_total"), 1, Labels{
		"provider": provider,
		"model":    model,
		"status":   status,
	})
	r.Observe(r.prefixed("ai_request_duration_seconds"), duration.Seconds(), Labels{
		"provider": provider,
		"model":    model,
	})
	if promptTokens > 0 {
		r.IncCounter(r.prefixed("ai_tokens_total"), float64(promptTokens), Labels{
			"provider": provider,
			"model":    model,
			"type":     "prompt",
		})
	}
	if completionTokens > 0 {
		r.IncCounter(r.prefixed("ai_tokens_total"), float64(completionTokens), Labels{
			"provider": provider,
			"model":    model,
			"type":     "completion",
		})
	}
}

// RecordUserAction counts a user-visible action by component.
func (r *Registry) RecordUserAction(action, component string) {
	r.IncCounter(r.prefixed("user_actions_total"), 1, Labels{
		"action":    action,
		"component": component,
	})
}

// RecordWSMessage counts a websocket message by direction ("in"/"out") and type.
func (r *Registry) RecordWSMessage(direction, msgType string) {
	r.IncCounter(r.prefixed("ws_messages_total"), 1, Labels{
		"direction": direction,
		"type":      msgType,
	})
}

// WSConnectionOpened bumps the live websocket connection gauge.
func (r *Registry) WSConnectionOpened() {
	r.IncGauge(r.prefixed("ws_connections"), 1, nil)
}

// WSConnectionClosed drops the live websocket connection gauge.
func (r *Registry) WSConnectionClosed() {
	r.DecGauge(r.prefixed("ws_connections"), 1, nil)
}

// NormalizeEndpoint replaces path segments that are UUIDs (8-4-4-4-12 hex)
// with a literal ":id" placeholder, collapsing per-resource endpoints into
// one series.
func NormalizeEndpoint(endpoint string) string {
	if !strings.Contains(endpoint, "-") {
		return endpoint
	}

	segments := strings.Split(endpoint, "/")
	changed := false
	for i, seg := range segments {
		if len(seg) != 36 {
			continue
		}
		if _, err := uuid.Parse(seg); err == nil {
			segments[i] = ":id"
			changed = true
		}
	}
	if !changed {
		return endpoint
	}
	return strings.Join(segments, "/")
}

// statusBucket collapses an HTTP status code to its hundreds digit: 404 -> "4xx".
func statusBucket(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return strconv.Itoa(status/100) + "xx"
}
