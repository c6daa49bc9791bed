// Package http provides the REST API handlers for the platform backend.
//
// Endpoints:
//   - GET  /            Health check
//   - GET  /health      Detailed health with workspace stats and breaker state
//   - CRUD /projects    Project and file management
//   - POST /ai/complete AI code completion proxy
//   - GET  /metrics/json  Metrics snapshot for dashboards
package http
