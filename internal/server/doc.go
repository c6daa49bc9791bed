// Package server assembles the platform backend: the gin API server with its
// middleware chain, the workspace manager, the AI client, websocket
// collaboration, and the dedicated metrics exposition listener.
//
// Two listeners run side by side:
//   - API server on the configured server port (default 8000)
//   - Prometheus exposition on the metrics port (default 9090)
package server
