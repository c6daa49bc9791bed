// Package tracing provides lightweight request tracing over structured logs.
//
// Spans carry a trace ID, span ID and parent span ID. Completed spans are
// submitted to a buffered collector that writes them through zap; exporting
// to an external tracing backend is out of scope.
//
// Trace identity propagates over HTTP via the X-Trace-ID and X-Span-ID
// headers.
package tracing
