// Package ws provides WebSocket collaboration for workspace projects.
//
// Each project gets a room; connections in the same room receive each
// other's edit and cursor events. Connection lifecycle and message volume
// feed the metrics registry.
package ws
