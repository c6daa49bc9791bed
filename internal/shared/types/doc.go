// Package types provides shared data structures for the platform backend.
//
// Core Types:
//   - Project: Collaborative workspace project
//   - File: Source file within a project
//   - WorkspaceStats: Workspace statistics
//
// Request Types:
//   - CreateProjectRequest, SaveFileRequest: Workspace operations
//   - CompletionRequest: AI interaction
//   - WSMessage: WebSocket communication
package types
