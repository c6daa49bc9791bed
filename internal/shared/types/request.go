package types

// CreateProjectRequest creates a new project.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Language    string `json:"language"`
}

// SaveFileRequest creates or updates a file within a project.
type SaveFileRequest struct {
	Path    string `json:"path" binding:"required"`
	Content string `json:"content"`
}

// CompletionRequest asks the AI service for a code completion.
type CompletionRequest struct {
	Prompt    string `json:"prompt" binding:"required"`
	Language  string `json:"language,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	MaxTokens int    `json:"max_tokens,omitempty"`
}

// WSMessage represents a WebSocket collaboration message.
type WSMessage struct {
	Type      string                 `json:"type"`
	ProjectID string                 `json:"project_id,omitempty"`
	UserID    string                 `json:"user_id,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}
