package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/ai"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/domain/workspace"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/monitoring"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/resilience"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/shared/types"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/shared/utils"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	workspace *workspace.Manager
	aiClient  *ai.Client
	metrics   *monitoring.Registry
}

// NewHandlers creates a new handler set.
func NewHandlers(ws *workspace.Manager, aiClient *ai.Client, metrics *monitoring.Registry) *Handlers {
	return &Handlers{
		workspace: ws,
		aiClient:  aiClient,
		metrics:   metrics,
	}
}

// Root handles health check.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "MyCo Dev Platform (Go)",
		"version": "0.1.0",
	})
}

// Health handles detailed health check.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"workspace":      h.workspace.Stats(),
		"ai_service":     gin.H{"breaker": h.aiClient.BreakerState()},
		"uptime_seconds": h.metrics.UptimeSeconds(),
	})
}

// CreateProject creates a new project.
func (h *Handlers) CreateProject(c *gin.Context) {
	var req types.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.workspace.CreateProject(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.metrics.RecordUserAction("create_project", "workspace")
	c.JSON(http.StatusCreated, project)
}

// ListProjects lists all projects.
func (h *Handlers) ListProjects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"projects": h.workspace.ListProjects(),
		"stats":    h.workspace.Stats(),
	})
}

// GetProject retrieves a project by ID.
func (h *Handlers) GetProject(c *gin.Context) {
	project, err := h.workspace.GetProject(c.Param("id"))
	if err != nil {
		respondNotFound(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProject removes a project and its files.
func (h *Handlers) DeleteProject(c *gin.Context) {
	if err := h.workspace.DeleteProject(c.Param("id")); err != nil {
		respondNotFound(c, err)
		return
	}

	h.metrics.RecordUserAction("delete_project", "workspace")
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// SaveFile creates or updates a file within a project.
func (h *Handlers) SaveFile(c *gin.Context) {
	var req types.SaveFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := h.workspace.SaveFile(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, workspace.ErrProjectNotFound) {
			respondNotFound(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.metrics.RecordUserAction("save_file", "editor")
	c.JSON(http.StatusOK, file)
}

// ListFiles lists all files in a project.
func (h *Handlers) ListFiles(c *gin.Context) {
	files, err := h.workspace.ListFiles(c.Param("id"))
	if err != nil {
		respondNotFound(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// GetFile retrieves a file by project and path.
func (h *Handlers) GetFile(c *gin.Context) {
	path := c.Query("path")
	if err := utils.ValidateFilePath(path); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := h.workspace.GetFile(c.Param("id"), path)
	if err != nil {
		respondNotFound(c, err)
		return
	}
	c.JSON(http.StatusOK, file)
}

// DeleteFile removes a file from a project.
func (h *Handlers) DeleteFile(c *gin.Context) {
	path := c.Query("path")
	if err := utils.ValidateFilePath(path); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.workspace.DeleteFile(c.Param("id"), path); err != nil {
		respondNotFound(c, err)
		return
	}

	h.metrics.RecordUserAction("delete_file", "editor")
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// Complete proxies an AI completion request.
func (h *Handlers) Complete(c *gin.Context) {
	var req types.CompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidatePrompt(req.Prompt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.aiClient.Complete(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai service unavailable"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	h.metrics.RecordUserAction("ai_complete", "editor")
	c.JSON(http.StatusOK, resp)
}

// MetricsJSON serves the registry snapshot as JSON for dashboards.
func (h *Handlers) MetricsJSON(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}

func respondNotFound(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workspace.ErrProjectNotFound), errors.Is(err, workspace.ErrFileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
