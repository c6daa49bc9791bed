package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/config"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/logging"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/monitoring"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/shared/types"
)

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.RateLimit.Enabled = false
	return New(cfg, logging.NewDefault())
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer()

	w := doJSON(t, s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestProjectLifecycle(t *testing.T) {
	s := newTestServer()

	w := doJSON(t, s, http.MethodPost, "/projects", types.CreateProjectRequest{
		Name:     "editor",
		Language: "go",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var project types.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))
	require.NotEmpty(t, project.ID)

	w = doJSON(t, s, http.MethodGet, "/projects/"+project.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodPut, "/projects/"+project.ID+"/files", types.SaveFileRequest{
		Path:    "main.go",
		Content: "package main",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/projects/"+project.ID+"/file?path=main.go", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var file types.File
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &file))
	assert.Equal(t, "package main", file.Content)

	w = doJSON(t, s, http.MethodDelete, "/projects/"+project.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/projects/"+project.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectValidationErrors(t *testing.T) {
	s := newTestServer()

	w := doJSON(t, s, http.MethodPost, "/projects", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s, http.MethodGet, "/projects/3fa85f64-5717-4562-b3fc-2c963f66afa6", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestsFeedRegistry(t *testing.T) {
	s := newTestServer()

	doJSON(t, s, http.MethodGet, "/health", nil)
	doJSON(t, s, http.MethodGet, "/projects/3fa85f64-5717-4562-b3fc-2c963f66afa6", nil)

	var sawHealth, sawNormalized bool
	for _, c := range s.Metrics().Snapshot().Counters {
		if c.Name != "myco_api_requests_total" {
			continue
		}
		switch c.Tags["endpoint"] {
		case "/health":
			sawHealth = true
		case "/projects/:id":
			sawNormalized = true
		}
	}
	assert.True(t, sawHealth, "health request should be counted")
	assert.True(t, sawNormalized, "UUID endpoint should collapse to :id")
}

func TestMetricsJSONEndpoint(t *testing.T) {
	s := newTestServer()

	doJSON(t, s, http.MethodGet, "/health", nil)

	w := doJSON(t, s, http.MethodGet, "/metrics/json", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var snap monitoring.MetricsSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.NotEmpty(t, snap.Counters)
}
