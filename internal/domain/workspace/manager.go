package workspace

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/monitoring"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/shared/types"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/shared/utils"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrFileNotFound    = errors.New("file not found")
)

// Manager orchestrates project and file lifecycle. All state is kept
// in-memory; callers always receive copies, never internal pointers.
type Manager struct {
	mu       sync.RWMutex
	projects map[string]*types.Project         // Protected by mu
	files    map[string]map[string]*types.File // project ID -> path -> file, protected by mu
	metrics  *monitoring.Registry
}

// NewManager creates a new workspace manager.
func NewManager() *Manager {
	return &Manager{
		projects: make(map[string]*types.Project),
		files:    make(map[string]map[string]*types.File),
	}
}

// WithMetrics adds metrics tracking to the manager.
func (m *Manager) WithMetrics(metrics *monitoring.Registry) *Manager {
	m.metrics = metrics
	return m
}

// CreateProject creates a new project.
func (m *Manager) CreateProject(req types.CreateProjectRequest) (*types.Project, error) {
	start := time.Now()

	if err := utils.ValidateName(req.Name, "name"); err != nil {
		m.recordDB("insert", "projects", start, err)
		return nil, err
	}
	if err := utils.ValidateDescription(req.Description, "description", false); err != nil {
		m.recordDB("insert", "projects", start, err)
		return nil, err
	}

	language := types.Language(req.Language)
	if language == "" {
		language = types.LanguageOther
	}

	now := time.Now()
	project := &types.Project{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Language:    language,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	m.mu.Lock()
	m.projects[project.ID] = project
	m.files[project.ID] = make(map[string]*types.File)
	m.mu.Unlock()

	m.recordDB("insert", "projects", start, nil)

	copied := *project
	return &copied, nil
}

// GetProject retrieves a project by ID.
func (m *Manager) GetProject(projectID string) (*types.Project, error) {
	start := time.Now()

	m.mu.RLock()
	project, exists := m.projects[projectID]
	m.mu.RUnlock()

	if !exists {
		err := fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
		m.recordDB("select", "projects", start, err)
		return nil, err
	}

	m.recordDB("select", "projects", start, nil)

	copied := *project
	return &copied, nil
}

// ListProjects returns all projects sorted by creation time, newest first.
func (m *Manager) ListProjects() []*types.Project {
	start := time.Now()

	m.mu.RLock()
	projects := make([]*types.Project, 0, len(m.projects))
	for _, p := range m.projects {
		copied := *p
		projects = append(projects, &copied)
	}
	m.mu.RUnlock()

	sort.Slice(projects, func(i, j int) bool {
		if projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].ID < projects[j].ID
		}
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})

	m.recordDB("select", "projects", start, nil)
	return projects
}

// DeleteProject removes a project and all its files.
func (m *Manager) DeleteProject(projectID string) error {
	start := time.Now()

	m.mu.Lock()
	_, exists := m.projects[projectID]
	if exists {
		delete(m.projects, projectID)
		delete(m.files, projectID)
	}
	m.mu.Unlock()

	if !exists {
		err := fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
		m.recordDB("delete", "projects", start, err)
		return err
	}

	m.recordDB("delete", "projects", start, nil)
	return nil
}

// SaveFile creates or updates a file within a project.
func (m *Manager) SaveFile(projectID string, req types.SaveFileRequest) (*types.File, error) {
	start := time.Now()

	if err := utils.ValidateFilePath(req.Path); err != nil {
		m.recordFile("write", start, err)
		return nil, err
	}
	if err := utils.ValidateFileContent(req.Content); err != nil {
		m.recordFile("write", start, err)
		return nil, err
	}

	m.mu.Lock()
	projectFiles, exists := m.files[projectID]
	if !exists {
		m.mu.Unlock()
		err := fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
		m.recordFile("write", start, err)
		return nil, err
	}

	now := time.Now()
	file, exists := projectFiles[req.Path]
	if exists {
		file.Content = req.Content
		file.Size = len(req.Content)
		file.UpdatedAt = now
	} else {
		file = &types.File{
			ID:        uuid.New().String(),
			ProjectID: projectID,
			Path:      req.Path,
			Content:   req.Content,
			Size:      len(req.Content),
			CreatedAt: now,
			UpdatedAt: now,
		}
		projectFiles[req.Path] = file
	}

	if project, ok := m.projects[projectID]; ok {
		project.UpdatedAt = now
	}

	copied := *file
	m.mu.Unlock()

	m.recordFile("write", start, nil)
	return &copied, nil
}

// GetFile retrieves a file by project and path.
func (m *Manager) GetFile(projectID, path string) (*types.File, error) {
	start := time.Now()

	m.mu.RLock()
	projectFiles, exists := m.files[projectID]
	if !exists {
		m.mu.RUnlock()
		err := fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
		m.recordFile("read", start, err)
		return nil, err
	}

	file, exists := projectFiles[path]
	if !exists {
		m.mu.RUnlock()
		err := fmt.Errorf("%w: %s", ErrFileNotFound, path)
		m.recordFile("read", start, err)
		return nil, err
	}

	copied := *file
	m.mu.RUnlock()

	m.recordFile("read", start, nil)
	return &copied, nil
}

// ListFiles returns all files in a project sorted by path.
func (m *Manager) ListFiles(projectID string) ([]*types.File, error) {
	start := time.Now()

	m.mu.RLock()
	projectFiles, exists := m.files[projectID]
	if !exists {
		m.mu.RUnlock()
		err := fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
		m.recordFile("list", start, err)
		return nil, err
	}

	files := make([]*types.File, 0, len(projectFiles))
	for _, f := range projectFiles {
		copied := *f
		files = append(files, &copied)
	}
	m.mu.RUnlock()

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	m.recordFile("list", start, nil)
	return files, nil
}

// DeleteFile removes a file from a project.
func (m *Manager) DeleteFile(projectID, path string) error {
	start := time.Now()

	m.mu.Lock()
	projectFiles, exists := m.files[projectID]
	if !exists {
		m.mu.Unlock()
		err := fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
		m.recordFile("delete", start, err)
		return err
	}

	_, exists = projectFiles[path]
	if exists {
		delete(projectFiles, path)
	}
	m.mu.Unlock()

	if !exists {
		err := fmt.Errorf("%w: %s", ErrFileNotFound, path)
		m.recordFile("delete", start, err)
		return err
	}

	m.recordFile("delete", start, nil)
	return nil
}

// Stats returns workspace statistics.
func (m *Manager) Stats() types.WorkspaceStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := 0
	for _, projectFiles := range m.files {
		total += len(projectFiles)
	}

	return types.WorkspaceStats{
		TotalProjects: len(m.projects),
		TotalFiles:    total,
	}
}

func (m *Manager) recordDB(operation, table string, start time.Time, err error) {
	if m.metrics == nil {
		return
	}
	m.metrics.RecordDatabaseOperation(operation, table, time.Since(start), err)
}

func (m *Manager) recordFile(operation string, start time.Time, err error) {
	if m.metrics == nil {
		return
	}
	m.metrics.RecordFileOperation(operation, time.Since(start), err)
}
