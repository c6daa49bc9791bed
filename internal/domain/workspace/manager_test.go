package workspace

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/monitoring"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/shared/types"
)

func TestCreateAndGetProject(t *testing.T) {
	m := NewManager()

	created, err := m.CreateProject(types.CreateProjectRequest{
		Name:        "editor",
		Description: "collaborative editor",
		Language:    "go",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, types.LanguageGo, created.Language)

	got, err := m.GetProject(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "editor", got.Name)
}

func TestCreateProjectValidation(t *testing.T) {
	m := NewManager()

	_, err := m.CreateProject(types.CreateProjectRequest{Name: ""})
	assert.Error(t, err)
}

func TestCreateProjectDefaultsLanguage(t *testing.T) {
	m := NewManager()

	p, err := m.CreateProject(types.CreateProjectRequest{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, types.LanguageOther, p.Language)
}

func TestGetProjectNotFound(t *testing.T) {
	m := NewManager()

	_, err := m.GetProject("missing")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestGetProjectReturnsCopy(t *testing.T) {
	m := NewManager()

	p, err := m.CreateProject(types.CreateProjectRequest{Name: "original"})
	require.NoError(t, err)

	got, err := m.GetProject(p.ID)
	require.NoError(t, err)
	got.Name = "mutated"

	fresh, err := m.GetProject(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", fresh.Name)
}

func TestDeleteProjectRemovesFiles(t *testing.T) {
	m := NewManager()

	p, err := m.CreateProject(types.CreateProjectRequest{Name: "p"})
	require.NoError(t, err)

	_, err = m.SaveFile(p.ID, types.SaveFileRequest{Path: "main.go", Content: "package main"})
	require.NoError(t, err)

	require.NoError(t, m.DeleteProject(p.ID))

	_, err = m.GetFile(p.ID, "main.go")
	assert.ErrorIs(t, err, ErrProjectNotFound)

	err = m.DeleteProject(p.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestSaveFileCreateAndUpdate(t *testing.T) {
	m := NewManager()

	p, err := m.CreateProject(types.CreateProjectRequest{Name: "p"})
	require.NoError(t, err)

	created, err := m.SaveFile(p.ID, types.SaveFileRequest{Path: "main.go", Content: "package main"})
	require.NoError(t, err)
	assert.Equal(t, len("package main"), created.Size)

	updated, err := m.SaveFile(p.ID, types.SaveFileRequest{Path: "main.go", Content: "package main\n\nfunc main() {}"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "updating keeps the file ID")

	files, err := m.ListFiles(p.ID)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestSaveFileRejectsUnsafePaths(t *testing.T) {
	m := NewManager()

	p, err := m.CreateProject(types.CreateProjectRequest{Name: "p"})
	require.NoError(t, err)

	for _, path := range []string{"/etc/passwd", "../secret", "a\x00b"} {
		_, err := m.SaveFile(p.ID, types.SaveFileRequest{Path: path, Content: "x"})
		assert.Error(t, err, path)
	}
}

func TestListFilesSorted(t *testing.T) {
	m := NewManager()

	p, err := m.CreateProject(types.CreateProjectRequest{Name: "p"})
	require.NoError(t, err)

	for _, path := range []string{"z.go", "a.go", "m.go"} {
		_, err := m.SaveFile(p.ID, types.SaveFileRequest{Path: path})
		require.NoError(t, err)
	}

	files, err := m.ListFiles(p.ID)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "a.go", files[0].Path)
	assert.Equal(t, "m.go", files[1].Path)
	assert.Equal(t, "z.go", files[2].Path)
}

func TestDeleteFile(t *testing.T) {
	m := NewManager()

	p, err := m.CreateProject(types.CreateProjectRequest{Name: "p"})
	require.NoError(t, err)

	_, err = m.SaveFile(p.ID, types.SaveFileRequest{Path: "main.go"})
	require.NoError(t, err)

	require.NoError(t, m.DeleteFile(p.ID, "main.go"))
	assert.ErrorIs(t, m.DeleteFile(p.ID, "main.go"), ErrFileNotFound)
}

func TestConcurrentAccess(t *testing.T) {
	m := NewManager()

	p, err := m.CreateProject(types.CreateProjectRequest{Name: "p"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = m.SaveFile(p.ID, types.SaveFileRequest{Path: "shared.go", Content: "package shared"})
				_, _ = m.GetFile(p.ID, "shared.go")
				_, _ = m.ListFiles(p.ID)
				m.ListProjects()
			}
		}()
	}
	wg.Wait()

	stats := m.Stats()
	assert.Equal(t, 1, stats.TotalProjects)
	assert.Equal(t, 1, stats.TotalFiles)
}

func TestManagerRecordsMetrics(t *testing.T) {
	registry := monitoring.New(monitoring.Config{Prefix: "myco_"})
	m := NewManager().WithMetrics(registry)

	p, err := m.CreateProject(types.CreateProjectRequest{Name: "p"})
	require.NoError(t, err)
	_, err = m.SaveFile(p.ID, types.SaveFileRequest{Path: "main.go"})
	require.NoError(t, err)

	snap := registry.Snapshot()

	foundDB, foundFile := false, false
	for _, c := range snap.Counters {
		switch c.Name {
		case "myco_db_operations_total":
			foundDB = true
		case "myco_file_operations_total":
			foundFile = true
		}
	}
	assert.True(t, foundDB, "expected db operation counter")
	assert.True(t, foundFile, "expected file operation counter")
}
