package model

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Project is a bookmarked folder or workspace file.
type Project struct {
	// ID is the unique identifier for this project.
	ID string `json:"id"`
	// Name is the display label. Names are not unique.
	Name string `json:"name"`
	// Path is the filesystem path. At most one project exists per path.
	Path string `json:"path"`
	// Type tells whether Path is a folder or a workspace file.
	Type ProjectType `json:"type"`
	// AddedAt is when the project was added, in Unix milliseconds.
	AddedAt int64 `json:"addedAt"`
}

// ProjectInput holds the caller-supplied fields of a new project.
type ProjectInput struct {
	Name string
	Path string
	Type ProjectType
}

// NewProject creates a project from input with a generated UUID.
func NewProject(input ProjectInput, now time.Time) Project {
	return Project{
		ID:      uuid.New().String(),
		Name:    input.Name,
		Path:    input.Path,
		Type:    input.Type,
		AddedAt: now.UnixMilli(),
	}
}

// DisplayName returns the name to display in the UI.
// Falls back to path basename if name is empty.
func (p Project) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return filepath.Base(p.Path)
}

// IsWorkspace reports whether the project points at a workspace file.
func (p Project) IsWorkspace() bool {
	return p.Type == ProjectTypeWorkspace
}
