package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lazyvibe/startboard/internal/model"
)

// ProjectsKey is the storage key holding the project collection.
const ProjectsKey = "startBoard.projects"

// ProjectStorage owns the persisted project collection.
//
// Paths are unique across the collection. Reads always return the
// collection in canonical order; writes append without sorting.
type ProjectStorage struct {
	mu     sync.Mutex
	kv     KVStore
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

// ProjectStorageOption configures a ProjectStorage.
type ProjectStorageOption func(*ProjectStorage)

// WithClock sets the time source used for AddedAt.
func WithClock(now func() time.Time) ProjectStorageOption {
	return func(s *ProjectStorage) { s.now = now }
}

// WithIDGenerator replaces the uuid generator used for new projects.
func WithIDGenerator(newID func() string) ProjectStorageOption {
	return func(s *ProjectStorage) { s.newID = newID }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) ProjectStorageOption {
	return func(s *ProjectStorage) { s.logger = logger }
}

// NewProjectStorage creates a ProjectStorage over kv.
func NewProjectStorage(kv KVStore, opts ...ProjectStorageOption) *ProjectStorage {
	s := &ProjectStorage{
		kv:     kv,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// raw returns the stored collection in stored order. A missing or
// non-array value is an empty collection. Elements that do not decode are
// skipped so the rest of the registry survives.
func (s *ProjectStorage) raw() []model.Project {
	data, ok := s.kv.Get(ProjectsKey)
	if !ok {
		return []model.Project{}
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		s.logger.Debug("stored projects are malformed, treating as empty", zap.Error(err))
		return []model.Project{}
	}

	projects := make([]model.Project, 0, len(elems))
	for i, elem := range elems {
		p, err := decodeProject(elem)
		if err != nil {
			s.logger.Warn("skipping malformed stored project", zap.Int("index", i), zap.Error(err))
			continue
		}
		projects = append(projects, p)
	}
	return projects
}

// storedProject is a Project as other writers may have stored it.
type storedProject struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Path    string            `json:"path"`
	Type    model.ProjectType `json:"type"`
	AddedAt json.Number       `json:"addedAt"`
}

// decodeProject decodes one stored element. A fractional addedAt is
// truncated to whole milliseconds.
func decodeProject(data json.RawMessage) (model.Project, error) {
	if string(data) == "null" {
		return model.Project{}, errors.New("null element")
	}
	var sp storedProject
	if err := json.Unmarshal(data, &sp); err != nil {
		return model.Project{}, err
	}

	var addedAt int64
	if sp.AddedAt != "" {
		n, err := sp.AddedAt.Int64()
		if err != nil {
			f, ferr := sp.AddedAt.Float64()
			if ferr != nil {
				return model.Project{}, fmt.Errorf("addedAt %q: %w", sp.AddedAt, ferr)
			}
			n = int64(f)
		}
		addedAt = n
	}

	return model.Project{
		ID:      sp.ID,
		Name:    sp.Name,
		Path:    sp.Path,
		Type:    sp.Type,
		AddedAt: addedAt,
	}, nil
}

func (s *ProjectStorage) persist(projects []model.Project) {
	// Update keeps the value in memory even when the write fails; the
	// store retries the write on Close.
	if err := s.kv.Update(ProjectsKey, projects); err != nil {
		s.logger.Warn("failed to persist projects", zap.Error(err))
	}
}

// GetProjects returns all projects sorted by name, then by AddedAt.
// The result is never nil.
func (s *ProjectStorage) GetProjects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.SortProjects(s.raw())
}

// Project returns the project with the given id.
func (s *ProjectStorage) Project(id string) (model.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.raw() {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

// HasProject reports whether a project with exactly this path exists.
func (s *ProjectStorage) HasProject(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return hasPath(s.raw(), path)
}

func hasPath(projects []model.Project, path string) bool {
	for _, p := range projects {
		if p.Path == path {
			return true
		}
	}
	return false
}

// AddProject registers a new project. It returns ErrDuplicatePath, and
// changes nothing, when the path is already registered.
func (s *ProjectStorage) AddProject(input model.ProjectInput) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := s.raw()
	if hasPath(projects, input.Path) {
		return model.Project{}, ErrDuplicatePath
	}

	p := model.NewProject(input, s.now())
	if s.newID != nil {
		p.ID = s.newID()
	}
	s.persist(append(projects, p))

	s.logger.Debug("project added", zap.String("id", p.ID), zap.String("path", p.Path))
	return p, nil
}

// RemoveProject deletes the project with the given id. It returns
// ErrProjectNotFound, and changes nothing, when no such project exists.
func (s *ProjectStorage) RemoveProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := s.raw()
	for i := range projects {
		if projects[i].ID == id {
			remaining := append(projects[:i:i], projects[i+1:]...)
			s.persist(remaining)
			s.logger.Debug("project removed", zap.String("id", id))
			return nil
		}
	}
	return ErrProjectNotFound
}
