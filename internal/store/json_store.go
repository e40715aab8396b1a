package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// StateFileName is the file JSONStore keeps its values in.
const StateFileName = "state.json"

// JSONStore implements KVStore using JSON file persistence.
type JSONStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]json.RawMessage
	dirty  bool
	logger *zap.Logger
}

// NewJSONStore creates a new JSON file-based store in configDir.
// An unreadable or corrupt state file is logged and treated as empty.
func NewJSONStore(configDir string, logger *zap.Logger) (*JSONStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	s := &JSONStore{
		path:   filepath.Join(configDir, StateFileName),
		values: make(map[string]json.RawMessage),
		logger: logger,
	}
	if err := s.load(); err != nil {
		logger.Warn("ignoring unreadable state file", zap.String("path", s.path), zap.Error(err))
		s.values = make(map[string]json.RawMessage)
	}
	return s, nil
}

// Path returns the state file location.
func (s *JSONStore) Path() string {
	return s.path
}

// load reads values from the JSON file. A missing file is not an error.
func (s *JSONStore) load() error {
	content, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(content) == 0 {
		return nil
	}
	values := make(map[string]json.RawMessage)
	if err := json.Unmarshal(content, &values); err != nil {
		return fmt.Errorf("decode %s: %w", StateFileName, err)
	}
	if values == nil {
		values = make(map[string]json.RawMessage)
	}
	s.values = values
	return nil
}

// save writes values to the JSON file atomically.
func (s *JSONStore) save() error {
	content, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename state: %w", err)
	}
	return nil
}

// Get returns a copy of the raw value stored under key.
func (s *JSONStore) Get(key string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.values[key]
	if !ok {
		return nil, false
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out, true
}

// Update stores value under key and persists the store.
// A failed write leaves the store dirty so Close can retry it.
func (s *JSONStore) Update(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = raw
	s.dirty = true
	if err := s.save(); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Close persists any pending changes.
func (s *JSONStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	if err := s.save(); err != nil {
		return err
	}
	s.dirty = false
	return nil
}
