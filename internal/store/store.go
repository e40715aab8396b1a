// Package store provides data persistence abstractions for Start Board.
package store

import (
	"encoding/json"
	"errors"
)

var (
	// ErrProjectNotFound is returned when no project has the given id.
	ErrProjectNotFound = errors.New("project not found")
	// ErrDuplicatePath is returned when adding a project whose path is already registered.
	ErrDuplicatePath = errors.New("project path already registered")
)

// KVStore is a persistent key-value store holding JSON values.
type KVStore interface {
	// Get returns the raw value stored under key.
	Get(key string) (json.RawMessage, bool)
	// Update stores value under key. The new value is visible to Get
	// immediately, even when persisting it fails.
	Update(key string, value any) error
	// Close persists any pending changes.
	Close() error
}
