package host

import (
	"context"
	"os"
)

// Severity is the level of a user-facing notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a message shown to the user, optionally offering actions.
type Notification struct {
	Severity Severity
	Message  string
	// Actions are button labels. Show returns the one the user picked.
	Actions []string
	// Modal blocks the window until the user answers.
	Modal bool
}

// Window presents notifications and dialogs.
type Window interface {
	// Show presents n and returns the chosen action, or "" when the user
	// dismissed it or no actions were offered.
	Show(ctx context.Context, n Notification) (string, error)
}

// FileSystem checks paths.
type FileSystem interface {
	Stat(path string) error
}

// OSFileSystem is the local filesystem.
type OSFileSystem struct{}

// Stat returns the error of os.Stat.
func (OSFileSystem) Stat(path string) error {
	_, err := os.Stat(path)
	return err
}
