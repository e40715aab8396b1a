// Package notify sends desktop notifications.
package notify

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/gen2brain/beeep"
)

// maxMessageLen caps the notification body, in terminal cells.
const maxMessageLen = 800

// EventType represents a notification level.
type EventType string

const (
	EventInfo    EventType = "info"
	EventWarning EventType = "warning"
	EventError   EventType = "error"
)

// Event describes a notification.
type Event struct {
	Type    EventType
	Title   string
	Message string
}

// Config enables notification channels.
type Config struct {
	// Desktop shows toasts through the OS notification center.
	Desktop bool `koanf:"desktop" yaml:"desktop"`
}

// NotifyFunc shows one desktop notification.
type NotifyFunc func(title, message string, icon any) error

// Dispatcher sends notifications to configured channels.
type Dispatcher struct {
	notify NotifyFunc
	alert  NotifyFunc
}

// NewDispatcher creates a Dispatcher backed by beeep.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		notify: beeep.Notify,
		alert:  beeep.Alert,
	}
}

// NewDispatcherWith creates a Dispatcher using fn for every event. Used in tests.
func NewDispatcherWith(fn NotifyFunc) *Dispatcher {
	return &Dispatcher{notify: fn, alert: fn}
}

// Dispatch sends event using cfg. Errors alert with sound; other events are
// plain toasts.
func (d *Dispatcher) Dispatch(cfg Config, event Event) error {
	if !cfg.Desktop {
		return nil
	}

	title := strings.TrimSpace(event.Title)
	if title == "" {
		title = "Start Board"
	}
	message := strings.TrimSpace(event.Message)
	if message == "" {
		message = string(event.Type)
	}
	message = ansi.Truncate(message, maxMessageLen, "...")

	if event.Type == EventError {
		return d.alert(title, message, "")
	}
	return d.notify(title, message, "")
}
