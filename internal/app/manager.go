package app

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/lazyvibe/startboard/internal/event"
	"github.com/lazyvibe/startboard/internal/host"
	"github.com/lazyvibe/startboard/internal/model"
	"github.com/lazyvibe/startboard/internal/notify"
)

// Manager holds the live configuration and notifies on splash changes.
type Manager struct {
	dir    string
	logger *zap.Logger

	mu  sync.RWMutex
	cfg *Config

	changes event.Emitter[model.AsciiArtConfig]
}

// NewManager loads the configuration in dir.
func NewManager(dir string, logger *zap.Logger) (*Manager, error) {
	cfg, err := LoadConfig(dir)
	if err != nil {
		return nil, err
	}
	return NewManagerWith(dir, cfg, logger), nil
}

// NewManagerWith creates a Manager around an already loaded config.
func NewManagerWith(dir string, cfg *Config, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig(dir)
	}
	return &Manager{dir: dir, cfg: cfg, logger: logger}
}

// Dir returns the config directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Config returns a copy of the current configuration.
func (m *Manager) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg := *m.cfg
	cfg.RecentPaths = append([]string(nil), m.cfg.RecentPaths...)
	return cfg
}

// GetAsciiArtConfig returns the current splash configuration.
func (m *Manager) GetAsciiArtConfig() model.AsciiArtConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.AsciiArt
}

// OpenConfig returns how projects are opened.
func (m *Manager) OpenConfig() host.OpenConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.Open
}

// NotifyConfig returns the desktop notification settings.
func (m *Manager) NotifyConfig() notify.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.Notify
}

// OnConfigChange registers fn to receive the splash configuration after it
// changes.
func (m *Manager) OnConfigChange(fn func(model.AsciiArtConfig)) event.Subscription {
	return m.changes.Subscribe(fn)
}

// NotifyConfigChange sends the current splash configuration to every
// OnConfigChange handler.
func (m *Manager) NotifyConfigChange() {
	m.changes.Fire(m.GetAsciiArtConfig())
}

// Reload re-reads the configuration. On error the previous configuration
// stays in effect. Handlers are notified only when the splash section
// changed.
func (m *Manager) Reload() (bool, error) {
	cfg, err := LoadConfig(m.dir)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	changed := m.cfg.AsciiArt != cfg.AsciiArt
	m.cfg = cfg
	m.mu.Unlock()

	if changed {
		m.logger.Info("splash configuration changed")
		m.NotifyConfigChange()
	}
	return changed, nil
}

// Update applies fn to the configuration and saves it.
func (m *Manager) Update(fn func(*Config)) error {
	m.mu.Lock()
	next := *m.cfg
	next.RecentPaths = append([]string(nil), m.cfg.RecentPaths...)
	fn(&next)
	if err := SaveConfig(m.dir, &next); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("save config: %w", err)
	}
	changed := m.cfg.AsciiArt != next.AsciiArt
	m.cfg = &next
	m.mu.Unlock()

	if changed {
		m.NotifyConfigChange()
	}
	return nil
}
