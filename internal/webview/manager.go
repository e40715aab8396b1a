// Package webview manages the lifecycle of the single dashboard panel.
package webview

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/lazyvibe/startboard/internal/event"
	"github.com/lazyvibe/startboard/internal/protocol"
)

// Dashboard panel identity.
const (
	ViewType = "startBoard.dashboard"
	Title    = "Start Board"
)

// State tells whether the manager currently owns a panel.
type State int

const (
	StateNoPanel State = iota
	StatePanelOpen
)

func (s State) String() string {
	switch s {
	case StateNoPanel:
		return "no-panel"
	case StatePanelOpen:
		return "panel-open"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options describe the panel to create.
type Options struct {
	ViewType string
	Title    string
	// RetainContextWhenHidden keeps panel state while it is not visible.
	RetainContextWhenHidden bool
}

// DefaultOptions returns the options used for the dashboard panel.
func DefaultOptions() Options {
	return Options{
		ViewType:                ViewType,
		Title:                   Title,
		RetainContextWhenHidden: true,
	}
}

// Panel is one live instance of the dashboard surface.
//
// OnDispose handlers registered after the panel has been disposed are called
// immediately. Dispose may be called more than once.
type Panel interface {
	// Load installs the dashboard content. The panel emits Ready once loaded.
	Load(ctx context.Context) error
	// Post delivers a message to the panel. Messages arrive in call order.
	Post(msg protocol.Outbound) error
	// Reveal brings the panel to the front.
	Reveal()
	// Dispose closes the panel.
	Dispose()
	// Visible reports whether the user can currently see the panel.
	Visible() bool
	OnMessage(fn func(protocol.Inbound)) event.Subscription
	OnDispose(fn func()) event.Subscription
}

// Host creates panels.
type Host interface {
	CreatePanel(ctx context.Context, opts Options) (Panel, error)
}

// Manager owns at most one dashboard panel.
type Manager struct {
	host   Host
	opts   Options
	logger *zap.Logger

	// createMu serializes ShowDashboard so concurrent calls never create
	// two panels.
	createMu sync.Mutex

	mu     sync.Mutex
	state  State
	panel  Panel
	relays event.Subscription

	messages event.Emitter[protocol.Inbound]
	disposed event.Emitter[struct{}]
}

// NewManager creates a Manager that creates panels through host.
func NewManager(host Host, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		host:   host,
		opts:   DefaultOptions(),
		logger: logger,
	}
}

// ShowDashboard reveals the open panel, or creates one.
func (m *Manager) ShowDashboard(ctx context.Context) error {
	m.createMu.Lock()
	defer m.createMu.Unlock()

	m.mu.Lock()
	existing := m.panel
	m.mu.Unlock()
	if existing != nil {
		existing.Reveal()
		return nil
	}

	p, err := m.host.CreatePanel(ctx, m.opts)
	if err != nil {
		return fmt.Errorf("create panel: %w", err)
	}

	m.mu.Lock()
	m.panel = p
	m.state = StatePanelOpen
	m.mu.Unlock()

	// Relays go in before Load so the panel's Ready reaches subscribers.
	relays := event.Join(
		p.OnMessage(m.messages.Fire),
		p.OnDispose(func() { m.teardown(p) }),
	)
	m.mu.Lock()
	if m.panel == p {
		m.relays = relays
		relays = nil
	}
	m.mu.Unlock()
	if relays != nil {
		// The panel went away while the relays were being wired.
		relays.Dispose()
		return nil
	}

	if err := p.Load(ctx); err != nil {
		p.Dispose()
		m.teardown(p)
		return fmt.Errorf("load panel: %w", err)
	}
	m.logger.Debug("dashboard shown")
	return nil
}

// teardown releases p if it is still the current panel. Signals from a
// stale panel or repeated signals are ignored.
func (m *Manager) teardown(p Panel) {
	m.mu.Lock()
	if m.panel == nil || m.panel != p {
		m.mu.Unlock()
		return
	}
	relays := m.relays
	m.panel = nil
	m.relays = nil
	m.state = StateNoPanel
	m.mu.Unlock()

	if relays != nil {
		relays.Dispose()
	}
	m.logger.Debug("dashboard disposed")
	m.disposed.Fire(struct{}{})
}

// HideDashboard disposes the open panel, if any.
func (m *Manager) HideDashboard() {
	m.mu.Lock()
	p := m.panel
	m.mu.Unlock()
	if p == nil {
		return
	}
	p.Dispose()
	m.teardown(p)
}

// State returns whether a panel is open.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsVisible reports whether a panel is open and visible to the user.
func (m *Manager) IsVisible() bool {
	m.mu.Lock()
	p := m.panel
	m.mu.Unlock()
	return p != nil && p.Visible()
}

// SendMessage delivers msg to the open panel. Without a panel the message
// is dropped.
func (m *Manager) SendMessage(msg protocol.Outbound) {
	m.mu.Lock()
	p := m.panel
	m.mu.Unlock()
	if p == nil {
		m.logger.Debug("dropping message, no panel", zap.String("type", msg.Type()))
		return
	}
	if err := p.Post(msg); err != nil {
		m.logger.Warn("failed to post message", zap.String("type", msg.Type()), zap.Error(err))
	}
}

// OnMessage registers fn for every message the panel emits.
func (m *Manager) OnMessage(fn func(protocol.Inbound)) event.Subscription {
	return m.messages.Subscribe(fn)
}

// OnDidDispose registers fn to run whenever the panel goes away.
func (m *Manager) OnDidDispose(fn func()) event.Subscription {
	return m.disposed.Subscribe(func(struct{}) { fn() })
}

// Dispose hides the panel and drops every registered handler.
func (m *Manager) Dispose() {
	m.HideDashboard()
	m.messages.Clear()
	m.disposed.Clear()
}
