package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/lazyvibe/startboard/internal/host"
	"github.com/lazyvibe/startboard/internal/notify"
	"github.com/lazyvibe/startboard/internal/webview"
)

// errPanelClosed is returned when the dashboard closed before answering.
var errPanelClosed = errors.New("dashboard closed")

// HostOptions configure a Host.
type HostOptions struct {
	// Open returns the current open settings.
	Open func() host.OpenConfig
	// Notify returns the current notification settings.
	Notify func() notify.Config
	// Dispatcher sends desktop notifications. Defaults to beeep.
	Dispatcher *notify.Dispatcher

	// Input, Output and Stderr are the terminal streams. Defaults are the
	// process's standard streams; a nil Input lets bubbletea find the TTY.
	Input  io.Reader
	Output io.Writer
	Stderr io.Writer

	// ProgramOptions are added to every bubbletea program.
	ProgramOptions []tea.ProgramOption

	Logger *zap.Logger
}

// Host runs dashboards in the terminal. It implements webview.Host,
// host.Window and host.Opener.
//
// While a dashboard runs, notifications and the open command go through it.
// Otherwise notifications print to Stderr and dialogs run as standalone
// prompts.
type Host struct {
	opts   HostOptions
	logger *zap.Logger

	mu       sync.Mutex
	panel    *Panel
	commands []Command
}

var (
	_ webview.Host = (*Host)(nil)
	_ host.Window  = (*Host)(nil)
	_ host.Opener  = (*Host)(nil)
)

// NewHost creates a Host.
func NewHost(opts HostOptions) *Host {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Open == nil {
		opts.Open = host.DefaultOpenConfig
	}
	if opts.Notify == nil {
		opts.Notify = func() notify.Config { return notify.Config{} }
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = notify.NewDispatcher()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &Host{opts: opts, logger: opts.Logger}
}

// Bind registers a host command for dashboards created afterwards.
func (h *Host) Bind(c Command) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commands = append(h.commands, c)
}

// CreatePanel implements webview.Host.
func (h *Host) CreatePanel(ctx context.Context, opts webview.Options) (webview.Panel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h.mu.Lock()
	commands := append([]Command(nil), h.commands...)
	h.mu.Unlock()

	programOpts := append(h.programOptions(ctx, h.opts.Output), tea.WithAltScreen())
	programOpts = append(programOpts, h.opts.ProgramOptions...)

	p := newPanel(ctx, opts, commands, programOpts, h.logger.With(zap.String("view", opts.ViewType)))

	h.mu.Lock()
	h.panel = p
	h.mu.Unlock()
	p.OnDispose(func() {
		h.mu.Lock()
		if h.panel == p {
			h.panel = nil
		}
		h.mu.Unlock()
	})

	h.logger.Debug("panel created", zap.String("view", opts.ViewType), zap.String("title", opts.Title))
	return p, nil
}

// active returns the running dashboard, if any.
func (h *Host) active() *Panel {
	h.mu.Lock()
	p := h.panel
	h.mu.Unlock()
	if p == nil || !p.running() {
		return nil
	}
	return p
}

// Show implements host.Window.
func (h *Host) Show(ctx context.Context, n host.Notification) (string, error) {
	isToast := len(n.Actions) == 0 && !n.Modal

	if p := h.active(); p != nil {
		if isToast {
			p.toast(n)
			return "", nil
		}
		return p.prompt(ctx, n)
	}

	if isToast {
		h.printToast(n)
		return "", nil
	}
	return runPrompt(ctx, n, append(h.programOptions(ctx, h.opts.Stderr), h.opts.ProgramOptions...)...)
}

func (h *Host) programOptions(ctx context.Context, output io.Writer) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(output)}
	if h.opts.Input != nil {
		opts = append(opts, tea.WithInput(h.opts.Input))
	}
	return opts
}

// printToast writes n to Stderr and forwards it to the desktop.
func (h *Host) printToast(n host.Notification) {
	fmt.Fprintln(h.opts.Stderr, toastLine(n))

	err := h.opts.Dispatcher.Dispatch(h.opts.Notify(), notify.Event{
		Type:    eventType(n.Severity),
		Message: n.Message,
	})
	if err != nil {
		h.logger.Warn("desktop notification failed", zap.Error(err))
	}
}

// Open implements host.Opener. With a dashboard running, the command takes
// over its terminal and the dashboard closes once the command succeeds.
func (h *Host) Open(ctx context.Context, path string) error {
	cfg := h.opts.Open()

	p := h.active()
	if p == nil {
		opener := host.NewCommandOpener(cfg)
		if h.opts.Input != nil {
			opener.Stdin = h.opts.Input
		}
		opener.Stdout, opener.Stderr = h.opts.Output, h.opts.Stderr
		return opener.Open(ctx, path)
	}

	cmd, err := host.BuildOpenCommand(ctx, cfg, path)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	p.program.Send(openMsg{cmd: cmd, done: done})

	wrap := func(err error) error {
		if err != nil {
			return fmt.Errorf("run %s: %w", cmd.Path, err)
		}
		h.logger.Info("project opened", zap.String("path", path))
		return nil
	}
	select {
	case err := <-done:
		return wrap(err)
	case <-p.Done():
		select {
		case err := <-done:
			return wrap(err)
		default:
			return errPanelClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

func eventType(s host.Severity) notify.EventType {
	switch s {
	case host.SeverityWarning:
		return notify.EventWarning
	case host.SeverityError:
		return notify.EventError
	default:
		return notify.EventInfo
	}
}
