// Package integration binds the dashboard message protocol to the project
// registry and configuration. It is the only place that interprets panel
// messages.
package integration

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lazyvibe/startboard/internal/event"
	"github.com/lazyvibe/startboard/internal/host"
	"github.com/lazyvibe/startboard/internal/model"
	"github.com/lazyvibe/startboard/internal/protocol"
	"github.com/lazyvibe/startboard/internal/webview"
)

// Labels of the actions offered to the user.
const (
	ActionDelete         = "Delete"
	ActionCancel         = "Cancel"
	ActionRemoveFromList = "Remove from List"
)

// Messenger is the panel side of the integration.
type Messenger interface {
	SendMessage(msg protocol.Outbound)
	OnMessage(fn func(protocol.Inbound)) event.Subscription
	State() webview.State
}

// Projects is the project registry.
type Projects interface {
	GetProjects() []model.Project
	Project(id string) (model.Project, bool)
	HasProject(path string) bool
	AddProject(input model.ProjectInput) (model.Project, error)
	RemoveProject(id string) error
}

// ConfigSource supplies the splash configuration.
type ConfigSource interface {
	GetAsciiArtConfig() model.AsciiArtConfig
	OnConfigChange(fn func(model.AsciiArtConfig)) event.Subscription
}

// Dependencies are the collaborators of an Integration.
type Dependencies struct {
	Webview   Messenger
	Projects  Projects
	Config    ConfigSource
	Workspace host.Workspace
	Window    host.Window
	FS        host.FileSystem
	Opener    host.Opener
	Logger    *zap.Logger
}

func (d Dependencies) validate() error {
	var missing []error
	check := func(ok bool, name string) {
		if !ok {
			missing = append(missing, fmt.Errorf("missing %s", name))
		}
	}
	check(d.Webview != nil, "webview")
	check(d.Projects != nil, "projects")
	check(d.Config != nil, "config")
	check(d.Workspace != nil, "workspace")
	check(d.Window != nil, "window")
	check(d.FS != nil, "file system")
	check(d.Opener != nil, "opener")
	return errors.Join(missing...)
}

// Integration dispatches panel messages and pushes state changes to the panel.
type Integration struct {
	webview  Messenger
	projects Projects
	config   ConfigSource
	window   host.Window
	fs       host.FileSystem
	opener   host.Opener
	add      *AddProjectCommand
	logger   *zap.Logger
}

// New creates an Integration.
func New(deps Dependencies) (*Integration, error) {
	if err := deps.validate(); err != nil {
		return nil, fmt.Errorf("integration: %w", err)
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Integration{
		webview:  deps.Webview,
		projects: deps.Projects,
		config:   deps.Config,
		window:   deps.Window,
		fs:       deps.FS,
		opener:   deps.Opener,
		add:      NewAddProjectCommand(deps.Workspace, deps.Projects, deps.Window, logger),
		logger:   logger,
	}, nil
}

// Initialize starts handling panel messages and relaying configuration
// changes. Disposing the result stops both.
func (i *Integration) Initialize(ctx context.Context) event.Subscription {
	messages := i.webview.OnMessage(func(msg protocol.Inbound) {
		i.HandleMessage(ctx, msg)
	})
	config := i.config.OnConfigChange(func(cfg model.AsciiArtConfig) {
		i.webview.SendMessage(protocol.ConfigUpdated{Config: cfg})
	})
	return event.Join(messages, config)
}

// HandleMessage handles one panel message. Failures end in a notification
// or a log entry; nothing is returned to the caller.
func (i *Integration) HandleMessage(ctx context.Context, msg protocol.Inbound) {
	i.logger.Debug("panel message", zap.String("type", msg.Type()))

	switch m := msg.(type) {
	case protocol.Ready:
		i.handleReady()
	case protocol.ConfirmDelete:
		i.handleConfirmDelete(ctx, m)
	case protocol.OpenProject:
		i.handleOpenProject(ctx, m)
	default:
		i.logger.Warn("unhandled panel message", zap.String("type", msg.Type()))
	}
}

func (i *Integration) handleReady() {
	i.webview.SendMessage(protocol.Init{
		Projects: i.projects.GetProjects(),
		Config:   i.config.GetAsciiArtConfig(),
	})
}

func (i *Integration) handleConfirmDelete(ctx context.Context, m protocol.ConfirmDelete) {
	choice := i.show(ctx, host.Notification{
		Severity: host.SeverityWarning,
		Message:  `Delete "` + m.ProjectName + `"?`,
		Actions:  []string{ActionDelete, ActionCancel},
		Modal:    true,
	})
	if choice != ActionDelete {
		return
	}
	i.removeAndNotify(m.ProjectID)
}

func (i *Integration) handleOpenProject(ctx context.Context, m protocol.OpenProject) {
	project, ok := i.projects.Project(m.ProjectID)
	if !ok {
		i.show(ctx, host.Notification{Severity: host.SeverityError, Message: "Project not found"})
		return
	}

	// Any stat failure counts as a missing path.
	if err := i.fs.Stat(project.Path); err != nil {
		i.logger.Info("project path unavailable", zap.String("path", project.Path), zap.Error(err))
		choice := i.show(ctx, host.Notification{
			Severity: host.SeverityError,
			Message:  "Path does not exist: " + project.Path,
			Actions:  []string{ActionRemoveFromList},
		})
		if choice == ActionRemoveFromList {
			i.removeAndNotify(project.ID)
		}
		return
	}

	if err := i.opener.Open(ctx, project.Path); err != nil {
		i.logger.Error("failed to open project", zap.String("path", project.Path), zap.Error(err))
		i.show(ctx, host.Notification{
			Severity: host.SeverityError,
			Message:  fmt.Sprintf("Failed to open %s: %v", project.Path, err),
		})
	}
}

func (i *Integration) removeAndNotify(id string) {
	if err := i.projects.RemoveProject(id); err != nil {
		i.logger.Debug("remove project", zap.String("id", id), zap.Error(err))
	}
	i.NotifyProjectsUpdated()
}

// NotifyProjectsUpdated sends the current project list to the panel.
func (i *Integration) NotifyProjectsUpdated() {
	i.webview.SendMessage(protocol.ProjectsUpdated{Projects: i.projects.GetProjects()})
}

// AddCurrentProject adds the open workspace file or folder and refreshes
// the panel when one is open.
func (i *Integration) AddCurrentProject(ctx context.Context) (model.Project, error) {
	p, err := i.add.Execute(ctx)
	if err != nil {
		return model.Project{}, err
	}
	if i.webview.State() == webview.StatePanelOpen {
		i.NotifyProjectsUpdated()
	}
	return p, nil
}

// show presents n and returns the chosen action. Window errors count as a
// dismissal.
func (i *Integration) show(ctx context.Context, n host.Notification) string {
	choice, err := i.window.Show(ctx, n)
	if err != nil {
		i.logger.Warn("notification failed", zap.String("message", n.Message), zap.Error(err))
		return ""
	}
	return choice
}
