package integration

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/lazyvibe/startboard/internal/host"
	"github.com/lazyvibe/startboard/internal/model"
	"github.com/lazyvibe/startboard/internal/store"
	"github.com/lazyvibe/startboard/pkg/utils"
)

// ErrNoWorkspace is returned when nothing is open to add.
var ErrNoWorkspace = errors.New("no folder or workspace is open")

// AddProjectCommand adds the open workspace file, or else the first open
// folder, to the registry.
type AddProjectCommand struct {
	workspace host.Workspace
	projects  Projects
	window    host.Window
	logger    *zap.Logger
}

// NewAddProjectCommand creates an AddProjectCommand.
func NewAddProjectCommand(ws host.Workspace, projects Projects, window host.Window, logger *zap.Logger) *AddProjectCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AddProjectCommand{workspace: ws, projects: projects, window: window, logger: logger}
}

// Execute adds the project and tells the user the outcome. It returns
// ErrNoWorkspace or store.ErrDuplicatePath when nothing was added.
func (c *AddProjectCommand) Execute(ctx context.Context) (model.Project, error) {
	if file := c.workspace.WorkspaceFile(); file != "" {
		return c.add(ctx, model.ProjectInput{
			Name: strings.TrimSuffix(filepath.Base(file), utils.WorkspaceFileExt),
			Path: file,
			Type: model.ProjectTypeWorkspace,
		})
	}

	if folders := c.workspace.Folders(); len(folders) > 0 {
		return c.add(ctx, model.ProjectInput{
			Name: folders[0].Name,
			Path: folders[0].Path,
			Type: model.ProjectTypeFolder,
		})
	}

	c.notify(ctx, host.SeverityError, "Start Board: Open a folder or workspace to add it as a project.")
	return model.Project{}, ErrNoWorkspace
}

func (c *AddProjectCommand) add(ctx context.Context, input model.ProjectInput) (model.Project, error) {
	if c.projects.HasProject(input.Path) {
		c.notify(ctx, host.SeverityWarning, `Start Board: "`+input.Name+`" is already in the project list.`)
		return model.Project{}, store.ErrDuplicatePath
	}

	p, err := c.projects.AddProject(input)
	if err != nil {
		if errors.Is(err, store.ErrDuplicatePath) {
			c.notify(ctx, host.SeverityWarning, `Start Board: "`+input.Name+`" is already in the project list.`)
		}
		return model.Project{}, err
	}

	c.logger.Info("project added", zap.String("name", p.Name), zap.String("path", p.Path), zap.String("type", string(p.Type)))
	c.notify(ctx, host.SeverityInfo, `Start Board: Added "`+p.Name+`" to the project list.`)
	return p, nil
}

func (c *AddProjectCommand) notify(ctx context.Context, severity host.Severity, message string) {
	if _, err := c.window.Show(ctx, host.Notification{Severity: severity, Message: message}); err != nil {
		c.logger.Warn("notification failed", zap.String("message", message), zap.Error(err))
	}
}
