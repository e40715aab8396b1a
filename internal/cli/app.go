package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lazyvibe/startboard/internal/app"
	"github.com/lazyvibe/startboard/internal/host"
	"github.com/lazyvibe/startboard/internal/integration"
	"github.com/lazyvibe/startboard/internal/logging"
	"github.com/lazyvibe/startboard/internal/model"
	"github.com/lazyvibe/startboard/internal/store"
	"github.com/lazyvibe/startboard/internal/ui"
	"github.com/lazyvibe/startboard/internal/ui/keys"
	"github.com/lazyvibe/startboard/internal/webview"
)

// AppContext holds the shared dependencies of a command run.
type AppContext struct {
	Config      *app.Manager
	Logger      *zap.Logger
	Store       *store.JSONStore
	Projects    *store.ProjectStorage
	Host        *ui.Host
	Webview     *webview.Manager
	Integration *integration.Integration
	Workspace   host.Workspace

	closeLog func() error
}

// NewAppContext loads the configuration and wires the application for cmd.
func NewAppContext(cmd *cobra.Command, opts *rootOptions) (*AppContext, error) {
	dir, err := resolveConfigDir(opts)
	if err != nil {
		return nil, err
	}
	cfg, err := app.LoadConfig(dir)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	kv, err := store.NewJSONStore(dir, logger)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	ws, err := newEnvironment(opts)
	if err != nil {
		_ = kv.Close()
		_ = closeLog()
		return nil, err
	}

	mgr := app.NewManagerWith(dir, cfg, logger.Named("config"))
	h := ui.NewHost(ui.HostOptions{
		Open:   mgr.OpenConfig,
		Notify: mgr.NotifyConfig,
		Output: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Logger: logger.Named("ui"),
	})
	wv := webview.NewManager(h, logger.Named("webview"))
	projects := store.NewProjectStorage(kv, store.WithLogger(logger.Named("store")))

	integ, err := integration.New(integration.Dependencies{
		Webview:   wv,
		Projects:  projects,
		Config:    mgr,
		Workspace: ws,
		Window:    h,
		FS:        host.OSFileSystem{},
		Opener:    h,
		Logger:    logger.Named("integration"),
	})
	if err != nil {
		_ = kv.Close()
		_ = closeLog()
		return nil, err
	}

	a := &AppContext{
		Config:      mgr,
		Logger:      logger,
		Store:       kv,
		Projects:    projects,
		Host:        h,
		Webview:     wv,
		Integration: integ,
		Workspace:   ws,
		closeLog:    closeLog,
	}
	h.Bind(ui.Command{
		Name:    "add",
		Binding: keys.DefaultKeyMap().Add,
		Run: func(ctx context.Context) error {
			_, err := a.Integration.AddCurrentProject(ctx)
			return err
		},
	})
	return a, nil
}

// RunDashboard shows the dashboard and blocks until it closes.
func (a *AppContext) RunDashboard(ctx context.Context) error {
	// The watcher and relays live as long as the dashboard.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.Config.Watch(ctx); err != nil {
		a.Logger.Warn("config watch disabled", zap.Error(err))
	}

	relays := a.Integration.Initialize(ctx)
	defer relays.Dispose()

	closed := make(chan struct{})
	var once sync.Once
	sub := a.Webview.OnDidDispose(func() { once.Do(func() { close(closed) }) })
	defer sub.Dispose()

	if err := a.Webview.ShowDashboard(ctx); err != nil {
		return err
	}

	select {
	case <-closed:
	case <-ctx.Done():
		a.Webview.HideDashboard()
	}
	return nil
}

// AddProject adds the project open in ws and remembers its path for
// completion.
func (a *AppContext) AddProject(ctx context.Context, ws host.Workspace) (model.Project, error) {
	p, err := integration.NewAddProjectCommand(ws, a.Projects, a.Host, a.Logger.Named("integration")).Execute(ctx)
	if err != nil {
		if errors.Is(err, integration.ErrNoWorkspace) || errors.Is(err, store.ErrDuplicatePath) {
			return model.Project{}, errReported{err}
		}
		return model.Project{}, err
	}

	if err := a.Config.Update(func(c *app.Config) { c.AddRecentPath(p.Path) }); err != nil {
		a.Logger.Warn("failed to record recent path", zap.String("path", p.Path), zap.Error(err))
	}
	return p, nil
}

// Close releases the store and the log output.
func (a *AppContext) Close() error {
	var errs []error
	if a.Webview != nil {
		a.Webview.Dispose()
	}
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	if a.closeLog != nil {
		errs = append(errs, a.closeLog())
	}
	return errors.Join(errs...)
}

func resolveConfigDir(opts *rootOptions) (string, error) {
	if opts.configDir != "" {
		return opts.configDir, nil
	}
	return app.DefaultConfigDir()
}

// newEnvironment describes the terminal session as a workspace.
func newEnvironment(opts *rootOptions) (*host.Environment, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	home, _ := os.UserHomeDir()
	return host.NewEnvironment(cwd, home, opts.workspace), nil
}
