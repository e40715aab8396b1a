// Package cli implements the startboard command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lazyvibe/startboard/internal/integration"
)

var (
	version = "dev"
	commit  = "unknown"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configDir string
	workspace string
}

// errReported marks failures the user has already been told about.
type errReported struct{ err error }

func (e errReported) Error() string { return e.err.Error() }
func (e errReported) Unwrap() error { return e.err }

// NewRootCmd creates the startboard command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "startboard",
		Short: "A start page of bookmarked projects for your terminal",
		Long: `Start Board keeps a list of project folders and workspace files and
shows them on a dashboard, ready to open.

Run without a subcommand from your home directory and the dashboard
opens on its own. From inside a project, add it with 'startboard add'.

Quick Start:
  startboard add              # Bookmark the current folder
  startboard dashboard        # Show the dashboard
  startboard list             # Print the bookmarks`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runActivate(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "Configuration directory (default $XDG_CONFIG_HOME/startboard)")
	cmd.PersistentFlags().StringVar(&opts.workspace, "workspace", "", "Open workspace file (.code-workspace)")
	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	cmd.AddCommand(
		newDashboardCmd(opts),
		newAddCmd(opts),
		newListCmd(opts),
		newRemoveCmd(opts),
		newConfigCmd(opts),
	)
	return cmd
}

// Execute runs the command line and exits on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}
	var reported errReported
	if !errors.As(err, &reported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	stop()
	os.Exit(1)
}

// runActivate shows the dashboard when nothing is open, and otherwise
// prints a hint.
func runActivate(cmd *cobra.Command, opts *rootOptions) error {
	a, err := NewAppContext(cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	shown, err := integration.AutoShowDashboard(ctx, a.Workspace, a.RunDashboard)
	if err != nil {
		return err
	}
	if !shown {
		fmt.Fprintf(cmd.OutOrStdout(), "Run 'startboard dashboard' to show your projects, or 'startboard add' to bookmark %s.\n",
			a.Workspace.Folders()[0].Path)
	}
	return nil
}
