package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lazyvibe/startboard/internal/app"
	"github.com/lazyvibe/startboard/internal/host"
	"github.com/lazyvibe/startboard/pkg/utils"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add [path]",
		Short: "Bookmark a folder or workspace file",
		Long: `Add a folder or .code-workspace file to the project list.

Without a path, the open workspace file (--workspace) or else the current
folder is added.

Examples:
  startboard add
  startboard add ~/src/api
  startboard add ~/src/platform.code-workspace`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completePath(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := NewAppContext(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ws := a.Workspace
			if len(args) == 1 {
				if ws, err = workspaceFor(args[0]); err != nil {
					return err
				}
			}
			_, err = a.AddProject(cmd.Context(), ws)
			return err
		},
	}
}

// workspaceFor describes path as an open folder or workspace file.
func workspaceFor(path string) (host.StaticWorkspace, error) {
	if !utils.IsValidProjectPath(path) {
		return host.StaticWorkspace{}, fmt.Errorf("%s is not a folder or %s file", path, utils.WorkspaceFileExt)
	}
	path = utils.ExpandPath(path)
	if utils.IsWorkspaceFile(path) {
		dir := filepath.Dir(path)
		return host.StaticWorkspace{
			OpenFolders: []host.Folder{{Name: filepath.Base(dir), Path: dir}},
			File:        path,
		}, nil
	}
	return host.StaticWorkspace{
		OpenFolders: []host.Folder{{Name: utils.GetProjectName(path), Path: path}},
	}, nil
}

// completePath suggests folders and workspace files, recent ones first.
func completePath(opts *rootOptions) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var recent []string
		if dir, err := resolveConfigDir(opts); err == nil {
			if cfg, err := app.LoadConfig(dir); err == nil {
				recent = cfg.RecentPaths
			}
		}
		return utils.NewPathCompleter(recent).Complete(toComplete), cobra.ShellCompDirectiveNoSpace
	}
}
