package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lazyvibe/startboard/internal/protocol"
	"github.com/lazyvibe/startboard/internal/store"
)

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a project from the list",
		Long: `Remove a project from the list after confirming. The folder itself is
left alone. Ids are shown by 'startboard list'.`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			a, err := NewAppContext(cmd, opts)
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			defer a.Close()

			var ids []string
			for _, p := range a.Projects.GetProjects() {
				ids = append(ids, p.ID+"\t"+p.DisplayName())
			}
			return ids, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := NewAppContext(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			id := args[0]
			p, ok := a.Projects.Project(id)
			if !ok {
				return fmt.Errorf("%w: %s", store.ErrProjectNotFound, id)
			}

			if yes {
				if err := a.Projects.RemoveProject(id); err != nil {
					return err
				}
			} else {
				a.Integration.HandleMessage(cmd.Context(), protocol.ConfirmDelete{ProjectID: p.ID, ProjectName: p.DisplayName()})
				if _, still := a.Projects.Project(id); still {
					return nil
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q from the project list.\n", p.DisplayName())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")
	return cmd
}
