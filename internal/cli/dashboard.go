package cli

import (
	"github.com/spf13/cobra"
)

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"show"},
		Short:   "Show the Start Board dashboard",
		Long: `Show the dashboard with your bookmarked projects.

Keys:
  enter    open the selected project
  d        delete the selected project
  a        bookmark the current folder or workspace
  ?        more keys`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := NewAppContext(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.RunDashboard(cmd.Context())
		},
	}
}
