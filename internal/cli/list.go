package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lazyvibe/startboard/internal/model"
	"github.com/lazyvibe/startboard/internal/ui/styles"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the bookmarked projects",
		Long: `Print the bookmarked projects in dashboard order.

Examples:
  startboard list
  startboard list --json | jq -r '.[].path'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := NewAppContext(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			projects := a.Projects.GetProjects()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(projects)
			}
			return printProjects(cmd.OutOrStdout(), projects)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the list as JSON")
	return cmd
}

func printProjects(out io.Writer, projects []model.Project) error {
	if len(projects) == 0 {
		_, err := fmt.Fprintln(out, styles.ListItemDim.Render("No projects yet. Run 'startboard add' inside a folder to bookmark it."))
		return err
	}

	header := lipgloss.NewStyle().Bold(true)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		header.Render("NAME"), header.Render("TYPE"), header.Render("PATH"), header.Render("ADDED"), header.Render("ID"))
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.DisplayName(), p.Type, p.Path, time.UnixMilli(p.AddedAt).Format("2006-01-02"), p.ID)
	}
	return w.Flush()
}
