package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lazyvibe/startboard/internal/app"
	"github.com/lazyvibe/startboard/pkg/utils"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		Long: `Manage the Start Board configuration file.

Settings come from config.yaml in the configuration directory and can be
overridden with STARTBOARD_ environment variables, using a double
underscore between sections:

  STARTBOARD_ASCII_ART__FONT_SIZE=24
  STARTBOARD_OPEN__COMMAND="code --new-window"
  STARTBOARD_NOTIFY__DESKTOP=true`,
	}
	cmd.AddCommand(newConfigInitCmd(opts), newConfigPathCmd(opts), newConfigShowCmd(opts))
	return cmd
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := resolveConfigDir(opts)
			if err != nil {
				return err
			}
			path := app.ConfigPath(dir)

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to check config file: %w", err)
			}

			if err := app.SaveConfig(dir, app.DefaultConfig(dir)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return cmd
}

func newConfigPathCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := resolveConfigDir(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.ConfigPath(dir))
			return nil
		},
	}
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := resolveConfigDir(opts)
			if err != nil {
				return err
			}
			cfg, err := app.LoadConfig(dir)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, string(data))

			// The command line as it will run, with the env it runs under.
			args, err := utils.SplitCommandLine(cfg.Open.Command)
			if err != nil {
				return fmt.Errorf("invalid open.command: %w", err)
			}
			env, err := utils.ParseEnvVars(cfg.Open.Env)
			if err != nil {
				return fmt.Errorf("invalid open.env: %w", err)
			}
			fmt.Fprintf(out, "\n# open runs: %s\n", utils.JoinCommandLine(append(args, "<path>")))
			if len(env) > 0 {
				fmt.Fprintf(out, "# with env: %s\n", utils.FormatEnvVars(env))
			}
			return nil
		},
	}
}
