package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/lazyvibe/startboard/pkg/utils"
)

// DefaultOpenCommand opens a path in the current editor window.
const DefaultOpenCommand = "code --reuse-window"

// ErrNoOpenCommand is returned when the open command is blank.
var ErrNoOpenCommand = errors.New("open command is empty")

// Opener replaces the active window's folder or workspace with path.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// OpenConfig configures how projects are opened.
type OpenConfig struct {
	// Command is the command line; the project path is appended.
	Command string `koanf:"command" yaml:"command"`
	// Env holds extra KEY=VALUE pairs separated by commas, semicolons or newlines.
	Env string `koanf:"env" yaml:"env"`
}

// DefaultOpenConfig returns the default open settings.
func DefaultOpenConfig() OpenConfig {
	return OpenConfig{Command: DefaultOpenCommand}
}

// BuildOpenCommand returns the command that opens path.
func BuildOpenCommand(ctx context.Context, cfg OpenConfig, path string) (*exec.Cmd, error) {
	args, err := utils.SplitCommandLine(cfg.Command)
	if err != nil {
		return nil, fmt.Errorf("parse open command: %w", err)
	}
	if len(args) == 0 {
		return nil, ErrNoOpenCommand
	}
	env, err := utils.ParseEnvVars(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("parse open env: %w", err)
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	if len(env) > 0 {
		cmd.Env = utils.MergeEnv(os.Environ(), env)
	}
	return cmd, nil
}

// CommandOpener runs the open command attached to the given streams.
type CommandOpener struct {
	Config OpenConfig
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewCommandOpener creates a CommandOpener on the process's standard streams.
func NewCommandOpener(cfg OpenConfig) *CommandOpener {
	return &CommandOpener{Config: cfg, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Open implements Opener.
func (o *CommandOpener) Open(ctx context.Context, path string) error {
	cmd, err := BuildOpenCommand(ctx, o.Config, path)
	if err != nil {
		return err
	}
	cmd.Stdin, cmd.Stdout, cmd.Stderr = o.Stdin, o.Stdout, o.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s: %w", cmd.Path, err)
	}
	return nil
}
