// Package shell runs external commands: rsync, git, patch and drush.
package shell

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Commander = (*Commander)(nil)

// Commander implements ports.Commander using os/exec.
type Commander struct {
	logger ports.Logger
}

// NewCommander creates a new Commander.
func NewCommander(logger ports.Logger) *Commander {
	return &Commander{
		logger: logger,
	}
}

// Run executes the command and waits for it. Extra environment entries are
// appended to the inherited environment. A non-zero exit status is returned as
// domain.ErrCommandFailed with the exit code as metadata.
func (c *Commander) Run(ctx context.Context, command domain.Command) error {
	if command.Name == "" {
		return zerr.New("empty command")
	}

	cmd := exec.CommandContext(ctx, command.Name, command.Args...) //nolint:gosec // commands come from the tree config
	cmd.Dir = command.Dir

	if len(command.Env) > 0 {
		cmd.Env = append(os.Environ(), command.Env...)
	}

	cmd.Stdout = command.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = command.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	c.logger.Debug("running command", "cmd", renderCommand(command), "dir", command.Dir)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			failed := zerr.Wrap(domain.ErrCommandFailed, "command exited with an error")
			failed = zerr.With(failed, "command", renderCommand(command))
			return zerr.With(failed, "exit_code", exitErr.ExitCode())
		}
		if errors.Is(err, exec.ErrNotFound) {
			missing := zerr.Wrap(domain.ErrCommandNotFound, "command not found")
			return zerr.With(missing, "command", command.Name)
		}
		return zerr.With(zerr.Wrap(err, "command failed to start"), "command", renderCommand(command))
	}

	return nil
}

// renderCommand renders the command line for diagnostics.
func renderCommand(command domain.Command) string {
	return strings.Join(append([]string{command.Name}, command.Args...), " ")
}
