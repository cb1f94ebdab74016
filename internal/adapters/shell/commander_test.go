package shell_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/drub/internal/adapters/shell"
	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newCommander(t *testing.T) *shell.Commander {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	return shell.NewCommander(log)
}

func TestCommander_CapturesOutput(t *testing.T) {
	c := newCommander(t)

	var stdout bytes.Buffer
	err := c.Run(context.Background(), domain.Command{
		Name:   "sh",
		Args:   []string{"-c", "echo line1; echo line2"},
		Stdout: &stdout,
	})
	require.NoError(t, err)
	require.Equal(t, "line1\nline2\n", stdout.String())
}

func TestCommander_WorkingDirectory(t *testing.T) {
	c := newCommander(t)
	dir := t.TempDir()

	var stdout bytes.Buffer
	err := c.Run(context.Background(), domain.Command{
		Name:   "pwd",
		Dir:    dir,
		Stdout: &stdout,
	})
	require.NoError(t, err)
	require.Equal(t, dir, strings.TrimSpace(stdout.String()))
}

func TestCommander_ExtraEnvironment(t *testing.T) {
	c := newCommander(t)

	var stdout bytes.Buffer
	err := c.Run(context.Background(), domain.Command{
		Name:   "sh",
		Args:   []string{"-c", "printf '%s' \"$DRUB_TEST_VALUE\""},
		Env:    []string{"DRUB_TEST_VALUE=test-value-123"},
		Stdout: &stdout,
	})
	require.NoError(t, err)
	require.Equal(t, "test-value-123", stdout.String())
}

func TestCommander_ExitCode(t *testing.T) {
	c := newCommander(t)

	err := c.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "exit 3"},
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrCommandFailed))

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T: %v", err, err)
	require.Equal(t, 3, zErr.Metadata()["exit_code"])
}

func TestCommander_CommandNotFound(t *testing.T) {
	c := newCommander(t)

	err := c.Run(context.Background(), domain.Command{
		Name: "drub-test-no-such-binary",
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrCommandNotFound))
}

func TestSplitCommandLine(t *testing.T) {
	tests := []struct {
		name    string
		cmdline string
		want    []string
		wantErr bool
	}{
		{
			name:    "bare command",
			cmdline: "drush",
			want:    []string{"drush"},
		},
		{
			name:    "command with arguments",
			cmdline: "drush --alias @staging",
			want:    []string{"drush", "--alias", "@staging"},
		},
		{
			name:    "quoted argument",
			cmdline: `php -d 'memory_limit=512M' drush.php`,
			want:    []string{"php", "-d", "memory_limit=512M", "drush.php"},
		},
		{
			name:    "empty",
			cmdline: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := shell.SplitCommandLine(tt.cmdline)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
