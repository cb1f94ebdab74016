package targets_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/engine/targets"
)

func TestProfileInstall_Dependencies(t *testing.T) {
	env, _ := newEnv(t, testTree(), runConfig(t.TempDir()))

	target := targets.NewProfileInstall(env, "intranet")
	require.Equal(t, "profile-install(intranet)", target.ID().String())
	require.Equal(t, []string{"core-install", "build-project(intranet-profile)"}, depIDs(t, target))
}

func TestProfileInstall_Build(t *testing.T) {
	install := t.TempDir()
	env, _ := newEnv(t, testTree(), runConfig(install))

	target := targets.NewProfileInstall(env, "intranet")
	require.NoError(t, target.Build(context.Background()))

	dest, err := os.Readlink(filepath.Join(install, "web", "profiles", "intranet"))
	require.NoError(t, err)
	require.Equal(t, "../../projects/intranet-profile/profile", dest)
}

func TestProfileInstall_BuiltinIsNoop(t *testing.T) {
	install := t.TempDir()
	env, _ := newEnv(t, testTree(), runConfig(install))

	target := targets.NewProfileInstall(env, "standard")
	require.NoError(t, target.Build(context.Background()))
	require.NoDirExists(t, filepath.Join(install, "web", "profiles"))
}

func TestProfileInstall_UnknownProfile(t *testing.T) {
	env, _ := newEnv(t, testTree(), runConfig(t.TempDir()))

	_, err := targets.NewProfileInstall(env, "nosuch").Dependencies()
	require.ErrorIs(t, err, domain.ErrUnknownProfile)
}
