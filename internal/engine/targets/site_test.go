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

func TestSiteBuild_Dependencies(t *testing.T) {
	env, _ := newEnv(t, testTree(), runConfig(t.TempDir()))

	target := targets.NewSiteBuild(env, "intranet")
	require.Equal(t, "site-build(intranet)", target.ID().String())
	require.Equal(t, []string{
		"core-build",
		"site-build(all)",
		"build-project(views-7.x-3.18)",
		"build-project(intranet-profile)",
	}, depIDs(t, target))
}

func TestSiteBuild_AllSite(t *testing.T) {
	env, _ := newEnv(t, testTree(), runConfig(t.TempDir()))

	// The shared site does not depend on itself.
	target := targets.NewSiteBuild(env, "all")
	require.Equal(t, []string{"core-build"}, depIDs(t, target))
	require.False(t, target.AlreadyBuilt())
	require.True(t, target.Updateable())
	require.NoError(t, target.Build(context.Background()))
}

func TestSiteBuild_UnknownSite(t *testing.T) {
	env, _ := newEnv(t, testTree(), runConfig(t.TempDir()))

	_, err := targets.NewSiteBuild(env, "nosuch").Dependencies()
	require.ErrorIs(t, err, domain.ErrUnknownSite)
}

func TestSiteInstall_Dependencies(t *testing.T) {
	env, _ := newEnv(t, testTree(), runConfig(t.TempDir()))

	target := targets.NewSiteInstall(env, "intranet")
	require.Equal(t, "site-install(intranet)", target.ID().String())
	require.Equal(t, []string{
		"core-install",
		"site-build(intranet)",
		"site-install(all)",
		"profile-install(intranet)",
	}, depIDs(t, target))
}

func TestSiteInstall_AllSiteDependencies(t *testing.T) {
	env, _ := newEnv(t, testTree(), runConfig(t.TempDir()))

	target := targets.NewSiteInstall(env, "all")
	require.Equal(t, []string{"core-install", "site-build(all)"}, depIDs(t, target))
}

func TestSiteInstall_Build(t *testing.T) {
	install := t.TempDir()
	env, _ := newEnv(t, testTree(), runConfig(install))

	target := targets.NewSiteInstall(env, "intranet")
	require.NoError(t, target.Build(context.Background()))

	link := filepath.Join(install, "web", "sites", "intranet", "modules", "views")
	dest, err := os.Readlink(link)
	require.NoError(t, err)
	require.Equal(t, "../../../../projects/views-7.x-3.18", dest)

	// Replanting replaces the link in place.
	require.NoError(t, target.Build(context.Background()))
	dest, err = os.Readlink(link)
	require.NoError(t, err)
	require.Equal(t, "../../../../projects/views-7.x-3.18", dest)
}

func TestSiteInstall_BuildHonorsOverride(t *testing.T) {
	install := t.TempDir()
	cfg := runConfig(install)
	cfg.Overrides = map[string]string{"views": "/home/dev/checkouts/views"}
	env, _ := newEnv(t, testTree(), cfg)

	require.NoError(t, targets.NewSiteInstall(env, "intranet").Build(context.Background()))

	dest, err := os.Readlink(filepath.Join(install, "web", "sites", "intranet", "modules", "views"))
	require.NoError(t, err)
	require.Equal(t, "/home/dev/checkouts/views", dest)
}

func TestSiteInstall_BuildUnknownSite(t *testing.T) {
	env, _ := newEnv(t, testTree(), runConfig(t.TempDir()))

	err := targets.NewSiteInstall(env, "nosuch").Build(context.Background())
	require.ErrorIs(t, err, domain.ErrUnknownSite)
}
