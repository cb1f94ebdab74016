package targets_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/engine/targets"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestBuildProject_Build(t *testing.T) {
	install := t.TempDir()
	env, m := newEnv(t, testTree(), runConfig(install))

	target, err := targets.NewBuildProject(env, "views-7.x-3.18")
	require.NoError(t, err)
	require.Equal(t, "build-project(views-7.x-3.18)", target.ID().String())
	require.Equal(t, []string{"dirs"}, depIDs(t, target))

	res := env.Tree.Projects["views-7.x-3.18"].Pipeline[0]
	m.fetcher.EXPECT().
		Fetch(gomock.Any(), res, env.Config.SourceDir, filepath.Join(install, "downloads")).
		Return("/cache/views.tar.gz", nil)
	m.applier.EXPECT().
		Apply(gomock.Any(), res, "/cache/views.tar.gz", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Resource, _ string, dir string) error {
			writeFile(t, filepath.Join(dir, "views.module"), "<?php\n")
			return nil
		})

	require.False(t, target.AlreadyBuilt())
	require.NoError(t, target.Build(context.Background()))

	built := filepath.Join(install, "projects", "views-7.x-3.18")
	require.Equal(t, "<?php\n", readFile(t, filepath.Join(built, "views.module")))
	require.Equal(t, "bbbb2222", readFile(t, filepath.Join(built, domain.MarkerFileName)))
	require.True(t, target.AlreadyBuilt())
	require.False(t, target.Updateable())

	// Neither the temp dir nor a rotation leftover survives.
	entries, err := os.ReadDir(filepath.Join(install, "projects"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestBuildProject_RotatesExistingBuild(t *testing.T) {
	install := t.TempDir()
	env, m := newEnv(t, testTree(), runConfig(install))

	built := filepath.Join(install, "projects", "views-7.x-3.18")
	writeFile(t, filepath.Join(built, "views.module"), "old\n")
	writeFile(t, filepath.Join(built, "legacy.inc"), "old\n")
	writeFile(t, filepath.Join(built, domain.MarkerFileName), "stale")

	target, err := targets.NewBuildProject(env, "views-7.x-3.18")
	require.NoError(t, err)
	require.True(t, target.AlreadyBuilt())
	require.True(t, target.Updateable())

	m.fetcher.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("/cache/views.tar.gz", nil)
	m.applier.EXPECT().
		Apply(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Resource, _ string, dir string) error {
			writeFile(t, filepath.Join(dir, "views.module"), "new\n")
			return nil
		})

	require.NoError(t, target.Build(context.Background()))

	require.Equal(t, "new\n", readFile(t, filepath.Join(built, "views.module")))
	require.NoFileExists(t, filepath.Join(built, "legacy.inc"))
	require.Equal(t, "bbbb2222", readFile(t, filepath.Join(built, domain.MarkerFileName)))
	require.False(t, target.Updateable())
	require.NoDirExists(t, built+domain.DeleteSuffix)
}

func TestBuildProject_FailureKeepsExistingBuild(t *testing.T) {
	install := t.TempDir()
	env, m := newEnv(t, testTree(), runConfig(install))

	built := filepath.Join(install, "projects", "views-7.x-3.18")
	writeFile(t, filepath.Join(built, "views.module"), "old\n")

	target, err := targets.NewBuildProject(env, "views-7.x-3.18")
	require.NoError(t, err)

	m.fetcher.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("/cache/views.tar.gz", nil)
	m.applier.EXPECT().
		Apply(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(zerr.New("disk full"))

	require.Error(t, target.Build(context.Background()))

	require.Equal(t, "old\n", readFile(t, filepath.Join(built, "views.module")))
	entries, err := os.ReadDir(filepath.Join(install, "projects"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestBuildProject_DebugKeepsTempDir(t *testing.T) {
	install := t.TempDir()
	cfg := runConfig(install)
	cfg.Debug = true
	env, m := newEnv(t, testTree(), cfg)

	target, err := targets.NewBuildProject(env, "views-7.x-3.18")
	require.NoError(t, err)

	m.fetcher.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("/cache/views.tar.gz", nil)
	m.applier.EXPECT().
		Apply(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(zerr.New("disk full"))

	require.Error(t, target.Build(context.Background()))

	tmp := filepath.Join(install, "projects", "views-7.x-3.18.bbbb2222")
	require.DirExists(t, tmp)
}

func TestBuildProject_ProtectedNeverUpdates(t *testing.T) {
	install := t.TempDir()
	env, _ := newEnv(t, testTree(), runConfig(install))

	built := filepath.Join(install, "projects", "views-7.x-3.18")
	writeFile(t, filepath.Join(built, domain.MarkerFileName), "stale")
	env.Tree.Projects["views-7.x-3.18"].Protected = true

	target, err := targets.NewBuildProject(env, "views-7.x-3.18")
	require.NoError(t, err)
	require.False(t, target.Updateable())
}

func TestBuildProject_DevelGating(t *testing.T) {
	install := t.TempDir()
	tree := testTree()

	develOnly, prodOnly := true, false
	tree.Projects["custom-tools"] = &domain.Project{
		Dirname: "custom-tools",
		Hash:    "dddd4444",
		Pipeline: []domain.Resource{
			{URL: "https://mirror.example.org/tools.tar.gz"},
			{URL: "files/devel-settings.php", Devel: &develOnly},
			{URL: "files/robots.txt", Devel: &prodOnly},
		},
	}
	env, m := newEnv(t, tree, runConfig(install))

	target, err := targets.NewBuildProject(env, "custom-tools")
	require.NoError(t, err)

	pipeline := tree.Projects["custom-tools"].Pipeline
	m.fetcher.EXPECT().
		Fetch(gomock.Any(), pipeline[0], gomock.Any(), gomock.Any()).
		Return("/cache/tools.tar.gz", nil)
	m.applier.EXPECT().
		Apply(gomock.Any(), pipeline[0], "/cache/tools.tar.gz", gomock.Any()).
		Return(nil)
	m.fetcher.EXPECT().
		Fetch(gomock.Any(), pipeline[2], gomock.Any(), gomock.Any()).
		Return("/cache/robots.txt", nil)
	m.applier.EXPECT().
		Apply(gomock.Any(), pipeline[2], "/cache/robots.txt", gomock.Any()).
		Return(nil)

	// The devel-only resource is never fetched in a production run.
	require.NoError(t, target.Build(context.Background()))
}

func TestBuildProject_UnknownProject(t *testing.T) {
	env, _ := newEnv(t, testTree(), runConfig(t.TempDir()))

	_, err := targets.NewBuildProject(env, "nosuch-7.x-1.0")
	require.ErrorIs(t, err, domain.ErrUnknownProject)
}

func TestDirs_Build(t *testing.T) {
	install := t.TempDir()
	env, _ := newEnv(t, testTree(), runConfig(install))

	dirs := targets.NewDirs(env)
	require.Equal(t, "dirs", dirs.ID().String())
	require.Empty(t, depIDs(t, dirs))

	require.NoError(t, dirs.Build(context.Background()))
	require.DirExists(t, filepath.Join(install, "downloads"))
	require.DirExists(t, filepath.Join(install, "projects"))
}
