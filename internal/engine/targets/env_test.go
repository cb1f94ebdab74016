package targets_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/drub/internal/adapters/fstree"
	"go.trai.ch/drub/internal/adapters/markers"
	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/core/ports/mocks"
	"go.trai.ch/drub/internal/engine/resolver"
	"go.trai.ch/drub/internal/engine/targets"
	"go.uber.org/mock/gomock"
)

// envMocks exposes the mocked collaborators of a test Env. Filesystem and
// marker access run against the real adapters on a temp dir.
type envMocks struct {
	fetcher *mocks.MockFetcher
	applier *mocks.MockApplier
	shell   *mocks.MockCommander
	cache   *mocks.MockCacheResetter
}

func newEnv(t *testing.T, tree *domain.Tree, cfg domain.RunConfig) (*targets.Env, *envMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()

	m := &envMocks{
		fetcher: mocks.NewMockFetcher(ctrl),
		applier: mocks.NewMockApplier(ctrl),
		shell:   mocks.NewMockCommander(ctrl),
		cache:   mocks.NewMockCacheResetter(ctrl),
	}

	env := &targets.Env{
		Config:    cfg,
		Tree:      tree,
		Fetcher:   m.fetcher,
		Applier:   m.applier,
		Files:     fstree.NewTree(log),
		Markers:   markers.NewStore(),
		Commander: m.shell,
		Cache:     m.cache,
		Logger:    log,
	}
	return env, m
}

// testTree returns a two-site tree with a custom profile, the shape targets
// are exercised against throughout this package.
func testTree() *domain.Tree {
	return &domain.Tree{
		DocumentRoot: "web",
		ProjectsDir:  "projects",
		DownloadDir:  "downloads",
		Core: domain.CoreConfig{
			Project:   "drupal-7.59",
			Profiles:  map[string]string{"intranet": "intranet-profile/profile"},
			Protected: []string{"sites/keep.php"},
		},
		Projects: map[string]*domain.Project{
			"drupal-7.59": {
				Dirname:  "drupal-7.59",
				Hash:     "aaaa1111",
				Pipeline: []domain.Resource{{URL: "https://ftp.drupal.org/files/projects/drupal-7.59.tar.gz"}},
			},
			"views-7.x-3.18": {
				Dirname:  "views-7.x-3.18",
				Type:     "drupal.org",
				Name:     "views",
				Hash:     "bbbb2222",
				Pipeline: []domain.Resource{{URL: "https://ftp.drupal.org/files/projects/views-7.x-3.18.tar.gz"}},
			},
			"intranet-profile": {
				Dirname:  "intranet-profile",
				Hash:     "cccc3333",
				Pipeline: []domain.Resource{{URL: "https://git.example.org/intranet-profile.git", Branch: "7.x"}},
			},
		},
		Sites: map[string]*domain.Site{
			"all": {
				Name:    "all",
				Profile: "standard",
				DBURL:   "dpl:dplpw@localhost/all",
				Links:   domain.LinkTree{},
			},
			"intranet": {
				Name:        "intranet",
				Profile:     "intranet",
				DBURL:       "dpl:dplpw@localhost/intranet",
				SiteName:    "Intranet",
				SiteMail:    "intranet@example.org",
				AccountMail: "admin@example.org",
				Links: domain.LinkTree{
					"modules": domain.LinkTree{"views": "views-7.x-3.18"},
				},
			},
		},
	}
}

func runConfig(installDir string) domain.RunConfig {
	return domain.RunConfig{
		SourceDir:  filepath.Join(installDir, "src"),
		InstallDir: installDir,
		Drush:      "drush",
	}
}

func depIDs(t *testing.T, target resolver.Target) []string {
	t.Helper()

	deps, err := target.Dependencies()
	require.NoError(t, err)
	ids := make([]string, len(deps))
	for i, dep := range deps {
		ids[i] = dep.ID().String()
	}
	return ids
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
