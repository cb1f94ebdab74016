package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/drub/internal/core/domain"
)

func loadTree(t *testing.T, projectsYAML string) *domain.Tree {
	t.Helper()

	src := t.TempDir()
	writeFile(t, src, "project.yaml", "core:\n  project: drupal-7.59\n"+projectsYAML)

	loader := newLoader(t)
	tree, err := loader.Load(context.Background(), src, t.TempDir())
	require.NoError(t, err)
	return tree
}

func TestLoader_DrupalOrgProject(t *testing.T) {
	tree := loadTree(t, `
projects:
  views-7.x-3.18: {}
`)

	p, err := tree.Project("views-7.x-3.18")
	require.NoError(t, err)
	require.True(t, p.IsDrupalOrg())
	require.Equal(t, "views", p.Name)
	require.Equal(t, "7.x", p.Core)
	require.Equal(t, "3.18", p.Version)
	require.Equal(t, "drupal.org", p.Type)

	require.Len(t, p.Pipeline, 1)
	require.Equal(t, "https://ftp.drupal.org/files/projects/views-7.x-3.18.tar.gz", p.Pipeline[0].URL)
	require.Empty(t, p.Pipeline[0].Hash)
}

func TestLoader_PatchKeepsReleaseFirst(t *testing.T) {
	tree := loadTree(t, `
projects:
  views-7.x-3.18:
    build:
      - https://www.drupal.org/files/issues/exposed-filters.patch#da39a3ee5e6b4b0d3255bfef95601890afd80709
`)

	p, err := tree.Project("views-7.x-3.18")
	require.NoError(t, err)
	require.Len(t, p.Pipeline, 2)
	require.Equal(t, "https://ftp.drupal.org/files/projects/views-7.x-3.18.tar.gz", p.Pipeline[0].URL)
	require.Equal(t, "https://www.drupal.org/files/issues/exposed-filters.patch", p.Pipeline[1].URL)
	require.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", p.Pipeline[1].Hash)
}

func TestLoader_ExplicitDownloadNotPrepended(t *testing.T) {
	tree := loadTree(t, `
projects:
  views-7.x-3.18:
    build:
      - https://mirror.example.org/views-7.x-3.18.tar.gz
`)

	p, err := tree.Project("views-7.x-3.18")
	require.NoError(t, err)
	require.Len(t, p.Pipeline, 1)
	require.Equal(t, "https://mirror.example.org/views-7.x-3.18.tar.gz", p.Pipeline[0].URL)
	require.Equal(t, "drupal.org", p.Type)
}

func TestLoader_ProjectHashPinsRelease(t *testing.T) {
	tree := loadTree(t, `
projects:
  views-7.x-3.18:
    hash: da39a3ee5e6b4b0d3255bfef95601890afd80709
`)

	p, err := tree.Project("views-7.x-3.18")
	require.NoError(t, err)
	require.Len(t, p.Pipeline, 1)
	require.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", p.Pipeline[0].Hash)
}

func TestLoader_PatchSuffixes(t *testing.T) {
	tree := loadTree(t, `
projects:
  views-7.x-3.18+exposed-filters+rtl-fix: {}
`)

	p, err := tree.Project("views-7.x-3.18+exposed-filters+rtl-fix")
	require.NoError(t, err)
	require.Equal(t, "views", p.Name)
	require.Equal(t, "3.18", p.Version)
	require.Equal(t, []string{"exposed-filters", "rtl-fix"}, p.Patches)

	// The release URL never carries the informational suffixes.
	require.Equal(t, "https://ftp.drupal.org/files/projects/views-7.x-3.18.tar.gz", p.Pipeline[0].URL)
}

func TestLoader_CustomProject(t *testing.T) {
	tree := loadTree(t, `
projects:
  intranet-profile:
    build:
      - url: https://git.example.org/intranet-profile.git
        branch: "7.x"
        shallow: false
`)

	p, err := tree.Project("intranet-profile")
	require.NoError(t, err)
	require.False(t, p.IsDrupalOrg())
	require.Empty(t, p.Type)

	require.Len(t, p.Pipeline, 1)
	res := p.Pipeline[0]
	require.True(t, res.IsSCM())
	require.Equal(t, "7.x", res.Branch)
	require.NotNil(t, res.Shallow)
	require.False(t, *res.Shallow)
}

func TestLoader_ResourceFields(t *testing.T) {
	tree := loadTree(t, `
projects:
  drupal-7.59:
    build:
      - url: https://ftp.drupal.org/files/projects/drupal-7.59.tar.gz
        exclude:
          - '^[^/]*/sites/default'
        devel: false
      - url: files/robots.txt
        filepath: robots.txt
        purpose: Disallow crawlers on staging
        link: https://wiki.example.org/staging
`)

	p, err := tree.Project("drupal-7.59")
	require.NoError(t, err)
	require.Empty(t, p.Type)
	require.Len(t, p.Pipeline, 2)

	tarball := p.Pipeline[0]
	require.Equal(t, []string{"^[^/]*/sites/default"}, tarball.Exclude)
	require.NotNil(t, tarball.Devel)
	require.False(t, *tarball.Devel)

	file := p.Pipeline[1]
	require.Equal(t, "files/robots.txt", file.URL)
	require.Equal(t, "robots.txt", file.Filepath)
	require.Equal(t, "Disallow crawlers on staging", file.Purpose)
	require.Equal(t, "https://wiki.example.org/staging", file.Link)
}

func TestLoader_ExplicitHashBeatsPin(t *testing.T) {
	tree := loadTree(t, `
projects:
  ctools-7.x-1.14:
    build:
      - url: https://mirror.example.org/ctools-7.x-1.14.tar.gz#aaaa0000aaaa0000aaaa0000aaaa0000aaaa0000
        hash: bbbb1111bbbb1111bbbb1111bbbb1111bbbb1111
`)

	p, err := tree.Project("ctools-7.x-1.14")
	require.NoError(t, err)
	require.Equal(t, "https://mirror.example.org/ctools-7.x-1.14.tar.gz", p.Pipeline[0].URL)
	require.Equal(t, "bbbb1111bbbb1111bbbb1111bbbb1111bbbb1111", p.Pipeline[0].Hash)
}

func TestLoader_RecipeHashStable(t *testing.T) {
	first := loadTree(t, `
projects:
  views-7.x-3.18:
    protected: true
`)
	second := loadTree(t, `
projects:
  views-7.x-3.18:
    protected: true
`)

	p1, err := first.Project("views-7.x-3.18")
	require.NoError(t, err)
	p2, err := second.Project("views-7.x-3.18")
	require.NoError(t, err)

	require.NotEmpty(t, p1.Hash)
	require.Equal(t, p1.Hash, p2.Hash)
}

func TestLoader_RecipeHashIgnoresSpelledOutDefaults(t *testing.T) {
	implicit := loadTree(t, `
projects:
  views-7.x-3.18: {}
`)
	explicit := loadTree(t, `
projects:
  views-7.x-3.18:
    protected: false
`)

	p1, err := implicit.Project("views-7.x-3.18")
	require.NoError(t, err)
	p2, err := explicit.Project("views-7.x-3.18")
	require.NoError(t, err)

	require.Equal(t, p1.Hash, p2.Hash)
}

func TestLoader_RecipeHashCoversConfig(t *testing.T) {
	plain := loadTree(t, `
projects:
  views-7.x-3.18: {}
  ctools-7.x-1.14: {}
`)
	patched := loadTree(t, `
projects:
  views-7.x-3.18:
    build:
      - https://www.drupal.org/files/issues/exposed-filters.patch
`)

	views, err := plain.Project("views-7.x-3.18")
	require.NoError(t, err)
	ctools, err := plain.Project("ctools-7.x-1.14")
	require.NoError(t, err)
	patchedViews, err := patched.Project("views-7.x-3.18")
	require.NoError(t, err)

	// The dirname is part of the recipe, identical bodies still hash apart.
	require.NotEqual(t, views.Hash, ctools.Hash)
	// And so is the build pipeline.
	require.NotEqual(t, views.Hash, patchedViews.Hash)
}
