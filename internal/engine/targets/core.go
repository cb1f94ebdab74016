package targets

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/core/ports"
	"go.trai.ch/drub/internal/engine/resolver"
)

var (
	_ resolver.Target = (*CoreBuild)(nil)
	_ resolver.Target = (*CoreInstall)(nil)
)

// CoreBuild groups the build of the project providing the Drupal core.
type CoreBuild struct {
	env *Env
}

// NewCoreBuild creates the core build target.
func NewCoreBuild(env *Env) *CoreBuild {
	return &CoreBuild{env: env}
}

func (t *CoreBuild) ID() domain.TargetID {
	return domain.TID("core-build", "")
}

func (t *CoreBuild) Dependencies() ([]resolver.Target, error) {
	project, err := NewBuildProject(t.env, t.env.Tree.Core.Project)
	if err != nil {
		return nil, err
	}
	return []resolver.Target{project}, nil
}

func (t *CoreBuild) AlreadyBuilt() bool { return false }

func (t *CoreBuild) Updateable() bool { return true }

func (t *CoreBuild) Build(_ context.Context) error { return nil }

// CoreInstall syncs the built core into the document root without touching
// site directories, profile links or protected paths.
type CoreInstall struct {
	env *Env
}

// NewCoreInstall creates the core install target.
func NewCoreInstall(env *Env) *CoreInstall {
	return &CoreInstall{env: env}
}

func (t *CoreInstall) ID() domain.TargetID {
	return domain.TID("core-install", "")
}

func (t *CoreInstall) Dependencies() ([]resolver.Target, error) {
	return []resolver.Target{NewCoreBuild(t.env)}, nil
}

func (t *CoreInstall) AlreadyBuilt() bool {
	root := t.env.documentRoot()
	return t.env.Files.Exists(root) && t.env.Files.Exists(filepath.Join(root, domain.MarkerFileName))
}

// Updateable compares the installed marker against the built core's marker.
// The marker rides into the document root with the sync itself.
func (t *CoreInstall) Updateable() bool {
	installed, err := t.env.Markers.Read(t.env.documentRoot())
	if err != nil {
		return true
	}
	built, err := t.env.Markers.Read(t.env.projectDir(t.env.Tree.Core.Project))
	if err != nil {
		return true
	}
	return installed != built
}

// Build syncs in three passes: the core tree excluding everything site- or
// profile-shaped, the top-level files of sites/ without overwriting, and
// sites/default as a full mirror.
func (t *CoreInstall) Build(_ context.Context) error {
	source := t.env.projectDir(t.env.Tree.Core.Project)
	target := t.env.documentRoot()

	profiles := make([]string, 0, len(t.env.Tree.Core.Profiles))
	for name := range t.env.Tree.Core.Profiles {
		profiles = append(profiles, "profiles/"+name)
	}
	sort.Strings(profiles)

	excludes := append([]string{"sites/*/"}, profiles...)
	excludes = append(excludes, t.env.Tree.Core.Protected...)
	if err := t.env.Files.Sync(source, target, ports.SyncOptions{Excludes: excludes, Delete: true}); err != nil {
		return err
	}

	var protectedInSites []string
	for _, path := range t.env.Tree.Core.Protected {
		if rest, ok := strings.CutPrefix(path, "sites/"); ok && rest != "" {
			protectedInSites = append(protectedInSites, rest)
		}
	}
	opts := ports.SyncOptions{
		Excludes:    append([]string{"*/"}, protectedInSites...),
		OnlyMissing: true,
		Delete:      true,
	}
	if err := t.env.Files.Sync(filepath.Join(source, "sites"), filepath.Join(target, "sites"), opts); err != nil {
		return err
	}

	return t.env.Files.Sync(
		filepath.Join(source, "sites", "default"),
		filepath.Join(target, "sites", "default"),
		ports.SyncOptions{Delete: true},
	)
}
