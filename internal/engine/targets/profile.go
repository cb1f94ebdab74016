package targets

import (
	"context"
	"path/filepath"

	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/engine/resolver"
)

var _ resolver.Target = (*ProfileInstall)(nil)

// ProfileInstall plants the symlink making a custom install profile visible
// below the document root's profiles directory.
type ProfileInstall struct {
	env     *Env
	profile string
}

// NewProfileInstall creates the install target for a custom profile.
func NewProfileInstall(env *Env, profile string) *ProfileInstall {
	return &ProfileInstall{env: env, profile: profile}
}

func (t *ProfileInstall) ID() domain.TargetID {
	return domain.TID("profile-install", t.profile)
}

func (t *ProfileInstall) Dependencies() ([]resolver.Target, error) {
	source, err := t.env.Tree.ProfileSource(t.profile)
	if err != nil {
		return nil, err
	}
	project, err := NewBuildProject(t.env, domain.ProjectFromLinkPath(source))
	if err != nil {
		return nil, err
	}
	return []resolver.Target{NewCoreInstall(t.env), project}, nil
}

func (t *ProfileInstall) AlreadyBuilt() bool { return false }

func (t *ProfileInstall) Updateable() bool { return true }

func (t *ProfileInstall) Build(_ context.Context) error {
	if domain.BuiltinProfiles[t.profile] {
		return nil
	}
	source, err := t.env.Tree.ProfileSource(t.profile)
	if err != nil {
		return err
	}
	links := domain.LinkTree{t.profile: source}
	return t.env.Files.PlantLinks(
		filepath.Join(t.env.documentRoot(), "profiles"),
		links,
		profileLinkDepth,
		t.env.Tree.ProjectsDir,
		t.env.Config.Overrides,
	)
}
