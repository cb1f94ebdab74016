package targets

import (
	"context"

	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/engine/resolver"
)

var (
	_ resolver.Target = (*SiteBuild)(nil)
	_ resolver.Target = (*SiteInstall)(nil)
)

// SiteBuild groups the builds of every project a site references. The "all"
// site carries what is shared between sites; every other site builds on it.
type SiteBuild struct {
	env  *Env
	site string
}

// NewSiteBuild creates the build grouping target for a site.
func NewSiteBuild(env *Env, site string) *SiteBuild {
	return &SiteBuild{env: env, site: site}
}

func (t *SiteBuild) ID() domain.TargetID {
	return domain.TID("site-build", t.site)
}

func (t *SiteBuild) Dependencies() ([]resolver.Target, error) {
	deps := []resolver.Target{NewCoreBuild(t.env)}
	if t.site != "all" {
		deps = append(deps, NewSiteBuild(t.env, "all"))
	}

	projects, err := t.env.Tree.SiteProjects(t.site)
	if err != nil {
		return nil, err
	}
	for _, dirname := range projects {
		project, err := NewBuildProject(t.env, dirname)
		if err != nil {
			return nil, err
		}
		deps = append(deps, project)
	}
	return deps, nil
}

func (t *SiteBuild) AlreadyBuilt() bool { return false }

func (t *SiteBuild) Updateable() bool { return true }

func (t *SiteBuild) Build(_ context.Context) error { return nil }

// SiteInstall creates the site directory and plants its project symlinks.
type SiteInstall struct {
	env  *Env
	site string
}

// NewSiteInstall creates the install target for a site.
func NewSiteInstall(env *Env, site string) *SiteInstall {
	return &SiteInstall{env: env, site: site}
}

func (t *SiteInstall) ID() domain.TargetID {
	return domain.TID("site-install", t.site)
}

func (t *SiteInstall) Dependencies() ([]resolver.Target, error) {
	deps := []resolver.Target{
		NewCoreInstall(t.env),
		NewSiteBuild(t.env, t.site),
	}
	if t.site == "all" {
		return deps, nil
	}
	deps = append(deps, NewSiteInstall(t.env, "all"))

	site, err := t.env.Tree.Site(t.site)
	if err != nil {
		return nil, err
	}
	if profile := site.CustomProfile(); profile != "" {
		deps = append(deps, NewProfileInstall(t.env, profile))
	}
	return deps, nil
}

func (t *SiteInstall) AlreadyBuilt() bool { return false }

func (t *SiteInstall) Updateable() bool { return true }

// Build replants the site's link tree. Planting is idempotent, existing links
// are replaced in place.
func (t *SiteInstall) Build(_ context.Context) error {
	site, err := t.env.Tree.Site(t.site)
	if err != nil {
		return err
	}
	return t.env.Files.PlantLinks(
		t.env.siteDir(t.site),
		site.Links,
		siteLinkDepth,
		t.env.Tree.ProjectsDir,
		t.env.Config.Overrides,
	)
}
