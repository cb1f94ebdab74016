// Package targets defines the concrete build targets: the directory scaffold,
// project builds, core and site installation, database provisioning and the
// opcache reset. Targets reference each other through their Dependencies and
// leave ordering, deduplication and staleness to the resolver.
package targets

import (
	"context"
	"path/filepath"

	"go.trai.ch/drub/internal/adapters/shell"
	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/core/ports"
)

// Env bundles the run configuration, the loaded tree and the collaborators
// every target works with. One Env is shared by all targets of a run.
type Env struct {
	Config    domain.RunConfig
	Tree      *domain.Tree
	Fetcher   ports.Fetcher
	Applier   ports.Applier
	Files     ports.TreeWriter
	Markers   ports.MarkerStore
	Commander ports.Commander
	Cache     ports.CacheResetter
	Logger    ports.Logger
}

// Parent hops from a link's directory up to the installation root: the
// document root is one hop away, profiles/ below it two, sites/<name> three.
const (
	profileLinkDepth = 2
	siteLinkDepth    = 3
)

// projectsRoot returns the directory all project builds live in.
func (e *Env) projectsRoot() string {
	return filepath.Join(e.Config.InstallDir, e.Tree.ProjectsDir)
}

// projectDir returns the build directory of one project.
func (e *Env) projectDir(dirname string) string {
	return filepath.Join(e.Config.InstallDir, e.Tree.ProjectsDir, dirname)
}

// documentRoot returns the installed document root.
func (e *Env) documentRoot() string {
	return filepath.Join(e.Config.InstallDir, e.Tree.DocumentRoot)
}

// siteDir returns the site directory below the document root.
func (e *Env) siteDir(site string) string {
	return filepath.Join(e.documentRoot(), "sites", site)
}

// drush runs the configured drush command line with the given arguments
// appended, routing output into the current telemetry vertex.
func (e *Env) drush(ctx context.Context, args ...string) error {
	parts, err := shell.SplitCommandLine(e.Config.Drush)
	if err != nil {
		return err
	}

	cmd := domain.Command{Name: parts[0], Args: append(parts[1:], args...)}
	if v, ok := ports.VertexFromContext(ctx); ok {
		cmd.Stdout = v.Stdout()
		cmd.Stderr = v.Stderr()
	}
	return e.Commander.Run(ctx, cmd)
}
