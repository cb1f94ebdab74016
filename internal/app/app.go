// Package app implements the drub commands on top of the resolver and the
// concrete target set.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/core/ports"
	"go.trai.ch/drub/internal/engine/resolver"
	"go.trai.ch/drub/internal/engine/targets"
	"go.trai.ch/zerr"
)

// Deps bundles the adapters every command works with.
type Deps struct {
	Loader    ports.ConfigLoader
	Fetcher   ports.Fetcher
	Applier   ports.Applier
	Files     ports.TreeWriter
	Markers   ports.MarkerStore
	Commander ports.Commander
	Cache     ports.CacheResetter
	Telemetry ports.Telemetry
	Logger    ports.Logger
}

// App represents the main application logic.
type App struct {
	deps Deps
	out  io.Writer
}

// New creates a new App instance writing report and makefile output to stdout.
func New(deps Deps) *App {
	return &App{deps: deps, out: os.Stdout}
}

// SetOut redirects report and makefile output. Used for testing.
func (a *App) SetOut(w io.Writer) {
	a.out = w
}

// Build builds the core and every project the requested sites reference.
func (a *App) Build(ctx context.Context, cfg domain.RunConfig, siteArgs []string) error {
	return a.locked(cfg, func() error {
		env, sites, err := a.prepare(ctx, cfg, siteArgs)
		if err != nil {
			return err
		}

		roots := make([]resolver.Target, 0, len(sites))
		for _, site := range sites {
			roots = append(roots, targets.NewSiteBuild(env, site))
		}
		return a.run(ctx, cfg, roots)
	})
}

// Install builds and installs the requested sites, followed by one opcache
// reset covering them all.
func (a *App) Install(ctx context.Context, cfg domain.RunConfig, siteArgs []string) error {
	return a.locked(cfg, func() error {
		env, sites, err := a.prepare(ctx, cfg, siteArgs)
		if err != nil {
			return err
		}

		roots := make([]resolver.Target, 0, len(sites)+1)
		for _, site := range sites {
			roots = append(roots, targets.NewSiteInstall(env, site))
		}
		roots = append(roots, targets.NewResetCache(env, sites))
		return a.run(ctx, cfg, roots)
	})
}

// DBInstall builds, installs and provisions the databases of the requested
// sites.
func (a *App) DBInstall(ctx context.Context, cfg domain.RunConfig, siteArgs []string) error {
	return a.locked(cfg, func() error {
		env, sites, err := a.prepare(ctx, cfg, siteArgs)
		if err != nil {
			return err
		}

		roots := make([]resolver.Target, 0, len(sites)+1)
		for _, site := range sites {
			roots = append(roots, targets.NewDBInstall(env, site))
		}
		roots = append(roots, targets.NewResetCache(env, sites))
		return a.run(ctx, cfg, roots)
	})
}

// prepare loads the tree, expands the site arguments and assembles the target
// environment for one run.
func (a *App) prepare(ctx context.Context, cfg domain.RunConfig, siteArgs []string) (*targets.Env, []string, error) {
	tree, err := a.load(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	sites, err := resolveSites(tree, siteArgs)
	if err != nil {
		return nil, nil, err
	}
	return a.newEnv(cfg, tree), sites, nil
}

func (a *App) load(ctx context.Context, cfg domain.RunConfig) (*domain.Tree, error) {
	return a.deps.Loader.Load(ctx, cfg.SourceDir, cfg.ResolveDownloadDir())
}

func (a *App) newEnv(cfg domain.RunConfig, tree *domain.Tree) *targets.Env {
	return &targets.Env{
		Config:    cfg,
		Tree:      tree,
		Fetcher:   a.deps.Fetcher,
		Applier:   a.deps.Applier,
		Files:     a.deps.Files,
		Markers:   a.deps.Markers,
		Commander: a.deps.Commander,
		Cache:     a.deps.Cache,
		Logger:    a.deps.Logger,
	}
}

// resolveSites expands the site arguments: "*" selects every configured site,
// no argument falls back to the working directory's basename when it names a
// configured site.
func resolveSites(tree *domain.Tree, args []string) ([]string, error) {
	for _, arg := range args {
		if arg == "*" {
			return tree.SiteNames(), nil
		}
	}
	if len(args) > 0 {
		return args, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to determine working directory")
	}
	name := filepath.Base(wd)
	if _, err := tree.Site(name); err == nil {
		return []string{name}, nil
	}
	return nil, domain.ErrNoSitesSpecified
}

// run resolves and executes the given roots. A build failure has already been
// reported through telemetry and the logger, so it collapses into
// ErrBuildExecutionFailed and the CLI exits without repeating it.
func (a *App) run(ctx context.Context, cfg domain.RunConfig, roots []resolver.Target) error {
	telemetry := a.deps.Telemetry
	if cfg.DryRun {
		telemetry = nil
	}

	r := resolver.New(resolver.Options{
		Rebuild: cfg.Rebuild,
		Update:  cfg.Update,
		DryRun:  cfg.DryRun,
		Verbose: cfg.Verbose || cfg.DryRun,
		Debug:   cfg.Debug,
	}, a.deps.Logger, telemetry)

	if err := r.Resolve(roots...); err != nil {
		return err
	}

	err := r.Execute(ctx)
	if telemetry != nil {
		if cerr := telemetry.Close(); cerr != nil {
			a.deps.Logger.Warn("failed to flush telemetry", "error", cerr.Error())
		}
	}
	if err != nil {
		a.deps.Logger.Error(err)
		return domain.ErrBuildExecutionFailed
	}
	return nil
}

// locked runs fn holding the exclusive lock that keeps concurrent drub runs
// off the same install directory.
func (a *App) locked(cfg domain.RunConfig, fn func() error) error {
	if err := a.deps.Files.EnsureDir(cfg.InstallDir); err != nil {
		return err
	}

	lock := flock.New(filepath.Join(cfg.InstallDir, domain.LockFileName))
	acquired, err := lock.TryLock()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to acquire install directory lock"), "path", lock.Path())
	}
	if !acquired {
		return zerr.With(domain.ErrInstallDirLocked, "path", lock.Path())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			a.deps.Logger.Warn("failed to release install directory lock", "error", err.Error())
		}
	}()

	return fn()
}
