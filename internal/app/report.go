package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/makegen"
	"go.trai.ch/zerr"
)

// Report writes a consistency report: obsolete projects still sitting in the
// projects directory and defined projects no site references.
func (a *App) Report(ctx context.Context, cfg domain.RunConfig) error {
	tree, err := a.load(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Checking projects …")

	installed, err := installedProjects(cfg, tree)
	if err != nil {
		return err
	}

	if obsolete := obsoleteProjects(installed, tree); len(obsolete) > 0 {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Obsolete projects:")
		for _, name := range obsolete {
			fmt.Fprintf(a.out, "\t%s\n", name)
		}
	}

	used := tree.UsedProjects()
	var unused []string
	for _, name := range tree.DefinedProjects() {
		if !used[name] {
			unused = append(unused, name)
		}
	}
	if len(unused) > 0 {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Unused projects:")
		for _, name := range unused {
			fmt.Fprintf(a.out, "\t%s\n", name)
		}
	}

	return nil
}

// Clean deletes obsolete project builds, several at a time.
func (a *App) Clean(ctx context.Context, cfg domain.RunConfig) error {
	return a.locked(cfg, func() error {
		tree, err := a.load(ctx, cfg)
		if err != nil {
			return err
		}
		installed, err := installedProjects(cfg, tree)
		if err != nil {
			return err
		}

		obsolete := obsoleteProjects(installed, tree)
		if len(obsolete) == 0 {
			return nil
		}

		fmt.Fprintln(a.out, "Deleting obsolete projects …")
		g, _ := errgroup.WithContext(ctx)
		for _, name := range obsolete {
			dir := filepath.Join(cfg.InstallDir, tree.ProjectsDir, name)
			g.Go(func() error {
				return a.deps.Files.RemoveTree(dir)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		for _, name := range obsolete {
			fmt.Fprintf(a.out, "\t%s deleted.\n", name)
		}
		return nil
	})
}

// ConvertToMake emits a drush makefile for the configured tree.
func (a *App) ConvertToMake(ctx context.Context, cfg domain.RunConfig) error {
	tree, err := a.load(ctx, cfg)
	if err != nil {
		return err
	}
	return makegen.Write(a.out, tree)
}

// installedProjects lists the entries of the projects directory. A missing
// directory means nothing is installed yet.
func installedProjects(cfg domain.RunConfig, tree *domain.Tree) ([]string, error) {
	dir := filepath.Join(cfg.InstallDir, tree.ProjectsDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to list projects directory"), "dir", dir)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// obsoleteProjects returns the installed dirnames that are no longer defined,
// sorted. Rotation and temp leftovers of crashed builds count as obsolete too.
func obsoleteProjects(installed []string, tree *domain.Tree) []string {
	var obsolete []string
	for _, name := range installed {
		if _, ok := tree.Projects[name]; !ok {
			obsolete = append(obsolete, name)
		}
	}
	sort.Strings(obsolete)
	return obsolete
}
