// Package apply turns fetched resources into build directory contents.
// Resources are probed in a fixed order: repository clone, patch, archive
// extraction, file copy and directory merge. The first applier accepting the
// resource wins.
package apply

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"
	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Applier = (*Applier)(nil)

// Applier implements ports.Applier.
type Applier struct {
	commander ports.Commander
	tree      ports.TreeWriter
	logger    ports.Logger
}

// NewApplier creates a new Applier.
func NewApplier(commander ports.Commander, tree ports.TreeWriter, logger ports.Logger) *Applier {
	return &Applier{
		commander: commander,
		tree:      tree,
		logger:    logger,
	}
}

type applyFunc func(ctx context.Context, res domain.Resource, localpath, dir string) error

// Apply extracts, copies, clones or patches localpath into dir.
func (a *Applier) Apply(ctx context.Context, res domain.Resource, localpath, dir string) error {
	appliers := []applyFunc{
		a.cloneRepository,
		a.applyPatch,
		a.extractArchive,
		a.copyFile,
		a.mergeDirectory,
	}

	for _, try := range appliers {
		err := try(ctx, res, localpath, dir)
		if errors.Is(err, domain.ErrNotApplicable) {
			continue
		}
		return err
	}

	return zerr.With(zerr.Wrap(domain.ErrNoMatchingImplementation, "no applier accepts this resource"), "url", res.URL)
}

// applyPatch runs patch(1) against the build directory.
func (a *Applier) applyPatch(ctx context.Context, res domain.Resource, localpath, dir string) error {
	if !res.IsPatch() {
		return domain.ErrNotApplicable
	}

	cmd := domain.Command{
		Name: "patch",
		Args: []string{"--no-backup-if-mismatch", "-p1", "-d", dir, "-i", localpath},
	}
	if v, ok := ports.VertexFromContext(ctx); ok {
		cmd.Stdout, cmd.Stderr = v.Stdout(), v.Stderr()
	}

	if err := a.commander.Run(ctx, cmd); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to apply patch"), "patch", localpath)
	}

	return nil
}

// copyFile places a single file into the build directory, renamed when the
// resource carries a filepath override.
func (a *Applier) copyFile(ctx context.Context, res domain.Resource, localpath, dir string) error {
	info, err := os.Stat(localpath)
	if err != nil || !info.Mode().IsRegular() {
		return domain.ErrNotApplicable
	}

	name := res.Filepath
	if name == "" {
		name = filepath.Base(res.URL)
	}

	if err := cp.Copy(localpath, filepath.Join(dir, name)); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to copy file"), "file", localpath)
	}

	return nil
}

// mergeDirectory copies a directory's contents over the build directory
// without deleting anything already there.
func (a *Applier) mergeDirectory(ctx context.Context, res domain.Resource, localpath, dir string) error {
	info, err := os.Stat(localpath)
	if err != nil || !info.IsDir() {
		return domain.ErrNotApplicable
	}

	if err := a.tree.Sync(localpath, dir, ports.SyncOptions{}); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to merge directory"), "src", localpath)
	}

	return nil
}
