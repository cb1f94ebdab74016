// Package fstree mutates the installed file tree: directory bookkeeping, the
// symlink forests pointing sites at their projects, and the rsync-style
// mirroring of the built core into the document root.
package fstree

import (
	"os"

	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TreeWriter = (*Tree)(nil)

// Tree implements ports.TreeWriter on the local filesystem.
type Tree struct {
	logger ports.Logger
}

// NewTree creates a new Tree.
func NewTree(logger ports.Logger) *Tree {
	return &Tree{logger: logger}
}

// EnsureDir creates the directory and all parents.
func (t *Tree) EnsureDir(path string) error {
	if err := os.MkdirAll(path, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "dir", path)
	}

	return nil
}

// Exists reports whether the path exists. Dangling symlinks count as existing.
func (t *Tree) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Rename moves a path into place.
func (t *Tree) Rename(oldpath, newpath string) error {
	if err := os.Rename(oldpath, newpath); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "failed to rename"), "from", oldpath), "to", newpath)
	}

	return nil
}

// RemoveTree deletes a directory recursively.
func (t *Tree) RemoveTree(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove tree"), "dir", path)
	}

	return nil
}
