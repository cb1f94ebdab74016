package fstree

import (
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"go.trai.ch/zerr"
)

// NormalizePermissions rewrites the modes of everything below root to what a
// plain create would have produced under the current umask. Tarballs carry
// whatever modes their packer had, which breaks multi-user deployments.
func (t *Tree) NormalizePermissions(root string) error {
	umask := readUmask()
	dirPerm := os.FileMode(0o777 &^ umask)
	filePerm := os.FileMode(0o666 &^ umask)

	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to walk tree"), "path", p)
		}
		if p == root {
			return nil
		}

		perm := filePerm
		switch {
		case d.IsDir():
			perm = dirPerm
		case d.Type()&fs.ModeSymlink != 0:
			// Symlink modes are ignored by the kernel and chmod would
			// follow the link, possibly outside the tree.
			return nil
		}

		if err := os.Chmod(p, perm); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to normalize permissions"), "path", p)
		}
		return nil
	})
}

// readUmask reports the process umask. The umask cannot be read without
// writing it, so it is set and restored immediately.
func readUmask() int {
	umask := syscall.Umask(0)
	syscall.Umask(umask)
	return umask
}
