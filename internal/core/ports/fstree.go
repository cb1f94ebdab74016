package ports

import "go.trai.ch/drub/internal/core/domain"

// SyncOptions control a tree sync.
type SyncOptions struct {
	// Excludes are glob patterns relative to the sync roots. A trailing slash
	// restricts the pattern to directories. Excluded paths are neither copied
	// nor deleted.
	Excludes []string
	// OnlyMissing skips paths that already exist in the destination.
	OnlyMissing bool
	// Delete removes destination entries that have no counterpart in the
	// source. Without it the sync is a plain merge.
	Delete bool
}

// TreeWriter mutates the installed file tree.
//
//go:generate mockgen -source=fstree.go -destination=mocks/mock_fstree.go -package=mocks
type TreeWriter interface {
	// EnsureDir creates the directory and all parents.
	EnsureDir(path string) error
	// Exists reports whether the path exists.
	Exists(path string) bool
	// Rename moves a path into place.
	Rename(oldpath, newpath string) error
	// RemoveTree deletes a directory recursively.
	RemoveTree(path string) error
	// PlantLinks materializes a link tree below root as relative symlinks into
	// the projects directory. depth is the number of parent hops from root up
	// to the installation root holding the projects directory; overrides
	// redirect links by basename to an arbitrary path.
	PlantLinks(root string, links domain.LinkTree, depth int, projectsDir string, overrides map[string]string) error
	// Sync copies src into dst, optionally deleting extraneous destination
	// entries.
	Sync(src, dst string, opts SyncOptions) error
	// NormalizePermissions walks root setting directory and file modes derived
	// from the process umask.
	NormalizePermissions(root string) error
}
