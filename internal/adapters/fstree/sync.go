package fstree

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	cp "github.com/otiai10/copy"
	"go.trai.ch/drub/internal/core/ports"
	"go.trai.ch/zerr"
)

// Sync copies src into dst with symlinks kept as symlinks and timestamps
// preserved. With Delete set, destination entries missing from the source are
// removed first. Excluded paths are left alone on both sides.
func (t *Tree) Sync(src, dst string, opts ports.SyncOptions) error {
	if err := t.EnsureDir(dst); err != nil {
		return err
	}

	matcher := newExcludeMatcher(opts.Excludes)

	if opts.Delete {
		if err := t.deleteExtraneous(src, dst, matcher); err != nil {
			return err
		}
	}

	err := cp.Copy(src, dst, cp.Options{
		OnSymlink:     func(string) cp.SymlinkAction { return cp.Shallow },
		OnDirExists:   func(string, string) cp.DirExistsAction { return cp.Merge },
		PreserveTimes: true,
		Skip: func(info os.FileInfo, srcPath, destPath string) (bool, error) {
			rel, err := filepath.Rel(src, srcPath)
			if err != nil {
				return false, err
			}
			if rel == "." {
				return false, nil
			}
			if matcher.Match(filepath.ToSlash(rel), info.IsDir()) {
				return true, nil
			}
			if opts.OnlyMissing && !info.IsDir() {
				if _, err := os.Lstat(destPath); err == nil {
					return true, nil
				}
			}
			return false, nil
		},
	})
	if err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "failed to sync tree"), "src", src), "dst", dst)
	}

	return nil
}

// deleteExtraneous removes destination entries that have no counterpart in
// the source. Excluded paths survive, and their subtrees are not descended.
func (t *Tree) deleteExtraneous(src, dst string, matcher *excludeMatcher) error {
	return filepath.WalkDir(dst, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to walk tree"), "path", p)
		}
		if p == dst {
			return nil
		}

		rel, err := filepath.Rel(dst, p)
		if err != nil {
			return err
		}

		if matcher.Match(filepath.ToSlash(rel), d.IsDir()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		_, statErr := os.Lstat(filepath.Join(src, rel))
		if statErr == nil {
			return nil
		}
		if !errors.Is(statErr, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(statErr, "failed to stat source"), "path", rel)
		}

		t.logger.Debug("deleting extraneous entry", "path", p)

		if err := os.RemoveAll(p); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to delete extraneous entry"), "path", p)
		}
		if d.IsDir() {
			return fs.SkipDir
		}
		return nil
	})
}

// excludeMatcher applies rsync-flavoured exclude patterns: a trailing slash
// restricts the pattern to directories, a pattern containing a slash is
// anchored at the sync root, a bare pattern matches basenames at any depth.
type excludeMatcher struct {
	patterns []excludePattern
}

type excludePattern struct {
	glob     string
	dirOnly  bool
	anchored bool
}

func newExcludeMatcher(patterns []string) *excludeMatcher {
	m := &excludeMatcher{patterns: make([]excludePattern, 0, len(patterns))}
	for _, p := range patterns {
		dirOnly := strings.HasSuffix(p, "/")
		glob := strings.TrimSuffix(p, "/")
		m.patterns = append(m.patterns, excludePattern{
			glob:     glob,
			dirOnly:  dirOnly,
			anchored: strings.Contains(glob, "/"),
		})
	}
	return m
}

// Match reports whether the slash-separated relative path is excluded.
func (m *excludeMatcher) Match(rel string, isDir bool) bool {
	for _, p := range m.patterns {
		if p.dirOnly && !isDir {
			continue
		}
		name := rel
		if !p.anchored {
			name = path.Base(rel)
		}
		if ok, err := doublestar.Match(p.glob, name); err == nil && ok {
			return true
		}
	}
	return false
}
