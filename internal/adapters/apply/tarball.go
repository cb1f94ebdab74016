package apply

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	getter "github.com/hashicorp/go-getter"
	cp "github.com/otiai10/copy"
	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/zerr"
)

// extractArchive unpacks an archive into the build directory. A single top
// level directory wrapping the archive contents is stripped, exclude patterns
// are matched against the stripped paths, and the resulting modes are
// normalized to the process umask.
func (a *Applier) extractArchive(ctx context.Context, res domain.Resource, localpath, dir string) error {
	key := archiveKey(localpath)
	if key == "" {
		if res.Type != "tarball" {
			return domain.ErrNotApplicable
		}
		return zerr.With(zerr.New("unsupported archive format"), "file", localpath)
	}

	excludes, err := compileExcludes(res.Exclude)
	if err != nil {
		return err
	}

	tmp, err := os.MkdirTemp(filepath.Dir(dir), ".extract-")
	if err != nil {
		return zerr.Wrap(err, "failed to create extraction directory")
	}
	defer os.RemoveAll(tmp) //nolint:errcheck // Best effort cleanup in defer

	a.logger.Debug("extracting archive", "file", localpath, "dir", dir)

	if err := getter.Decompressors[key].Decompress(tmp, localpath, true, 0); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to extract archive"), "file", localpath)
	}

	root := tmp
	entries, err := os.ReadDir(tmp)
	if err != nil {
		return zerr.Wrap(err, "failed to list extracted files")
	}
	if len(entries) == 1 && entries[0].IsDir() {
		root = filepath.Join(tmp, entries[0].Name())
	}

	err = cp.Copy(root, dir, cp.Options{
		OnSymlink:   func(string) cp.SymlinkAction { return cp.Shallow },
		OnDirExists: func(string, string) cp.DirExistsAction { return cp.Merge },
		Skip: func(info os.FileInfo, srcPath, destPath string) (bool, error) {
			rel, err := filepath.Rel(root, srcPath)
			if err != nil {
				return false, err
			}
			if rel == "." {
				return false, nil
			}
			rel = filepath.ToSlash(rel)
			for _, pattern := range excludes {
				if pattern.MatchString(rel) {
					return true, nil
				}
			}
			return false, nil
		},
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to place extracted files"), "dir", dir)
	}

	return a.tree.NormalizePermissions(dir)
}

// archiveKey returns the decompressor key whose extension matches the file,
// preferring the longest match so "x.tar.gz" resolves to tar.gz and not gz.
func archiveKey(path string) string {
	best := ""
	for k := range getter.Decompressors {
		if strings.HasSuffix(path, "."+k) && len(k) > len(best) {
			best = k
		}
	}
	return best
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid exclude pattern"), "pattern", p)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}
