package fstree

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/zerr"
)

type linkJob struct {
	path  string
	hops  int
	entry any
}

// PlantLinks materializes a link tree below root. String entries become
// relative symlinks into the projects directory, nested trees become
// subdirectories whose links climb one level further. An entry whose basename
// appears in overrides links to the override path instead.
func (t *Tree) PlantLinks(root string, links domain.LinkTree, depth int, projectsDir string, overrides map[string]string) error {
	if err := t.EnsureDir(root); err != nil {
		return err
	}

	queue := make([]linkJob, 0, len(links))
	for _, name := range links.SortedNames() {
		queue = append(queue, linkJob{path: filepath.Join(root, name), hops: depth, entry: links[name]})
	}

	for len(queue) > 0 {
		job := queue[0]
		queue = queue[1:]

		if dest, ok := job.entry.(string); ok {
			target := filepath.Join(strings.Repeat("../", job.hops)+projectsDir, dest)
			if override, ok := overrides[filepath.Base(job.path)]; ok {
				target = override
			}
			if err := t.replaceLink(job.path, target); err != nil {
				return err
			}
			continue
		}

		subtree, ok := asLinkTree(job.entry)
		if !ok {
			return zerr.With(zerr.New("link entry is neither a path nor a nested tree"), "path", job.path)
		}
		if err := t.EnsureDir(job.path); err != nil {
			return err
		}
		for _, name := range subtree.SortedNames() {
			queue = append(queue, linkJob{path: filepath.Join(job.path, name), hops: job.hops + 1, entry: subtree[name]})
		}
	}

	return nil
}

// replaceLink removes whatever sits at path and creates the symlink. Dangling
// links count as present and are replaced too.
func (t *Tree) replaceLink(path, target string) error {
	if _, err := os.Lstat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to replace existing link"), "path", path)
		}
	}

	t.logger.Debug("planting symlink", "path", path, "target", target)

	if err := os.Symlink(target, path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create symlink"), "path", path)
	}

	return nil
}

func asLinkTree(entry any) (domain.LinkTree, bool) {
	switch v := entry.(type) {
	case domain.LinkTree:
		return v, true
	case map[string]any:
		return v, true
	}
	return nil, false
}
