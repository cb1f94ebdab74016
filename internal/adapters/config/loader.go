// Package config loads the tree and site configuration of a Drupal
// installation. Config files may include further files, local or remote, which
// are merged breadth-first with earlier files taking precedence.
package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dario.cat/mergo"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-viper/mapstructure/v2"
	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader reads the tree and site configuration files.
type Loader struct {
	fetcher ports.Fetcher
	hasher  ports.Hasher
	logger  ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(fetcher ports.Fetcher, hasher ports.Hasher, logger ports.Logger) *Loader {
	return &Loader{fetcher: fetcher, hasher: hasher, logger: logger}
}

// Load reads the project config from sourceDir, resolves and merges its
// includes, discovers the site configs next to it and returns the assembled
// tree.
func (l *Loader) Load(ctx context.Context, sourceDir, downloadDir string) (*domain.Tree, error) {
	path, err := l.findTreeConfig(sourceDir)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("loading tree configuration", "path", path)

	merged, err := l.readConfig(ctx, path, downloadDir)
	if err != nil {
		return nil, err
	}

	var schema treeSchema
	if err := mapstructure.Decode(merged, &schema); err != nil {
		return nil, zerr.Wrap(err, "failed to decode tree config")
	}
	schema.applyDefaults()

	tree := &domain.Tree{
		DocumentRoot: schema.DocumentRoot,
		ProjectsDir:  schema.ProjectsDir,
		DownloadDir:  schema.DownloadDir,
		Core: domain.CoreConfig{
			Project:   schema.Core.Project,
			Profiles:  schema.Core.Profiles,
			Protected: schema.Core.Protected,
		},
		Projects: make(map[string]*domain.Project, len(schema.Projects)),
		Sites:    make(map[string]*domain.Site),
	}

	for dirname, raw := range schema.Projects {
		if raw == nil {
			raw = map[string]any{}
		}
		project, err := l.buildProject(dirname, raw)
		if err != nil {
			return nil, err
		}
		tree.Projects[dirname] = project
	}

	if err := l.discoverSites(ctx, tree, sourceDir, downloadDir); err != nil {
		return nil, err
	}

	return tree, nil
}

// findTreeConfig locates the project config file in the source directory.
func (l *Loader) findTreeConfig(sourceDir string) (string, error) {
	matches, err := doublestar.Glob(os.DirFS(sourceDir), "project.*")
	if err != nil {
		return "", zerr.Wrap(err, "failed to scan source directory")
	}
	if len(matches) == 0 {
		return "", zerr.With(domain.ErrConfigNotFound, "source_dir", sourceDir)
	}
	sort.Strings(matches)
	return filepath.Join(sourceDir, matches[0]), nil
}

// discoverSites reads every *.site.* file next to the tree config. The site
// name is the file basename up to the first dot.
func (l *Loader) discoverSites(ctx context.Context, tree *domain.Tree, sourceDir, downloadDir string) error {
	matches, err := doublestar.Glob(os.DirFS(sourceDir), "*.site.*")
	if err != nil {
		return zerr.Wrap(err, "failed to scan for site configs")
	}
	sort.Strings(matches)

	for _, match := range matches {
		if strings.HasPrefix(match, ".") {
			continue
		}
		name := match[:strings.IndexByte(match, '.')]
		l.logger.Debug("loading site configuration", "site", name, "path", match)

		merged, err := l.readConfig(ctx, filepath.Join(sourceDir, match), downloadDir)
		if err != nil {
			return zerr.With(err, "site", name)
		}

		var schema siteSchema
		if err := mapstructure.Decode(merged, &schema); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to decode site config"), "site", name)
		}
		schema.applyDefaults(name)

		tree.Sites[name] = &domain.Site{
			Name:        name,
			Profile:     schema.Profile,
			DBURL:       schema.DBURL,
			SiteName:    schema.SiteName,
			SiteMail:    schema.SiteMail,
			AccountMail: schema.AccountMail,
			Links:       domain.LinkTree(schema.Links),
		}
	}

	// Every tree carries an "all" site for the projects shared between sites,
	// even when no config file declares one.
	if _, ok := tree.Sites["all"]; !ok {
		var schema siteSchema
		schema.applyDefaults("all")
		tree.Sites["all"] = &domain.Site{
			Name:    "all",
			Profile: schema.Profile,
			DBURL:   schema.DBURL,
			Links:   domain.LinkTree{},
		}
	}

	return nil
}

// include is one config file waiting to be merged, together with the
// directory its relative path is resolved against.
type include struct {
	relTo string
	url   string
}

// readConfig reads the config file at path and merges every included file
// into it, breadth-first. Keys an earlier file already set are never
// overridden, so an including file wins over its includes. Remote includes
// are cached below downloadDir.
func (l *Loader) readConfig(ctx context.Context, path, downloadDir string) (map[string]any, error) {
	merged := map[string]any{}
	queue := []include{{url: path}}

	for len(queue) > 0 {
		inc := queue[0]
		queue = queue[1:]

		url, hash := domain.SplitResourceURL(inc.url)
		local, err := l.fetcher.Fetch(ctx, domain.Resource{URL: url, Hash: hash}, inc.relTo, downloadDir)
		if err != nil {
			return nil, err
		}

		data, err := parseFile(local)
		if err != nil {
			return nil, err
		}

		if raw, ok := data["includes"]; ok {
			delete(data, "includes")
			var next []string
			if err := mapstructure.Decode(raw, &next); err != nil {
				return nil, zerr.With(zerr.Wrap(err, "includes must be a list of paths"), "path", local)
			}
			relTo := filepath.Dir(local)
			for _, u := range next {
				queue = append(queue, include{relTo: relTo, url: u})
			}
		}

		if err := mergo.Merge(&merged, data); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to merge config"), "path", local)
		}
	}

	return merged, nil
}
