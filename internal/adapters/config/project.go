package config

import (
	"errors"

	"github.com/go-viper/mapstructure/v2"
	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/zerr"
)

// buildProject assembles one project from its raw configuration. The recipe
// hash is computed over the normalized raw mapping before the pipeline is
// interpreted, so any config change invalidates existing builds.
func (l *Loader) buildProject(dirname string, raw map[string]any) (*domain.Project, error) {
	raw["dirname"] = dirname
	normalizeRawProject(raw)

	hash, err := l.hasher.HashRecipe(raw)
	if err != nil {
		return nil, zerr.With(err, "project", dirname)
	}

	var schema projectSchema
	if err := mapstructure.Decode(raw, &schema); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to decode project config"), "project", dirname)
	}

	pipeline := make([]domain.Resource, 0, len(schema.Build)+1)
	for _, entry := range schema.Build {
		res, err := decodeResource(entry)
		if err != nil {
			return nil, zerr.With(err, "project", dirname)
		}
		pipeline = append(pipeline, res)
	}

	project := &domain.Project{
		Dirname:   dirname,
		Type:      schema.Type,
		Pipeline:  pipeline,
		Protected: schema.Protected,
		Hash:      hash,
	}

	name, core, version, patches, err := domain.SplitPackageName(dirname)
	switch {
	case err == nil:
		project.Name, project.Core, project.Version, project.Patches = name, core, version, patches
		// Prepend the release download unless the pipeline already starts
		// with something other than a patch.
		if len(project.Pipeline) == 0 || project.Pipeline[0].IsPatch() {
			release := domain.Resource{
				URL:  domain.DrupalOrgDownloadURL(name, core, version),
				Hash: schema.Hash,
			}
			project.Pipeline = append([]domain.Resource{release}, project.Pipeline...)
		}
		if project.Type == "" {
			project.Type = "drupal.org"
		}
	case !errors.Is(err, domain.ErrNotApplicable):
		return nil, zerr.With(err, "project", dirname)
	}

	return project, nil
}

// normalizeRawProject fills in the keys every project carries, so a config
// spelling out a default value hashes the same as one omitting it.
func normalizeRawProject(raw map[string]any) {
	if _, ok := raw["type"]; !ok {
		raw["type"] = nil
	}
	if _, ok := raw["build"]; !ok {
		raw["build"] = []any{}
	}
	if _, ok := raw["protected"]; !ok {
		raw["protected"] = false
	}
}
