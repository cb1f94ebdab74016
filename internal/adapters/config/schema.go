package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// treeSchema mirrors the merged project configuration.
type treeSchema struct {
	DocumentRoot string                    `mapstructure:"documentRoot"`
	ProjectsDir  string                    `mapstructure:"projectsDir"`
	DownloadDir  string                    `mapstructure:"downloadDir"`
	Core         coreSchema                `mapstructure:"core"`
	Projects     map[string]map[string]any `mapstructure:"projects"`
}

type coreSchema struct {
	Project   string            `mapstructure:"project"`
	Profiles  map[string]string `mapstructure:"profiles"`
	Protected []string          `mapstructure:"protected"`
}

func (s *treeSchema) applyDefaults() {
	if s.DocumentRoot == "" {
		s.DocumentRoot = "htdocs"
	}
	if s.ProjectsDir == "" {
		s.ProjectsDir = "projects"
	}
	if s.DownloadDir == "" {
		s.DownloadDir = "downloads"
	}
}

// siteSchema mirrors one merged *.site.* configuration.
type siteSchema struct {
	Profile     string         `mapstructure:"profile"`
	DBURL       string         `mapstructure:"db-url"`
	SiteName    string         `mapstructure:"site-name"`
	SiteMail    string         `mapstructure:"site-mail"`
	AccountMail string         `mapstructure:"account-mail"`
	Links       map[string]any `mapstructure:"links"`
}

func (s *siteSchema) applyDefaults(name string) {
	if s.Profile == "" {
		s.Profile = "standard"
	}
	if s.DBURL == "" {
		s.DBURL = "dpl:dplpw@localhost/" + name
	}
}

// projectSchema mirrors one entry of the projects section. The raw mapping is
// hashed separately, so unknown keys still invalidate builds.
type projectSchema struct {
	Type      string `mapstructure:"type"`
	Build     []any  `mapstructure:"build"`
	Protected bool   `mapstructure:"protected"`
	Hash      string `mapstructure:"hash"`
}

// resourceSchema mirrors one pipeline entry written as a mapping.
type resourceSchema struct {
	URL      string   `mapstructure:"url"`
	Hash     string   `mapstructure:"hash"`
	Type     string   `mapstructure:"type"`
	Branch   string   `mapstructure:"branch"`
	Revision string   `mapstructure:"revision"`
	Shallow  *bool    `mapstructure:"shallow"`
	Devel    *bool    `mapstructure:"devel"`
	Exclude  []string `mapstructure:"exclude"`
	Filepath string   `mapstructure:"filepath"`
	Purpose  string   `mapstructure:"purpose"`
	Link     string   `mapstructure:"link"`
}

// decodeResource turns one pipeline entry into a resource. A plain string is
// a URL, optionally carrying a "#sha1" pin; a mapping is decoded field by
// field with an explicit hash key taking precedence over the pin.
func decodeResource(entry any) (domain.Resource, error) {
	if raw, ok := entry.(string); ok {
		url, hash := domain.SplitResourceURL(raw)
		return domain.Resource{URL: url, Hash: hash}, nil
	}

	var schema resourceSchema
	if err := mapstructure.Decode(entry, &schema); err != nil {
		return domain.Resource{}, zerr.Wrap(err, "failed to decode pipeline entry")
	}

	url, pin := domain.SplitResourceURL(schema.URL)
	if schema.Hash == "" {
		schema.Hash = pin
	}

	return domain.Resource{
		URL:      url,
		Hash:     schema.Hash,
		Type:     schema.Type,
		Branch:   schema.Branch,
		Revision: schema.Revision,
		Shallow:  schema.Shallow,
		Devel:    schema.Devel,
		Exclude:  schema.Exclude,
		Filepath: schema.Filepath,
		Purpose:  schema.Purpose,
		Link:     schema.Link,
	}, nil
}

// parseFile decodes a single config file based on its extension.
func parseFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from user config
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var parsed map[string]any
	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(data, &parsed); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
		}
	default:
		return nil, zerr.With(zerr.New("unsupported config format"), "path", path)
	}

	return parsed, nil
}
