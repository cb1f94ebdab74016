package domain

import (
	"net/url"
	"strings"
)

// Project is one buildable unit below the projects directory. Its pipeline is
// applied in order into the build directory.
type Project struct {
	Dirname   string
	Type      string
	Pipeline  []Resource
	Protected bool
	// Hash is the recipe hash over the raw project configuration. A build is
	// stale when its stored marker differs from this value.
	Hash string

	// Upstream release coordinates, set when Dirname parses as a drupal.org
	// package spec (e.g. "views-7.x-3.18+editablefields").
	Name    string
	Core    string
	Version string
	Patches []string
}

// IsDrupalOrg reports whether the project was recognized as a drupal.org release.
func (p *Project) IsDrupalOrg() bool {
	return p.Type == "drupal.org" && p.Name != ""
}

// Resource is one step of a project build pipeline: something to fetch and a
// way to apply it to the build directory.
type Resource struct {
	// URL locates the resource. Local paths are relative to the source dir.
	URL string
	// Hash is an optional sha1 pin for the downloaded file.
	Hash string
	// Type forces an applier ("git", "patch", "tarball") or marks a project
	// as "drupal.org" when set on the project level.
	Type     string
	Branch   string
	Revision string
	// Shallow controls git clone depth; nil means shallow.
	Shallow *bool
	// Devel gates the resource to devel-only (true) or production-only (false)
	// runs; nil applies always.
	Devel *bool
	// Exclude lists regexp patterns of archive paths to skip during extraction.
	Exclude []string
	// Filepath overrides the destination name for copied files.
	Filepath string
	// Purpose and Link are free-form documentation carried into makefiles.
	Purpose string
	Link    string
}

// IsSCM reports whether the resource refers to a source repository rather than
// a downloadable file.
func (r Resource) IsSCM() bool {
	return r.Type == "git" || r.Branch != "" || r.Revision != ""
}

// IsPatch reports whether the resource resolves to a patch file.
func (r Resource) IsPatch() bool {
	return strings.HasSuffix(r.URL, ".patch") || strings.HasSuffix(r.URL, ".diff") || r.Type == "patch"
}

// ShallowClone reports whether a git clone of this resource may be shallow.
func (r Resource) ShallowClone() bool {
	return r.Shallow == nil || *r.Shallow
}

// Scheme returns the URL scheme, or the empty string for plain paths.
func (r Resource) Scheme() string {
	u, err := url.Parse(r.URL)
	if err != nil {
		return ""
	}
	return u.Scheme
}

// SplitResourceURL separates a trailing "#sha1" pin from a resource URL.
func SplitResourceURL(raw string) (cleaned, hash string) {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		return raw[:i], raw[i+1:]
	}
	return raw, ""
}
