package domain

import (
	"sort"
	"strings"

	"go.trai.ch/zerr"
)

// Tree is the configuration for one Drupal installation: a single core,
// the contributed projects it needs, and the sites sharing the document root.
type Tree struct {
	DocumentRoot string
	ProjectsDir  string
	DownloadDir  string
	Core         CoreConfig
	Projects     map[string]*Project
	Sites        map[string]*Site
}

// CoreConfig describes the Drupal core of a tree.
type CoreConfig struct {
	// Project is the dirname of the project providing the core files.
	Project string
	// Profiles maps custom profile names to their path below the projects directory.
	Profiles map[string]string
	// Protected lists document-root-relative paths the core install must never
	// overwrite or delete.
	Protected []string
}

// Project returns the project with the given dirname.
func (t *Tree) Project(dirname string) (*Project, error) {
	p, ok := t.Projects[dirname]
	if !ok {
		return nil, zerr.With(ErrUnknownProject, "project", dirname)
	}
	return p, nil
}

// Site returns the site with the given name.
func (t *Tree) Site(name string) (*Site, error) {
	s, ok := t.Sites[name]
	if !ok {
		return nil, zerr.With(ErrUnknownSite, "site", name)
	}
	return s, nil
}

// ProfileSource returns the projects-dir-relative path backing a custom profile.
func (t *Tree) ProfileSource(profile string) (string, error) {
	src, ok := t.Core.Profiles[profile]
	if !ok {
		return "", zerr.With(ErrUnknownProfile, "profile", profile)
	}
	return src, nil
}

// SiteNames returns all configured site names in sorted order.
func (t *Tree) SiteNames() []string {
	names := make([]string, 0, len(t.Sites))
	for name := range t.Sites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SiteProjects returns the dirnames of every project the site references:
// each symlink leaf plus the project backing a custom profile. Duplicate
// references are preserved; the resolver deduplicates by target identity.
func (t *Tree) SiteProjects(name string) ([]string, error) {
	site, err := t.Site(name)
	if err != nil {
		return nil, err
	}
	projects := site.LinkedProjects()
	if profile := site.CustomProfile(); profile != "" {
		src, err := t.ProfileSource(profile)
		if err != nil {
			return nil, err
		}
		projects = append(projects, ProjectFromLinkPath(src))
	}
	return projects, nil
}

// DefinedProjects returns the dirnames of all configured projects, sorted.
func (t *Tree) DefinedProjects() []string {
	names := make([]string, 0, len(t.Projects))
	for name := range t.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UsedProjects returns the set of project dirnames referenced by any site,
// plus the core project.
func (t *Tree) UsedProjects() map[string]bool {
	used := make(map[string]bool)
	for name := range t.Sites {
		projects, err := t.SiteProjects(name)
		if err != nil {
			continue
		}
		for _, p := range projects {
			used[p] = true
		}
	}
	used[t.Core.Project] = true
	return used
}

// Site is the configuration of one site in a multi-site tree.
type Site struct {
	Name        string
	Profile     string
	DBURL       string
	SiteName    string
	SiteMail    string
	AccountMail string
	// Links is the nested symlink layout below the site directory: a string
	// value is a symlink to that projects-dir-relative path, a nested map is a
	// subdirectory.
	Links LinkTree
}

// CustomProfile returns the site's profile name unless it is one of the
// profiles shipped with core, in which case there is nothing to install.
func (s *Site) CustomProfile() string {
	if BuiltinProfiles[s.Profile] {
		return ""
	}
	return s.Profile
}

// LinkedProjects returns the project dirname behind every symlink leaf of the
// site's link tree, in breadth-first order with sorted siblings.
func (s *Site) LinkedProjects() []string {
	var projects []string
	queue := []LinkTree{s.Links}
	for len(queue) > 0 {
		links := queue[0]
		queue = queue[1:]
		for _, name := range links.SortedNames() {
			switch v := links[name].(type) {
			case string:
				projects = append(projects, ProjectFromLinkPath(v))
			case LinkTree:
				queue = append(queue, v)
			case map[string]any:
				queue = append(queue, LinkTree(v))
			}
		}
	}
	return projects
}

// LinkTree is a nested mapping of directory entries to either a symlink
// destination (string) or a further LinkTree (decoded as map[string]any).
type LinkTree map[string]any

// SortedNames returns the entry names in deterministic order.
func (l LinkTree) SortedNames() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProjectFromLinkPath extracts the project dirname from a symlink destination.
// The link may point into a sub-directory of the project.
func ProjectFromLinkPath(path string) string {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
