package domain

import (
	"fmt"
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// packagePattern matches drupal.org release directory names:
// project, core compatibility, and a release, dev snapshot or pre-release.
var packagePattern = regexp.MustCompile(
	`^([a-z0-9_]+)-(\d+\.x)-(\d+\.x-dev|\d+\.\d+(?:-(?:alpha|beta|rc)\d+)?)$`,
)

const drupalOrgFileURL = "https://ftp.drupal.org/files/projects/%s-%s-%s.tar.gz"

// SplitPackageName splits a project dirname into its drupal.org coordinates.
// Patch suffixes are separated from the package spec and one another by '+',
// e.g. "views-7.x-3.18+fix-exposed-filters". Returns ErrNotApplicable when the
// name is no valid package spec.
func SplitPackageName(dirname string) (project, core, version string, patches []string, err error) {
	parts := strings.Split(dirname, "+")
	name := parts[0]
	m := packagePattern.FindStringSubmatch(name)
	if m == nil {
		return "", "", "", nil, zerr.With(ErrNotApplicable, "package", name)
	}
	return m[1], m[2], m[3], parts[1:], nil
}

// DrupalOrgDownloadURL returns the release tarball URL for the given coordinates.
func DrupalOrgDownloadURL(project, core, version string) string {
	return fmt.Sprintf(drupalOrgFileURL, project, core, version)
}
