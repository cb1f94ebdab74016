package domain

import "path/filepath"

// RunConfig carries the per-invocation settings shared by commands, the
// resolver and the concrete targets.
type RunConfig struct {
	// SourceDir holds the tree and site configuration files.
	SourceDir string
	// InstallDir is the root everything is built and installed under.
	InstallDir string
	// DownloadDir caches fetched files. Empty selects <InstallDir>/downloads.
	DownloadDir string
	// OverridesDir is the base for relative --override paths.
	OverridesDir string
	// Overrides redirects symlinks by basename to an absolute path.
	Overrides map[string]string
	// Drush is the drush command line, split shell-style before use.
	Drush string
	// DBPrefix is prepended to the database name during db-install.
	DBPrefix string

	OpcacheResetURL string
	OpcacheResetKey string

	Rebuild bool
	Update  bool
	DryRun  bool
	Verbose bool
	Debug   bool
	Devel   bool
}

// ResolveDownloadDir returns the effective download directory.
func (c RunConfig) ResolveDownloadDir() string {
	if c.DownloadDir != "" {
		return c.DownloadDir
	}
	return filepath.Join(c.InstallDir, "downloads")
}
