package domain

import "go.trai.ch/zerr"

var (
	// ErrDependencyCycle is returned when the target graph contains a cycle.
	ErrDependencyCycle = zerr.New("dependency cycle detected")

	// ErrUnknownSite is returned when a referenced site has no configuration.
	ErrUnknownSite = zerr.New("unknown site")

	// ErrUnknownProject is returned when a referenced project is not defined in the tree.
	ErrUnknownProject = zerr.New("unknown project")

	// ErrUnknownProfile is returned when a site references a profile the core does not declare.
	ErrUnknownProfile = zerr.New("unknown profile")

	// ErrNotApplicable signals that an implementation does not handle the given
	// resource. Factories probe candidates in order and swallow exactly this error.
	ErrNotApplicable = zerr.New("not applicable")

	// ErrNoMatchingImplementation is returned when no candidate accepted a resource.
	ErrNoMatchingImplementation = zerr.New("no matching implementation")

	// ErrCommandFailed is returned when a subprocess exits non-zero.
	ErrCommandFailed = zerr.New("command failed")

	// ErrCommandNotFound is returned when a command is not in PATH.
	ErrCommandNotFound = zerr.New("command not found")

	// ErrChecksumMismatch is returned when a downloaded file does not match its pinned hash.
	ErrChecksumMismatch = zerr.New("checksum mismatch")

	// ErrCacheResetFailed is returned when the opcache reset endpoint reports an error.
	ErrCacheResetFailed = zerr.New("cache reset failed")

	// ErrBuildExecutionFailed is returned when a target build fails during execution.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrNoSitesSpecified is returned when a command needs sites and none were given or guessed.
	ErrNoSitesSpecified = zerr.New("no sites specified")

	// ErrNoInstallDir is returned when neither the flag nor the environment names an install directory.
	ErrNoInstallDir = zerr.New("no install directory specified")

	// ErrConfigNotFound is returned when the source directory has no project config file.
	ErrConfigNotFound = zerr.New("project configuration not found")

	// ErrInstallDirLocked is returned when another drub process holds the install directory lock.
	ErrInstallDirLocked = zerr.New("install directory is locked by another process")
)
