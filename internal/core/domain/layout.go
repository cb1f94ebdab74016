package domain

const (
	// MarkerFileName is the name of the recipe-hash marker written into every
	// finished project build and into the installed document root.
	MarkerFileName = ".drub-hash"

	// DeleteSuffix is appended to a build directory that is about to be replaced.
	// The old directory is rotated aside under this name before the fresh build
	// is renamed into place.
	DeleteSuffix = ".delete"

	// LockFileName is the name of the single-writer lock file in the install directory.
	LockFileName = ".drub.lock"

	// DirPerm is the default permission for created directories (rwxr-xr-x).
	DirPerm = 0o755

	// FilePerm is the default permission for created files (rw-r--r--).
	FilePerm = 0o644
)

// BuiltinProfiles are the install profiles shipped with Drupal core. Sites
// using one of these need no profile symlink of their own.
var BuiltinProfiles = map[string]bool{
	"minimal":  true,
	"standard": true,
	"testing":  true,
}
