package ports

// MarkerStore reads and writes the recipe-hash markers sitting inside built
// directories. The marker is what AlreadyBuilt/Updateable checks compare
// against the current recipe hash.
//
//go:generate mockgen -source=markers.go -destination=mocks/mock_markers.go -package=mocks
type MarkerStore interface {
	// Read returns the marker stored in dir, or "" when there is none.
	Read(dir string) (string, error)
	// Write atomically stores the marker in dir.
	Write(dir, hash string) error
}
