package ports

// Hasher computes recipe hashes over raw configuration.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashRecipe returns a stable hex digest of the configuration value. Equal
	// configurations hash equally regardless of map ordering.
	HashRecipe(config any) (string, error)
}
