// Package recipe computes the stable hashes identifying a build recipe.
package recipe

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/drub/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher hashes recipe configurations.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashRecipe returns a stable hex digest of the configuration value. The value
// is serialized to JSON first; the encoder emits map keys sorted, so map
// ordering never changes the digest.
func (h *Hasher) HashRecipe(config any) (string, error) {
	data, err := json.Marshal(config)
	if err != nil {
		return "", zerr.Wrap(err, "failed to serialize recipe")
	}

	hasher := xxhash.New()
	_, _ = hasher.Write(data)

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
