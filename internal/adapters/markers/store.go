// Package markers persists the recipe-hash markers identifying a directory as
// the output of a completed build.
package markers

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.MarkerStore with one marker file per directory. The
// marker is written atomically so a crash never leaves a torn marker behind.
type Store struct{}

// NewStore creates a marker store.
func NewStore() *Store {
	return &Store{}
}

// Read returns the marker stored in dir, or "" when there is none.
func (s *Store) Read(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, domain.MarkerFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", zerr.With(zerr.Wrap(err, "failed to read build marker"), "dir", dir)
	}

	return strings.TrimSpace(string(data)), nil
}

// Write atomically stores the marker in dir.
func (s *Store) Write(dir, hash string) error {
	path := filepath.Join(dir, domain.MarkerFileName)
	if err := renameio.WriteFile(path, []byte(hash+"\n"), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write build marker"), "dir", dir)
	}

	return nil
}
