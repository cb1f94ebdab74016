package ports

import (
	"context"

	"go.trai.ch/drub/internal/core/domain"
)

// Applier applies a fetched resource to a build directory.
//
//go:generate mockgen -source=applier.go -destination=mocks/mock_applier.go -package=mocks
type Applier interface {
	// Apply extracts, copies, clones or patches localpath into dir.
	Apply(ctx context.Context, res domain.Resource, localpath, dir string) error
}
