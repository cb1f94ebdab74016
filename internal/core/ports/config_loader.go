package ports

import (
	"context"

	"go.trai.ch/drub/internal/core/domain"
)

// ConfigLoader defines the interface for loading the tree configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the project config from sourceDir, resolves and merges its
	// includes (remote includes are cached below downloadDir), discovers the
	// site configs next to it and returns the assembled tree.
	Load(ctx context.Context, sourceDir, downloadDir string) (*domain.Tree, error)
}
