package ports

import (
	"context"

	"go.trai.ch/drub/internal/core/domain"
)

// Fetcher makes a resource available as a local file.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch resolves the resource to a local path. Relative local resources
	// are resolved against relTo; remote ones are cached below store. SCM
	// resources are not fetched, their URL is returned for the applier.
	Fetch(ctx context.Context, res domain.Resource, relTo, store string) (string, error)
}
