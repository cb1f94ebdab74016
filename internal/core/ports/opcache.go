package ports

import "context"

// CacheResetter pokes the opcache reset endpoint after installs.
//
//go:generate mockgen -source=opcache.go -destination=mocks/mock_opcache.go -package=mocks
type CacheResetter interface {
	// Reset calls the given URL. Any non-success response is an error.
	Reset(ctx context.Context, url string) error
}
