// Package opcache pokes the PHP opcache reset endpoint after code changes.
package opcache

import (
	"context"
	"io"
	"net/http"
	"time"

	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheResetter = (*Resetter)(nil)

// Resetter implements ports.CacheResetter over HTTP.
type Resetter struct {
	client *http.Client
}

// NewResetter creates a new Resetter.
func NewResetter() *Resetter {
	return &Resetter{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Reset calls the given URL. Any non-success response is an error.
func (r *Resetter) Reset(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to build cache reset request"), "url", url)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "cache reset request failed"), "url", url)
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort close in defer

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		failed := zerr.Wrap(domain.ErrCacheResetFailed, "cache reset endpoint returned an error")
		failed = zerr.With(failed, "url", url)
		return zerr.With(failed, "status", resp.StatusCode)
	}

	return nil
}
