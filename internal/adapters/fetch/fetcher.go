// Package fetch resolves project resources to local files. SCM resources
// pass through untouched, local paths are resolved against the source
// directory, and remote files are downloaded into the shared download cache.
package fetch

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"
	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fetcher = (*Fetcher)(nil)

// Fetcher implements ports.Fetcher.
type Fetcher struct {
	logger ports.Logger
}

// NewFetcher creates a new Fetcher.
func NewFetcher(logger ports.Logger) *Fetcher {
	return &Fetcher{logger: logger}
}

// Fetch resolves the resource to a local path.
func (f *Fetcher) Fetch(ctx context.Context, res domain.Resource, relTo, store string) (string, error) {
	switch {
	case res.IsSCM():
		// Repositories are cloned by the applier, not downloaded.
		return res.URL, nil
	case res.Scheme() == "":
		return f.local(res, relTo), nil
	case isRemote(res):
		return f.remote(ctx, res, store)
	}

	return "", zerr.With(zerr.Wrap(domain.ErrNoMatchingImplementation, "no fetcher accepts this resource"), "url", res.URL)
}

func (f *Fetcher) local(res domain.Resource, relTo string) string {
	if relTo == "" || filepath.IsAbs(res.URL) {
		return res.URL
	}
	return filepath.Join(relTo, res.URL)
}

func (f *Fetcher) remote(ctx context.Context, res domain.Resource, store string) (string, error) {
	path := filepath.Join(store, cacheName(res.URL))

	if res.Hash == "" {
		if _, err := os.Stat(path); err == nil {
			f.logger.Debug("using cached download", "url", res.URL, "path", path)
			return path, nil
		}
	}

	src := res.URL
	if res.Hash != "" {
		pinned, err := pinChecksum(res.URL, res.Hash)
		if err != nil {
			return "", err
		}
		src = pinned
	}

	f.logger.Debug("downloading", "url", res.URL, "path", path)

	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  path,
		Mode: getter.ClientModeFile,
		// The applier decides what to do with archives, never unpack here.
		Decompressors: map[string]getter.Decompressor{},
	}
	if err := client.Get(); err != nil {
		var checksumErr *getter.ChecksumError
		if errors.As(err, &checksumErr) {
			mismatch := zerr.Wrap(domain.ErrChecksumMismatch, "downloaded file does not match its pin")
			mismatch = zerr.With(mismatch, "url", res.URL)
			return "", zerr.With(mismatch, "expected", res.Hash)
		}
		return "", zerr.With(zerr.Wrap(err, "failed to download resource"), "url", res.URL)
	}

	return path, nil
}

// pinChecksum attaches the sha1 pin as a checksum query parameter. The
// download client verifies it and reuses a cached file that already matches.
func pinChecksum(raw, hash string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to parse resource url"), "url", raw)
	}
	q := u.Query()
	q.Set("checksum", "sha1:"+hash)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func isRemote(res domain.Resource) bool {
	switch res.Scheme() {
	case "http", "https":
		return !strings.HasSuffix(res.URL, ".git")
	}
	return false
}

// cacheName flattens a URL into a single cache file name.
func cacheName(url string) string {
	return strings.NewReplacer("/", "-", ":", "-").Replace(url)
}
