package targets

import (
	"context"

	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/engine/resolver"
)

var _ resolver.Target = (*ResetCache)(nil)

// ResetCache clears the PHP opcache after installation. The opcache resolves
// symlinks when caching, so without the reset PHP keeps executing scripts
// from a replaced build directory.
type ResetCache struct {
	env   *Env
	sites []string
}

// NewResetCache creates the cache reset target for the given sites.
func NewResetCache(env *Env, sites []string) *ResetCache {
	return &ResetCache{env: env, sites: sites}
}

// ID is the same for every instance; one reset covers all sites.
func (t *ResetCache) ID() domain.TargetID {
	return domain.TID("reset-cache", "")
}

func (t *ResetCache) Dependencies() ([]resolver.Target, error) {
	deps := make([]resolver.Target, 0, len(t.sites))
	for _, site := range t.sites {
		deps = append(deps, NewSiteInstall(t.env, site))
	}
	return deps, nil
}

func (t *ResetCache) AlreadyBuilt() bool { return false }

func (t *ResetCache) Updateable() bool { return true }

// Build calls the reset endpoint with the configured key appended. Without a
// key the reset is skipped.
func (t *ResetCache) Build(ctx context.Context) error {
	cfg := t.env.Config
	if cfg.OpcacheResetKey == "" {
		return nil
	}

	if err := t.env.Cache.Reset(ctx, cfg.OpcacheResetURL+cfg.OpcacheResetKey); err != nil {
		return err
	}
	t.env.Logger.Info("opcache reset succeeded")
	return nil
}
