package targets

import (
	"context"

	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/engine/resolver"
)

var _ resolver.Target = (*Dirs)(nil)

// Dirs ensures the download and projects directories exist.
type Dirs struct {
	env *Env
}

// NewDirs creates the directory scaffold target.
func NewDirs(env *Env) *Dirs {
	return &Dirs{env: env}
}

func (t *Dirs) ID() domain.TargetID {
	return domain.TID("dirs", "")
}

func (t *Dirs) Dependencies() ([]resolver.Target, error) {
	return nil, nil
}

func (t *Dirs) AlreadyBuilt() bool { return false }

func (t *Dirs) Updateable() bool { return true }

func (t *Dirs) Build(_ context.Context) error {
	if err := t.env.Files.EnsureDir(t.env.Config.ResolveDownloadDir()); err != nil {
		return err
	}
	return t.env.Files.EnsureDir(t.env.projectsRoot())
}
