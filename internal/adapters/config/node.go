package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/drub/internal/adapters/fetch"
	"go.trai.ch/drub/internal/adapters/logger"
	"go.trai.ch/drub/internal/adapters/recipe"
	"go.trai.ch/drub/internal/core/ports"
)

const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, fetch.NodeID, recipe.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(fetcher, hasher, log), nil
		},
	})
}
