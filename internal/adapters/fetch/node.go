package fetch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/drub/internal/adapters/logger"
	"go.trai.ch/drub/internal/core/ports"
)

const NodeID graft.ID = "adapter.fetch"

func init() {
	graft.Register(graft.Node[ports.Fetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Fetcher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFetcher(log), nil
		},
	})
}
