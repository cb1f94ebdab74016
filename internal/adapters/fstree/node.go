package fstree

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/drub/internal/adapters/logger"
	"go.trai.ch/drub/internal/core/ports"
)

const NodeID graft.ID = "adapter.fstree"

func init() {
	graft.Register(graft.Node[ports.TreeWriter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.TreeWriter, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewTree(log), nil
		},
	})
}
