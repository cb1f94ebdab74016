package apply

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/drub/internal/adapters/fstree"
	"go.trai.ch/drub/internal/adapters/logger"
	"go.trai.ch/drub/internal/adapters/shell"
	"go.trai.ch/drub/internal/core/ports"
)

const NodeID graft.ID = "adapter.apply"

func init() {
	graft.Register(graft.Node[ports.Applier]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, shell.NodeID, fstree.NodeID},
		Run: func(ctx context.Context) (ports.Applier, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			commander, err := graft.Dep[ports.Commander](ctx)
			if err != nil {
				return nil, err
			}
			tree, err := graft.Dep[ports.TreeWriter](ctx)
			if err != nil {
				return nil, err
			}
			return NewApplier(commander, tree, log), nil
		},
	})
}
