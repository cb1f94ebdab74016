package markers

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/drub/internal/core/ports"
)

const NodeID graft.ID = "adapter.markers"

func init() {
	graft.Register(graft.Node[ports.MarkerStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.MarkerStore, error) {
			return NewStore(), nil
		},
	})
}
