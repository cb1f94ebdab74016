package opcache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/drub/internal/core/ports"
)

const NodeID graft.ID = "adapter.opcache"

func init() {
	graft.Register(graft.Node[ports.CacheResetter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.CacheResetter, error) {
			return NewResetter(), nil
		},
	})
}
