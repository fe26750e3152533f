package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mason/internal/core/ports"
)

const SyncerNodeID graft.ID = "adapter.fs.syncer"

func init() {
	graft.Register(graft.Node[ports.Syncer]{
		ID:        SyncerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Syncer, error) {
			return NewSyncer(), nil
		},
	})
}
