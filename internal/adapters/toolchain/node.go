package toolchain

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mason/internal/adapters/proc"
	"go.trai.ch/mason/internal/core/ports"
)

const NodeID graft.ID = "adapter.toolchain.resolver"

func init() {
	graft.Register(graft.Node[ports.ToolResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{proc.NodeID},
		Run: func(ctx context.Context) (ports.ToolResolver, error) {
			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(runner), nil
		},
	})
}
