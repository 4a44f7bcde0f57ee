package rustup

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rig/internal/adapters/shell"
	"go.trai.ch/rig/internal/core/ports"
)

// NodeID is the unique identifier for the rustup installer Graft node.
const NodeID graft.ID = "adapter.rustup"

func init() {
	graft.Register(graft.Node[*Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (*Installer, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewInstaller(runner), nil
		},
	})
}
