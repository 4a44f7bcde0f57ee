package apt

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rig/internal/adapters/logger"
	"go.trai.ch/rig/internal/adapters/shell"
	"go.trai.ch/rig/internal/adapters/snapshot"
	"go.trai.ch/rig/internal/core/ports"
)

// NodeID is the unique identifier for the apt installer Graft node.
const NodeID graft.ID = "adapter.apt"

func init() {
	graft.Register(graft.Node[*Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, snapshot.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Installer, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			index, err := graft.Dep[ports.PackageIndex](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewInstaller(runner, index, log), nil
		},
	})
}
