package sdkmanager

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rig/internal/adapters/archive"
	"go.trai.ch/rig/internal/adapters/fetch"
	"go.trai.ch/rig/internal/adapters/logger"
	"go.trai.ch/rig/internal/adapters/shell"
	"go.trai.ch/rig/internal/core/ports"
)

// NodeID is the unique identifier for the sdkmanager installer Graft node.
const NodeID graft.ID = "adapter.sdkmanager"

func init() {
	graft.Register(graft.Node[*Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, fetch.NodeID, archive.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Installer, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			fetcher, err := graft.Dep[ports.ArtifactFetcher](ctx)
			if err != nil {
				return nil, err
			}
			extractor, err := graft.Dep[ports.Extractor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewInstaller(runner, fetcher, extractor, log), nil
		},
	})
}
