package gradle

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rig/internal/adapters/shell"
	"go.trai.ch/rig/internal/core/ports"
)

const (
	// WarmerNodeID is the unique identifier for the cache warmer Graft node.
	WarmerNodeID graft.ID = "adapter.gradle.warmer"
	// ToolNodeID is the unique identifier for the build tool Graft node.
	ToolNodeID graft.ID = "adapter.gradle.tool"
)

func init() {
	graft.Register(graft.Node[ports.CacheWarmer]{
		ID:        WarmerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.CacheWarmer, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewWarmer(runner), nil
		},
	})

	graft.Register(graft.Node[ports.BuildTool]{
		ID:        ToolNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BuildTool, error) {
			return NewTool(), nil
		},
	})
}
