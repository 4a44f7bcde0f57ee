package installer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rig/internal/adapters/apt"
	"go.trai.ch/rig/internal/adapters/logger"
	"go.trai.ch/rig/internal/adapters/rustup"
	"go.trai.ch/rig/internal/adapters/sdkmanager"
	"go.trai.ch/rig/internal/adapters/state"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
)

// NodeID is the unique identifier for the installer registry Graft node.
const NodeID graft.ID = "adapter.installer"

func init() {
	graft.Register(graft.Node[ports.ComponentInstaller]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			state.NodeID,
			logger.NodeID,
			apt.NodeID,
			sdkmanager.NodeID,
			rustup.NodeID,
		},
		Run: func(ctx context.Context) (ports.ComponentInstaller, error) {
			store, err := graft.Dep[ports.InstallStateStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			aptInstaller, err := graft.Dep[*apt.Installer](ctx)
			if err != nil {
				return nil, err
			}
			sdk, err := graft.Dep[*sdkmanager.Installer](ctx)
			if err != nil {
				return nil, err
			}
			rust, err := graft.Dep[*rustup.Installer](ctx)
			if err != nil {
				return nil, err
			}

			registry := NewRegistry(store, log)
			registry.Register(domain.KindSystem, aptInstaller)
			registry.Register(domain.KindAndroidCmdlineTools, sdk)
			registry.Register(domain.KindAndroidSDK, sdk)
			registry.Register(domain.KindRustToolchain, rust)
			return registry, nil
		},
	})
}
