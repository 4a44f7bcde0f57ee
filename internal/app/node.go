package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rig/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/rig/internal/adapters/fetch"              //nolint:depguard // Wired in app layer
	"go.trai.ch/rig/internal/adapters/git"                //nolint:depguard // Wired in app layer
	"go.trai.ch/rig/internal/adapters/gradle"             //nolint:depguard // Wired in app layer
	"go.trai.ch/rig/internal/adapters/installer"          //nolint:depguard // Wired in app layer
	"go.trai.ch/rig/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/rig/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/rig/internal/engine/entrypoint"
	"go.trai.ch/rig/internal/engine/pipeline"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			pipeline.NodeID,
			installer.NodeID,
			gradle.WarmerNodeID,
			gradle.ToolNodeID,
			git.NodeID,
			fetch.NodeID,
			entrypoint.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	pipe, err := graft.Dep[*pipeline.Pipeline](ctx)
	if err != nil {
		return nil, err
	}

	inst, err := graft.Dep[ports.ComponentInstaller](ctx)
	if err != nil {
		return nil, err
	}

	warmer, err := graft.Dep[ports.CacheWarmer](ctx)
	if err != nil {
		return nil, err
	}

	tool, err := graft.Dep[ports.BuildTool](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.VersionResolver](ctx)
	if err != nil {
		return nil, err
	}

	fetcher, err := graft.Dep[ports.ArtifactFetcher](ctx)
	if err != nil {
		return nil, err
	}

	generator, err := graft.Dep[*entrypoint.Generator](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(Deps{
		ConfigLoader: loader,
		Pipeline:     pipe,
		Installer:    inst,
		Warmer:       warmer,
		Resolver:     resolver,
		Fetcher:      fetcher,
		Tool:         tool,
		Generator:    generator,
		Logger:       log,
	}), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       a,
		Logger:    log,
		Telemetry: telemetry,
	}, nil
}
