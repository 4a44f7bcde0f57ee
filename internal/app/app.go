// Package app implements the application layer for rig.
package app

import (
	"context"

	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/rig/internal/engine/entrypoint"
	"go.trai.ch/rig/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	pipeline     *pipeline.Pipeline
	installer    ports.ComponentInstaller
	warmer       ports.CacheWarmer
	resolver     ports.VersionResolver
	fetcher      ports.ArtifactFetcher
	tool         ports.BuildTool
	generator    *entrypoint.Generator
	logger       ports.Logger

	getenv func(string) string
}

// Deps groups the collaborators of App.
type Deps struct {
	ConfigLoader ports.ConfigLoader
	Pipeline     *pipeline.Pipeline
	Installer    ports.ComponentInstaller
	Warmer       ports.CacheWarmer
	Resolver     ports.VersionResolver
	Fetcher      ports.ArtifactFetcher
	Tool         ports.BuildTool
	Generator    *entrypoint.Generator
	Logger       ports.Logger
}

// New creates a new App instance.
func New(d Deps) *App {
	return &App{
		configLoader: d.ConfigLoader,
		pipeline:     d.Pipeline,
		installer:    d.Installer,
		warmer:       d.Warmer,
		resolver:     d.Resolver,
		fetcher:      d.Fetcher,
		tool:         d.Tool,
		generator:    d.Generator,
		logger:       d.Logger,
		getenv:       defaultGetenv,
	}
}

// WithEnv replaces the process environment lookup used to build invocations.
func (a *App) WithEnv(getenv func(string) string) *App {
	a.getenv = getenv
	return a
}

func (a *App) load(configPath string) (*domain.Plan, error) {
	plan, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return plan, nil
}

// snapshotPin resolves the pin for snapshot-pinned packages.
func (a *App) snapshotPin(ctx context.Context, plan *domain.Plan) (domain.SnapshotPin, error) {
	if plan.Snapshot.From == domain.SnapshotFromID {
		return domain.ParseSnapshot(plan.Snapshot.ID)
	}
	return a.resolver.SnapshotPin(ctx, plan.Root, plan.Snapshot.Rev)
}
