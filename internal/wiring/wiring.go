// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/rig/internal/adapters/apt"
	_ "go.trai.ch/rig/internal/adapters/archive"
	_ "go.trai.ch/rig/internal/adapters/config"
	_ "go.trai.ch/rig/internal/adapters/fetch"
	_ "go.trai.ch/rig/internal/adapters/git"
	_ "go.trai.ch/rig/internal/adapters/gradle"
	_ "go.trai.ch/rig/internal/adapters/installer"
	_ "go.trai.ch/rig/internal/adapters/logger"
	_ "go.trai.ch/rig/internal/adapters/rustup"
	_ "go.trai.ch/rig/internal/adapters/sdkmanager"
	_ "go.trai.ch/rig/internal/adapters/shell"
	_ "go.trai.ch/rig/internal/adapters/signature"
	_ "go.trai.ch/rig/internal/adapters/snapshot"
	_ "go.trai.ch/rig/internal/adapters/state"
	_ "go.trai.ch/rig/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/rig/internal/app"
	_ "go.trai.ch/rig/internal/engine/entrypoint"
	_ "go.trai.ch/rig/internal/engine/pipeline"
)
