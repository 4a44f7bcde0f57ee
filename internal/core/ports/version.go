package ports

import (
	"context"

	"go.trai.ch/rig/internal/core/domain"
)

// VersionResolver derives build metadata from source control.
//
//go:generate mockgen -source=version.go -destination=mocks/mock_version.go -package=mocks
type VersionResolver interface {
	// Resolve describes the current revision. It is never memoized.
	Resolve(ctx context.Context, repoDir string) (string, error)

	// SnapshotPin derives a pin from the author time of rev.
	SnapshotPin(ctx context.Context, repoDir, rev string) (domain.SnapshotPin, error)

	// Clean removes untracked and ignored files from the workspace.
	Clean(ctx context.Context, repoDir string) error
}
