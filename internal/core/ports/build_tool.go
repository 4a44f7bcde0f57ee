package ports

import (
	"context"

	"go.trai.ch/rig/internal/core/domain"
)

// BuildTool is the opaque wrapped build tool.
//
//go:generate mockgen -source=build_tool.go -destination=mocks/mock_build_tool.go -package=mocks
type BuildTool interface {
	// Invoke runs the tool and returns its exit status.
	// A nonzero status is not an error; err is set only when the tool could not run.
	Invoke(ctx context.Context, inv domain.BuildInvocation) (int, error)
}

// CacheWarmer pre-populates the build tool's own caches.
type CacheWarmer interface {
	// Warm runs settings.Wrapper once with a version query.
	// Only settings.UserHome may be written to.
	Warm(ctx context.Context, settings domain.GradleSettings) error
}
