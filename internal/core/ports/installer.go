package ports

import (
	"context"

	"go.trai.ch/rig/internal/core/domain"
)

// ComponentInstaller installs toolchain components.
//
//go:generate mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type ComponentInstaller interface {
	// Install brings the component to the requested state.
	// Installing an already satisfied component returns AlreadyInstalled without side effects.
	Install(ctx context.Context, component domain.Component, opts domain.InstallOptions) (domain.InstallResult, error)
}

// PackageIndex answers package queries against a pinned package universe.
type PackageIndex interface {
	// QueryPackage returns the newest version of name published no later than asOf.
	// Results for a fixed asOf are deterministic.
	QueryPackage(ctx context.Context, name string, asOf domain.SnapshotPin) (domain.PackageMetadata, error)
}

// InstallStateStore persists install records.
type InstallStateStore interface {
	// Get retrieves the record for a component ID.
	// Returns nil, nil if not found.
	Get(componentID string) (*domain.InstallRecord, error)

	// Put stores the record.
	Put(record domain.InstallRecord) error
}
