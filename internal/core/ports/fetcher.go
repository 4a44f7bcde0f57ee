package ports

import (
	"context"

	"go.trai.ch/rig/internal/core/domain"
)

// ArtifactFetcher downloads external artifacts behind an integrity gate.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type ArtifactFetcher interface {
	// Fetch downloads the artifact and returns the path of a local file whose
	// digest equals artifact.Digest. The caller removes the file after use.
	// A digest or signature mismatch returns domain.ErrIntegrity and leaves no file behind.
	Fetch(ctx context.Context, artifact domain.Artifact) (string, error)
}

// SignatureVerifier checks detached OpenPGP signatures.
type SignatureVerifier interface {
	// Verify checks that sigPath is a valid signature of filePath by a key in keyringPath.
	Verify(ctx context.Context, filePath, sigPath, keyringPath string) error
}

// Extractor unpacks archives.
type Extractor interface {
	// Extract unpacks archivePath into dest, creating it when missing.
	Extract(ctx context.Context, archivePath, dest string) error
}
