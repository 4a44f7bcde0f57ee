package fetch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rig/internal/adapters/signature"
	"go.trai.ch/rig/internal/core/ports"
)

// NodeID is the unique identifier for the artifact fetcher Graft node.
const NodeID graft.ID = "adapter.fetch"

func init() {
	graft.Register(graft.Node[ports.ArtifactFetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{signature.NodeID},
		Run: func(ctx context.Context) (ports.ArtifactFetcher, error) {
			verifier, err := graft.Dep[ports.SignatureVerifier](ctx)
			if err != nil {
				return nil, err
			}
			return NewFetcher(verifier), nil
		},
	})
}
