package signature

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rig/internal/core/ports"
)

// NodeID is the unique identifier for the signature verifier Graft node.
const NodeID graft.ID = "adapter.signature"

func init() {
	graft.Register(graft.Node[ports.SignatureVerifier]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SignatureVerifier, error) {
			return NewVerifier(), nil
		},
	})
}
