package entrypoint

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the entry point generator node.
const NodeID graft.ID = "engine.entrypoint"

func init() {
	graft.Register(graft.Node[*Generator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Generator, error) {
			return NewGenerator(), nil
		},
	})
}
