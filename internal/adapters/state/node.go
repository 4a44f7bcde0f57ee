package state

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
)

// NodeID is the unique identifier for the install state store Graft node.
const NodeID graft.ID = "adapter.state"

func init() {
	graft.Register(graft.Node[ports.InstallStateStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.InstallStateStore, error) {
			store, err := NewStore(domain.DefaultStatePath())
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
