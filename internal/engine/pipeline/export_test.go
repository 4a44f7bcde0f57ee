package pipeline

import (
	"maps"

	"go.trai.ch/rig/internal/core/domain"
)

// StatusMap returns a copy of the step status map.
func (p *Pipeline) StatusMap() map[string]domain.StepStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return maps.Clone(p.status)
}
