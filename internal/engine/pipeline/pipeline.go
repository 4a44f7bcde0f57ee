// Package pipeline runs provisioning steps in order.
package pipeline

import (
	"context"
	"sync"

	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
)

// Step is one gate of the pipeline.
type Step struct {
	Name string
	// Run does the work. It reports cached when nothing needed doing.
	Run func(ctx context.Context) (cached bool, err error)
	// Skip marks a step disabled by configuration.
	Skip bool
}

// Pipeline executes steps sequentially and stops at the first failure.
type Pipeline struct {
	telemetry ports.Telemetry
	logger    ports.Logger

	mu     sync.RWMutex
	status map[string]domain.StepStatus
}

// NewPipeline creates a new Pipeline.
func NewPipeline(telemetry ports.Telemetry, logger ports.Logger) *Pipeline {
	return &Pipeline{
		telemetry: telemetry,
		logger:    logger,
		status:    make(map[string]domain.StepStatus),
	}
}

func (p *Pipeline) updateStatus(name string, status domain.StepStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status[name] = status
}

func (p *Pipeline) getStatus(name string) domain.StepStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status[name]
}

// Run executes steps in order. It returns one report per step; steps after a
// failure stay pending. The returned error carries the failing step's name.
func (p *Pipeline) Run(ctx context.Context, steps []Step) ([]domain.StepReport, error) {
	p.mu.Lock()
	p.status = make(map[string]domain.StepStatus, len(steps))
	for _, s := range steps {
		p.status[s.Name] = domain.StepPending
	}
	p.mu.Unlock()

	reports := make([]domain.StepReport, len(steps))
	for i, s := range steps {
		reports[i] = domain.StepReport{Name: s.Name, Status: domain.StepPending}
	}

	for i, s := range steps {
		if err := ctx.Err(); err != nil {
			return reports, zerr.With(zerr.Wrap(err, "provisioning interrupted"), "step", s.Name)
		}

		if s.Skip {
			p.updateStatus(s.Name, domain.StepSkipped)
			reports[i].Status = domain.StepSkipped
			continue
		}

		err := p.execute(ctx, s)
		reports[i].Status = p.getStatus(s.Name)
		if err != nil {
			reports[i].Err = err
			return reports, zerr.With(zerr.Wrap(err, "provisioning step failed"), "step", s.Name)
		}
	}

	return reports, nil
}

func (p *Pipeline) execute(ctx context.Context, s Step) error {
	p.updateStatus(s.Name, domain.StepRunning)
	p.logger.Info(s.Name)

	stepCtx, vertex := p.telemetry.Record(ctx, s.Name)
	cached, err := s.Run(stepCtx)
	if err != nil {
		vertex.Log(domain.LogLevelError, err.Error())
		vertex.Complete(err)
		p.updateStatus(s.Name, domain.StepFailed)
		return err
	}

	if cached {
		vertex.Cached()
		p.updateStatus(s.Name, domain.StepCached)
	} else {
		p.updateStatus(s.Name, domain.StepCompleted)
	}
	vertex.Complete(nil)
	return nil
}
