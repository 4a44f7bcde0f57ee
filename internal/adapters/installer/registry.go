// Package installer dispatches component installs to the backend for their kind
// and records successful installs.
package installer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/rig/internal/adapters/fs"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry implements ports.ComponentInstaller on top of kind-specific backends.
type Registry struct {
	backends map[domain.ComponentKind]ports.ComponentInstaller
	state    ports.InstallStateStore
	logger   ports.Logger
	runID    string
	now      func() time.Time
}

// NewRegistry creates a Registry. Every record it writes carries the same run ID.
func NewRegistry(state ports.InstallStateStore, logger ports.Logger) *Registry {
	return &Registry{
		backends: make(map[domain.ComponentKind]ports.ComponentInstaller),
		state:    state,
		logger:   logger,
		runID:    uuid.NewString(),
		now:      time.Now,
	}
}

// Register adds the backend responsible for a kind.
func (r *Registry) Register(kind domain.ComponentKind, backend ports.ComponentInstaller) {
	r.backends[kind] = backend
}

// RunID identifies the records written by this registry.
func (r *Registry) RunID() string {
	return r.runID
}

// Install installs c unless a matching record exists and its location is still present.
func (r *Registry) Install(ctx context.Context, c domain.Component, opts domain.InstallOptions) (domain.InstallResult, error) {
	backend, ok := r.backends[c.Kind]
	if !ok {
		unsupported := zerr.With(zerr.Wrap(domain.ErrUnsupportedComponent, "no installer for kind"), "component", c.ID)
		return domain.InstallResult{}, zerr.With(unsupported, "kind", string(c.Kind))
	}

	record, err := r.state.Get(c.ID)
	if err != nil {
		r.logger.Warn("ignoring unreadable install record for " + c.ID)
		record = nil
	}
	if record.Satisfies(c, opts) && fs.Exists(record.Location) {
		return domain.InstallResult{
			ComponentID:      c.ID,
			Version:          record.Version,
			Location:         record.Location,
			AlreadyInstalled: true,
		}, nil
	}

	if err := r.checkDependencies(c); err != nil {
		return domain.InstallResult{}, err
	}

	res, err := backend.Install(ctx, c, opts)
	if err != nil {
		return domain.InstallResult{}, err
	}

	// An interrupted install is never recorded; the next run repeats it.
	if err := ctx.Err(); err != nil {
		return domain.InstallResult{}, zerr.With(zerr.Wrap(err, "install interrupted"), "component", c.ID)
	}

	next := domain.InstallRecord{
		ComponentID: c.ID,
		Version:     res.Version,
		Location:    res.Location,
		Targets:     c.Targets,
		RunID:       r.runID,
		InstalledAt: r.now().UTC(),
	}
	if opts.Snapshot != nil {
		next.Snapshot = opts.Snapshot.String()
	}
	if want := opts.EffectiveVersion(c); want != "" {
		next.Version = want
	}
	if err := r.state.Put(next); err != nil {
		return domain.InstallResult{}, zerr.With(err, "component", c.ID)
	}

	return res, nil
}

func (r *Registry) checkDependencies(c domain.Component) error {
	for _, dep := range c.DependsOn {
		record, err := r.state.Get(dep)
		if err != nil || record == nil {
			missing := zerr.With(zerr.Wrap(domain.ErrMissingDependency, "dependency is not installed"), "component", c.ID)
			return zerr.With(missing, "dependency", dep)
		}
	}
	return nil
}
