// Package apt installs system packages, optionally against a snapshot of the package repository.
package apt

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.trai.ch/rig/internal/adapters/shell"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultLocation is recorded for system packages, which live in the system prefix.
const DefaultLocation = "/usr"

var aptEnv = []string{"DEBIAN_FRONTEND=noninteractive"}

// liveLists keys the refresh of the unpinned package lists.
const liveLists = "live"

// Installer implements ports.ComponentInstaller for system packages.
type Installer struct {
	runner ports.CommandRunner
	index  ports.PackageIndex
	logger ports.Logger

	mu      sync.Mutex
	updated map[string]bool
}

// NewInstaller creates a new apt Installer.
func NewInstaller(runner ports.CommandRunner, index ports.PackageIndex, logger ports.Logger) *Installer {
	return &Installer{
		runner:  runner,
		index:   index,
		logger:  logger,
		updated: make(map[string]bool),
	}
}

// Install installs the package at the requested version.
// Under a snapshot pin the version is resolved from the pinned index, never from the live mirror.
func (i *Installer) Install(ctx context.Context, c domain.Component, opts domain.InstallOptions) (domain.InstallResult, error) {
	if c.Kind != domain.KindSystem {
		return domain.InstallResult{}, zerr.With(zerr.Wrap(domain.ErrUnsupportedComponent, "not a system package"), "component", c.ID)
	}

	location := c.Location
	if location == "" {
		location = DefaultLocation
	}

	want := opts.EffectiveVersion(c)
	if opts.Snapshot != nil {
		if err := i.update(ctx, opts.Snapshot.String()); err != nil {
			return domain.InstallResult{}, err
		}
		if want == "" {
			resolved, err := i.resolve(ctx, c, *opts.Snapshot)
			if err != nil {
				return domain.InstallResult{}, err
			}
			want = resolved
		}
	}

	if installed := i.installedVersion(ctx, c.Name); installed != "" && (want == "" || installed == want) {
		return domain.InstallResult{
			ComponentID:      c.ID,
			Version:          installed,
			Location:         location,
			AlreadyInstalled: true,
		}, nil
	}

	if opts.Snapshot == nil {
		if err := i.update(ctx, liveLists); err != nil {
			return domain.InstallResult{}, err
		}
	}

	spec := c.Name
	if want != "" {
		spec += "=" + want
	}
	args := []string{"install", "-y", "--no-install-recommends"}
	if opts.Snapshot != nil {
		args = append(args, "--snapshot", opts.Snapshot.String())
	}
	args = append(args, spec)

	if err := i.runner.Run(ctx, domain.Command{Name: "apt-get", Args: args, Env: aptEnv}); err != nil {
		return domain.InstallResult{}, zerr.With(classify(err), "component", c.ID)
	}

	version := i.installedVersion(ctx, c.Name)
	if version == "" {
		return domain.InstallResult{}, zerr.With(zerr.Wrap(domain.ErrInstallFailed, "package not registered after install"), "component", c.ID)
	}

	return domain.InstallResult{
		ComponentID: c.ID,
		Version:     version,
		Location:    location,
	}, nil
}

// update refreshes the package lists once per run for each snapshot id,
// or for the live mirror when id is liveLists.
func (i *Installer) update(ctx context.Context, id string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.updated[id] {
		return nil
	}

	args := []string{"update"}
	if id == liveLists {
		i.logger.Info("refreshing package lists")
	} else {
		i.logger.Info("refreshing package lists at snapshot " + id)
		args = append(args, "--snapshot", id)
	}

	err := i.runner.Run(ctx, domain.Command{Name: "apt-get", Args: args, Env: aptEnv})
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrDownload, "apt-get update failed"), "snapshot", id)
	}

	i.updated[id] = true
	return nil
}

func (i *Installer) resolve(ctx context.Context, c domain.Component, pin domain.SnapshotPin) (string, error) {
	meta, err := i.index.QueryPackage(ctx, c.Name, pin)
	if err != nil {
		if errors.Is(err, domain.ErrPackageNotFound) {
			return "", zerr.With(zerr.Wrap(domain.ErrUnsupportedComponent, err.Error()), "component", c.ID)
		}
		return "", zerr.With(zerr.Wrap(domain.ErrDownload, err.Error()), "component", c.ID)
	}

	if !pin.Allows(meta.Published) {
		violation := zerr.With(zerr.Wrap(domain.ErrSnapshotViolation, meta.Name+"="+meta.Version), "snapshot", pin.String())
		return "", zerr.With(violation, "published", meta.Published.Format(domain.SnapshotLayout))
	}
	return meta.Version, nil
}

func (i *Installer) installedVersion(ctx context.Context, name string) string {
	out, err := i.runner.Output(ctx, domain.Command{
		Name: "dpkg-query",
		Args: []string{"-W", "-f=${Status}|${Version}", name},
	})
	if err != nil {
		return ""
	}
	status, version, ok := strings.Cut(strings.TrimSpace(string(out)), "|")
	if !ok || !strings.HasSuffix(status, " installed") {
		return ""
	}
	return version
}

// classify maps an apt failure to the domain error it represents.
func classify(err error) error {
	stderr := shell.Stderr(err)
	switch {
	case strings.Contains(stderr, "Unable to locate package"),
		strings.Contains(stderr, "was not found"),
		strings.Contains(stderr, "has no installation candidate"):
		return zerr.With(zerr.Wrap(domain.ErrUnsupportedComponent, "apt cannot resolve package"), "stderr", stderr)
	default:
		return zerr.Wrap(domain.ErrDownload, err.Error())
	}
}
