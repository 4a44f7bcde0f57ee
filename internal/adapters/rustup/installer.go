// Package rustup installs Rust toolchains and their cross-compilation targets.
package rustup

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/rig/internal/adapters/shell"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
)

// Installer implements ports.ComponentInstaller for rust toolchains.
type Installer struct {
	runner ports.CommandRunner
}

// NewInstaller creates a new rustup Installer.
func NewInstaller(runner ports.CommandRunner) *Installer {
	return &Installer{runner: runner}
}

// Install installs the toolchain with a minimal profile and every requested target.
// Targets are added next to the host target, which stays installed.
func (i *Installer) Install(ctx context.Context, c domain.Component, opts domain.InstallOptions) (domain.InstallResult, error) {
	if c.Kind != domain.KindRustToolchain {
		return domain.InstallResult{}, zerr.With(zerr.Wrap(domain.ErrUnsupportedComponent, "not a rust toolchain"), "component", c.ID)
	}

	channel := opts.EffectiveVersion(c)
	if channel == "" {
		channel = c.Name
	}
	if channel == "" {
		return domain.InstallResult{}, zerr.With(zerr.Wrap(domain.ErrUnsupportedComponent, "no toolchain channel"), "component", c.ID)
	}

	env := rustupEnv(c.Location)
	result := domain.InstallResult{ComponentID: c.ID, Version: channel, Location: c.Location}

	if i.hasToolchain(ctx, channel, env) {
		missing := i.missingTargets(ctx, channel, c.Targets, env)
		if len(missing) == 0 {
			result.AlreadyInstalled = true
			return result, nil
		}

		args := append([]string{"target", "add", "--toolchain", channel}, missing...)
		if err := i.runner.Run(ctx, domain.Command{Name: "rustup", Args: args, Env: env}); err != nil {
			return domain.InstallResult{}, zerr.With(zerr.Wrap(domain.ErrDownload, err.Error()), "component", c.ID)
		}
		return result, nil
	}

	args := []string{"toolchain", "install", channel, "--profile", "minimal"}
	for _, target := range c.Targets {
		args = append(args, "--target", target)
	}
	args = append(args, "--no-self-update")

	if err := i.runner.Run(ctx, domain.Command{Name: "rustup", Args: args, Env: env}); err != nil {
		return domain.InstallResult{}, zerr.With(classify(err), "component", c.ID)
	}
	return result, nil
}

func (i *Installer) hasToolchain(ctx context.Context, channel string, env []string) bool {
	out, err := i.runner.Output(ctx, domain.Command{Name: "rustup", Args: []string{"toolchain", "list"}, Env: env})
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(out), "\n") {
		name, _, _ := strings.Cut(strings.TrimSpace(line), " ")
		if name == channel || strings.HasPrefix(name, channel+"-") {
			return true
		}
	}
	return false
}

func (i *Installer) missingTargets(ctx context.Context, channel string, targets []string, env []string) []string {
	if len(targets) == 0 {
		return nil
	}
	out, err := i.runner.Output(ctx, domain.Command{
		Name: "rustup",
		Args: []string{"target", "list", "--installed", "--toolchain", channel},
		Env:  env,
	})
	if err != nil {
		return targets
	}

	installed := make(map[string]struct{})
	for _, line := range strings.Split(string(out), "\n") {
		if t := strings.TrimSpace(line); t != "" {
			installed[t] = struct{}{}
		}
	}

	var missing []string
	for _, t := range targets {
		if _, ok := installed[t]; !ok {
			missing = append(missing, t)
		}
	}
	return missing
}

func rustupEnv(location string) []string {
	var env []string
	if location != "" {
		env = append(env, "RUSTUP_HOME="+location)
	}
	if cargoHome := os.Getenv("CARGO_HOME"); cargoHome != "" {
		env = append(env, "CARGO_HOME="+cargoHome)
	}
	return env
}

// DefaultLocation returns RUSTUP_HOME or its default under the home directory.
func DefaultLocation() string {
	if home := os.Getenv("RUSTUP_HOME"); home != "" {
		return home
	}
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, ".rustup")
	}
	return ".rustup"
}

func classify(err error) error {
	stderr := shell.Stderr(err)
	if strings.Contains(stderr, "invalid toolchain name") || strings.Contains(stderr, "does not support target") {
		return zerr.With(zerr.Wrap(domain.ErrUnsupportedComponent, "rustup rejected the toolchain"), "stderr", stderr)
	}
	return zerr.Wrap(domain.ErrDownload, err.Error())
}
