// Package git derives version strings and snapshot pins from the repository.
package git

import (
	"context"
	"strings"

	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver implements ports.VersionResolver with the git CLI.
type Resolver struct {
	runner ports.CommandRunner
}

// NewResolver creates a new Resolver.
func NewResolver(runner ports.CommandRunner) *Resolver {
	return &Resolver{runner: runner}
}

// Resolve runs git describe on every call; the result is sanitized for use as an env value.
func (r *Resolver) Resolve(ctx context.Context, repoDir string) (string, error) {
	out, err := r.git(ctx, repoDir, "describe", "--tags", "--always")
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrVersionResolveFailed, err.Error()), "repo", repoDir)
	}
	version := domain.SanitizeVersion(string(out))
	if version == "" {
		return "", zerr.With(zerr.Wrap(domain.ErrVersionResolveFailed, "git describe printed nothing"), "repo", repoDir)
	}
	return version, nil
}

// SnapshotPin reads the author time of rev, HEAD when empty.
func (r *Resolver) SnapshotPin(ctx context.Context, repoDir, rev string) (domain.SnapshotPin, error) {
	if rev == "" {
		rev = "HEAD"
	}
	out, err := r.git(ctx, repoDir, "show", "-s", "--format=%at", rev)
	if err != nil {
		resolveErr := zerr.With(zerr.Wrap(domain.ErrVersionResolveFailed, err.Error()), "repo", repoDir)
		return domain.SnapshotPin{}, zerr.With(resolveErr, "rev", rev)
	}
	return domain.SnapshotFromUnix(strings.TrimSpace(string(out)))
}

// Clean removes untracked and ignored files, including nested repositories.
func (r *Resolver) Clean(ctx context.Context, repoDir string) error {
	err := r.runner.Run(ctx, domain.Command{
		Name: "git",
		Args: []string{"clean", "-ffdx"},
		Dir:  repoDir,
		Env:  gitEnv,
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to clean workspace"), "repo", repoDir)
	}
	return nil
}

var gitEnv = []string{"GIT_TERMINAL_PROMPT=0"}

func (r *Resolver) git(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return r.runner.Output(ctx, domain.Command{Name: "git", Args: args, Dir: dir, Env: gitEnv})
}
