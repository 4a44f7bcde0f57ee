package app

import (
	"context"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/zerr"
)

// VersionString describes the current revision of the configured root.
func (a *App) VersionString(ctx context.Context, configPath string) (string, error) {
	plan, err := a.load(configPath)
	if err != nil {
		return "", err
	}
	return a.resolver.Resolve(ctx, plan.Root)
}

// Snapshot returns the pin that native packages are installed under.
func (a *App) Snapshot(ctx context.Context, configPath string) (domain.SnapshotPin, error) {
	plan, err := a.load(configPath)
	if err != nil {
		return domain.SnapshotPin{}, err
	}
	return a.snapshotPin(ctx, plan)
}

// GenerateEntryPoint writes the build script. A non-empty output overrides the configured path.
func (a *App) GenerateEntryPoint(configPath, output string) (string, error) {
	plan, err := a.load(configPath)
	if err != nil {
		return "", err
	}

	ep := plan.EntryPoint
	if output != "" {
		abs, err := filepath.Abs(output)
		if err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrEntryPointWriteFailed, err.Error()), "path", output)
		}
		ep.Path = abs
	}

	if err := a.generator.Write(ep); err != nil {
		return "", err
	}
	return ep.Path, nil
}

// Fetch downloads a declared artifact and stores it at dest.
// An empty dest keeps the artifact's file name in the working directory.
func (a *App) Fetch(ctx context.Context, configPath, name, dest string) (string, error) {
	plan, err := a.load(configPath)
	if err != nil {
		return "", err
	}

	art, ok := plan.Artifacts[name]
	if !ok {
		return "", zerr.With(zerr.Wrap(domain.ErrArtifactNotFound, "artifact is not declared"), "artifact", name)
	}

	if dest == "" {
		dest = fileName(art)
	}

	tmp, err := a.fetcher.Fetch(ctx, art)
	if err != nil {
		return "", err
	}
	defer func() { _ = os.Remove(tmp) }()

	if err := moveFile(tmp, dest); err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrDownload, err.Error()), "path", dest)
	}
	return dest, nil
}

func fileName(art domain.Artifact) string {
	if u, err := url.Parse(art.URL); err == nil {
		if base := path.Base(u.Path); base != "." && base != "/" {
			return base
		}
	}
	return art.Name
}

// moveFile renames src to dst, copying when they live on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src) //nolint:gosec // src is our own temp file
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm) //nolint:gosec // dst is chosen by the user
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
