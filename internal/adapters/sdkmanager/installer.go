// Package sdkmanager installs the Android SDK command-line tools and SDK packages.
package sdkmanager

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/rig/internal/adapters/fs"
	"go.trai.ch/rig/internal/adapters/shell"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
)

const stagingPattern = ".cmdline-tools-staging-*"

// Installer implements ports.ComponentInstaller for the Android SDK.
type Installer struct {
	runner    ports.CommandRunner
	fetcher   ports.ArtifactFetcher
	extractor ports.Extractor
	logger    ports.Logger
}

// NewInstaller creates a new sdkmanager Installer.
func NewInstaller(
	runner ports.CommandRunner,
	fetcher ports.ArtifactFetcher,
	extractor ports.Extractor,
	logger ports.Logger,
) *Installer {
	return &Installer{
		runner:    runner,
		fetcher:   fetcher,
		extractor: extractor,
		logger:    logger,
	}
}

// Install installs the command-line tools or an SDK package.
func (i *Installer) Install(ctx context.Context, c domain.Component, opts domain.InstallOptions) (domain.InstallResult, error) {
	if (c.RequiresLicense || c.Kind == domain.KindAndroidSDK) && !opts.AcceptLicenses {
		return domain.InstallResult{}, zerr.With(zerr.Wrap(domain.ErrLicenseNotAccepted, "rerun with --accept-licenses"), "component", c.ID)
	}

	switch c.Kind {
	case domain.KindAndroidCmdlineTools:
		return i.installCmdlineTools(ctx, c, opts)
	case domain.KindAndroidSDK:
		return i.installPackage(ctx, c, opts)
	default:
		return domain.InstallResult{}, zerr.With(zerr.Wrap(domain.ErrUnsupportedComponent, "not an Android SDK component"), "component", c.ID)
	}
}

func (i *Installer) installCmdlineTools(ctx context.Context, c domain.Component, opts domain.InstallOptions) (domain.InstallResult, error) {
	want := opts.EffectiveVersion(c)
	if rev, ok := Revision(c.Location); ok && (want == "" || rev == want) {
		return domain.InstallResult{ComponentID: c.ID, Version: rev, Location: c.Location, AlreadyInstalled: true}, nil
	}

	if c.Artifact == nil {
		return domain.InstallResult{}, zerr.With(zerr.Wrap(domain.ErrUnsupportedComponent, "command-line tools need an artifact"), "component", c.ID)
	}

	// The archive is verified before anything is written below the SDK root.
	archivePath, err := i.fetcher.Fetch(ctx, *c.Artifact)
	if err != nil {
		return domain.InstallResult{}, zerr.With(err, "component", c.ID)
	}
	defer func() { _ = os.Remove(archivePath) }()

	sdkRoot := filepath.Dir(filepath.Dir(c.Location))
	if err := os.MkdirAll(sdkRoot, domain.DirPerm); err != nil {
		return domain.InstallResult{}, zerr.With(zerr.Wrap(domain.ErrInstallFailed, err.Error()), "component", c.ID)
	}

	staging, err := os.MkdirTemp(sdkRoot, stagingPattern)
	if err != nil {
		return domain.InstallResult{}, zerr.With(zerr.Wrap(domain.ErrInstallFailed, err.Error()), "component", c.ID)
	}
	defer func() { _ = os.RemoveAll(staging) }()

	if err := i.extractor.Extract(ctx, archivePath, staging); err != nil {
		return domain.InstallResult{}, zerr.With(err, "component", c.ID)
	}

	// Upstream archives carry a top-level cmdline-tools directory.
	src := staging
	if nested := filepath.Join(staging, "cmdline-tools"); fs.Exists(nested) {
		src = nested
	}

	if err := replaceDir(src, c.Location); err != nil {
		return domain.InstallResult{}, zerr.With(zerr.Wrap(domain.ErrInstallFailed, err.Error()), "component", c.ID)
	}

	rev, _ := Revision(c.Location)
	i.logger.Info("installed Android command-line tools " + rev)
	return domain.InstallResult{ComponentID: c.ID, Version: rev, Location: c.Location}, nil
}

func (i *Installer) installPackage(ctx context.Context, c domain.Component, opts domain.InstallOptions) (domain.InstallResult, error) {
	sdkRoot, ok := SDKRoot(c.Location, c.Name)
	if !ok {
		mismatch := zerr.With(zerr.Wrap(domain.ErrUnsupportedComponent, "location does not match package path"), "component", c.ID)
		return domain.InstallResult{}, zerr.With(mismatch, "location", c.Location)
	}

	want := opts.EffectiveVersion(c)
	if rev, ok := Revision(c.Location); ok && (want == "" || rev == want) {
		return domain.InstallResult{ComponentID: c.ID, Version: rev, Location: c.Location, AlreadyInstalled: true}, nil
	}

	sdkmanager := filepath.Join(sdkRoot, filepath.FromSlash(domain.CmdlineToolsDir), "bin", "sdkmanager")
	if !fs.Exists(sdkmanager) {
		return domain.InstallResult{}, zerr.With(zerr.Wrap(domain.ErrInstallFailed, "sdkmanager not found, install the command-line tools first"), "path", sdkmanager)
	}

	env := sdkEnv(sdkRoot)
	if err := i.runner.Run(ctx, domain.Command{
		Name:  sdkmanager,
		Args:  []string{"--sdk_root=" + sdkRoot, "--licenses"},
		Env:   env,
		Stdin: &yes{},
	}); err != nil {
		return domain.InstallResult{}, zerr.With(classify(err, domain.ErrInstallFailed), "component", c.ID)
	}

	if err := i.runner.Run(ctx, domain.Command{
		Name: sdkmanager,
		Args: []string{"--sdk_root=" + sdkRoot, "--install", c.Name},
		Env:  env,
	}); err != nil {
		return domain.InstallResult{}, zerr.With(classify(err, domain.ErrDownload), "component", c.ID)
	}

	rev, ok := Revision(c.Location)
	if !ok {
		return domain.InstallResult{}, zerr.With(zerr.Wrap(domain.ErrInstallFailed, "package missing after install"), "location", c.Location)
	}
	if want != "" && rev != want {
		versionErr := zerr.With(zerr.Wrap(domain.ErrUnsupportedComponent, "installed revision differs from pin"), "component", c.ID)
		return domain.InstallResult{}, zerr.With(versionErr, "revision", rev)
	}

	return domain.InstallResult{ComponentID: c.ID, Version: rev, Location: c.Location}, nil
}

// SDKRoot recovers the SDK root from a package location, e.g.
// ("/opt/android-sdk/ndk/28.0.13004108", "ndk;28.0.13004108") yields "/opt/android-sdk".
func SDKRoot(location, pkg string) (string, bool) {
	rel := domain.SDKPackagePath("", pkg)
	clean := filepath.Clean(location)
	root, ok := strings.CutSuffix(clean, string(filepath.Separator)+rel)
	if !ok || root == "" {
		return "", false
	}
	return root, true
}

func sdkEnv(sdkRoot string) []string {
	env := []string{domain.EnvAndroidHome + "=" + sdkRoot}
	if javaHome := os.Getenv("JAVA_HOME"); javaHome != "" {
		env = append(env, "JAVA_HOME="+javaHome)
	}
	return env
}

// replaceDir moves src to dst, removing a stale dst first.
func replaceDir(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return err
	}
	if err := os.RemoveAll(dst); err != nil {
		return err
	}
	return os.Rename(src, dst)
}

var (
	licenseMarkers = []string{"licenses not accepted", "were not accepted", "license not accepted"}
	networkMarkers = []string{"Failed to download", "UnknownHostException", "Connection refused", "timed out", "SSLException"}
)

// classify maps an sdkmanager failure to a domain error by its stderr.
// Failures without a known marker wrap fallback.
func classify(err, fallback error) error {
	stderr := shell.Stderr(err)
	switch {
	case strings.Contains(stderr, "Failed to find package"):
		return zerr.With(zerr.Wrap(domain.ErrUnsupportedComponent, "unknown SDK package"), "stderr", stderr)
	case containsAny(strings.ToLower(stderr), licenseMarkers):
		return zerr.With(zerr.Wrap(domain.ErrLicenseNotAccepted, "sdkmanager rejected the licenses"), "stderr", stderr)
	case containsAny(stderr, networkMarkers):
		return zerr.With(zerr.Wrap(domain.ErrDownload, err.Error()), "stderr", stderr)
	default:
		return zerr.Wrap(fallback, err.Error())
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// yes answers every prompt with y, like yes(1).
type yes struct {
	n int
}

func (y *yes) Read(p []byte) (int, error) {
	for i := range p {
		if y.n%2 == 0 {
			p[i] = 'y'
		} else {
			p[i] = '\n'
		}
		y.n++
	}
	return len(p), nil
}
