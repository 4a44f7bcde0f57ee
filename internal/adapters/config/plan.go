package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/rig/internal/adapters/apt"
	"go.trai.ch/rig/internal/adapters/fs"
	"go.trai.ch/rig/internal/adapters/rustup"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/zerr"
)

const cmdlineToolsName = "cmdline-tools"

var envName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (l *Loader) build(rf Rigfile, root string) (*domain.Plan, error) {
	artifacts, err := buildArtifacts(rf.Artifacts, root)
	if err != nil {
		return nil, err
	}

	androidHome := resolve(root, rf.Android.Home)
	if androidHome == "" {
		androidHome = domain.DefaultAndroidHome
	}

	plan := &domain.Plan{
		Root:           root,
		AndroidHome:    androidHome,
		AcceptLicenses: rf.Licenses.Accept,
		Artifacts:      artifacts,
		Clean:          l.cleanWorkspace(rf.Workspace),
	}

	system := packages(domain.KindSystem, rf.System.Packages)
	plan.Toolchain = append(plan.Toolchain, system...)

	android, err := androidComponents(rf.Android, androidHome, artifacts)
	if err != nil {
		return nil, err
	}
	plan.Toolchain = append(plan.Toolchain, android...)

	rust, ok, err := l.rustComponent(rf.Rust, root, system)
	if err != nil {
		return nil, err
	}
	if ok {
		plan.Toolchain = append(plan.Toolchain, rust)
	}

	plan.Gradle = domain.GradleSettings{
		Wrapper:    resolve(root, rf.Gradle.Wrapper),
		ProjectDir: resolve(root, rf.Gradle.ProjectDir),
		UserHome:   resolve(root, rf.Gradle.UserHome),
		ROCache:    resolve(root, rf.Gradle.ROCache),
		Warm:       rf.Gradle.Warm != nil && *rf.Gradle.Warm && rf.Gradle.Wrapper != "",
	}
	if plan.Gradle.UserHome == "" {
		plan.Gradle.UserHome = defaultGradleHome()
	}

	plan.Snapshot, err = snapshotSettings(rf.Native.Snapshot)
	if err != nil {
		return nil, err
	}
	plan.Native = packages(domain.KindSystem, rf.Native.Packages)

	plan.EntryPoint, err = entryPoint(rf.EntryPoint, root, plan.Gradle)
	if err != nil {
		return nil, err
	}

	if err := validate(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func buildArtifacts(dtos map[string]ArtifactDTO, root string) (map[string]domain.Artifact, error) {
	artifacts := make(map[string]domain.Artifact, len(dtos))
	for name, dto := range dtos {
		if dto.URL == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "artifact has no url"), "artifact", name)
		}
		if dto.Digest == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "artifact has no digest"), "artifact", name)
		}
		alg := domain.Algorithm(dto.Algorithm)
		if _, err := alg.NewHash(); err != nil {
			return nil, zerr.With(err, "artifact", name)
		}
		if dto.SignatureURL != "" && dto.Keyring == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "signature needs a keyring"), "artifact", name)
		}
		artifacts[name] = domain.Artifact{
			Name:         name,
			URL:          dto.URL,
			Digest:       dto.Digest,
			Algorithm:    alg,
			SignatureURL: dto.SignatureURL,
			KeyringPath:  resolve(root, dto.Keyring),
		}
	}
	return artifacts, nil
}

func packages(kind domain.ComponentKind, dtos []PackageDTO) []domain.Component {
	out := make([]domain.Component, 0, len(dtos))
	for _, p := range dtos {
		out = append(out, domain.Component{
			ID:        domain.NewComponentID(kind, p.Name),
			Kind:      kind,
			Name:      p.Name,
			Version:   p.Version,
			Location:  apt.DefaultLocation,
			DependsOn: p.DependsOn,
		})
	}
	return out
}

func androidComponents(dto AndroidDTO, home string, artifacts map[string]domain.Artifact) ([]domain.Component, error) {
	var out []domain.Component
	var deps []string

	if dto.CmdlineTools != "" {
		art, ok := artifacts[dto.CmdlineTools]
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrArtifactNotFound, "unknown artifact reference"), "artifact", dto.CmdlineTools)
		}
		tools := domain.Component{
			ID:       domain.NewComponentID(domain.KindAndroidCmdlineTools, cmdlineToolsName),
			Kind:     domain.KindAndroidCmdlineTools,
			Name:     cmdlineToolsName,
			Location: filepath.Join(home, filepath.FromSlash(domain.CmdlineToolsDir)),
			Artifact: &art,
		}
		out = append(out, tools)
		deps = []string{tools.ID}
	}

	for _, name := range dto.Packages {
		out = append(out, sdkPackage(home, name, "", deps))
	}
	if dto.NDK != "" {
		out = append(out, sdkPackage(home, domain.NDKDirName+";"+dto.NDK, dto.NDK, deps))
	}
	return out, nil
}

func sdkPackage(home, name, version string, deps []string) domain.Component {
	return domain.Component{
		ID:              domain.NewComponentID(domain.KindAndroidSDK, name),
		Kind:            domain.KindAndroidSDK,
		Name:            name,
		Version:         version,
		Location:        domain.SDKPackagePath(home, name),
		DependsOn:       deps,
		RequiresLicense: true,
	}
}

func (l *Loader) rustComponent(dto RustDTO, root string, system []domain.Component) (domain.Component, bool, error) {
	channel := dto.Channel
	if channel == "" && dto.ToolchainFile != "" {
		path := resolve(root, dto.ToolchainFile)
		data, err := os.ReadFile(path) //nolint:gosec // path comes from the config file
		switch {
		case err == nil:
			channel, err = parseToolchainFile(data)
			if err != nil {
				return domain.Component{}, false, zerr.With(err, "path", path)
			}
		case os.IsNotExist(err):
			l.logger.Warn("rust toolchain file " + path + " not found, falling back to stable")
			channel = "stable"
		default:
			return domain.Component{}, false, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
		}
	}
	if channel == "" {
		return domain.Component{}, false, nil
	}

	c := domain.Component{
		ID:       domain.NewComponentID(domain.KindRustToolchain, channel),
		Kind:     domain.KindRustToolchain,
		Name:     channel,
		Version:  channel,
		Location: rustup.DefaultLocation(),
		Targets:  dto.Targets,
	}
	rustupID := domain.NewComponentID(domain.KindSystem, "rustup")
	for _, s := range system {
		if s.ID == rustupID {
			c.DependsOn = []string{rustupID}
		}
	}
	return c, true, nil
}

func snapshotSettings(dto SnapshotDTO) (domain.SnapshotSettings, error) {
	switch domain.SnapshotSource(dto.From) {
	case domain.SnapshotFromID:
		if _, err := domain.ParseSnapshot(dto.ID); err != nil {
			return domain.SnapshotSettings{}, err
		}
		return domain.SnapshotSettings{From: domain.SnapshotFromID, ID: dto.ID}, nil
	case domain.SnapshotFromGit, "":
		rev := dto.Rev
		if rev == "" {
			rev = "HEAD"
		}
		return domain.SnapshotSettings{From: domain.SnapshotFromGit, Rev: rev}, nil
	default:
		return domain.SnapshotSettings{}, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "unknown snapshot source"), "from", dto.From)
	}
}

// cleanWorkspace defaults to cleaning only inside a container, where the
// checkout is disposable.
func (l *Loader) cleanWorkspace(dto WorkspaceDTO) bool {
	container := l.inContainer()
	if dto.Clean == nil {
		return container
	}
	if *dto.Clean && !container {
		l.logger.Warn("workspace.clean is on outside a container, untracked files in the repository will be deleted")
	}
	return *dto.Clean
}

// entryPoint falls back to the gradle section for the wrapper and project
// directory, so the script and `rig run` start the same build.
func entryPoint(dto EntryPointDTO, root string, gradle domain.GradleSettings) (domain.EntryPoint, error) {
	ep := domain.EntryPoint{
		Path:        resolve(root, dto.Path),
		Wrapper:     dto.Wrapper,
		ProjectDir:  dto.ProjectDir,
		VersionEnv:  dto.VersionEnv,
		DefaultArgs: dto.DefaultArgs,
	}
	if ep.Wrapper == "" && gradle.Wrapper != "" {
		ep.Wrapper = relativeTo(root, gradle.Wrapper)
		if !filepath.IsAbs(ep.Wrapper) {
			ep.Wrapper = "./" + ep.Wrapper
		}
	}
	if ep.ProjectDir == "" && gradle.ProjectDir != "" {
		if dir := relativeTo(root, gradle.ProjectDir); dir != "." {
			ep.ProjectDir = dir
		}
	}
	if ep.Path == "" {
		ep.Path = filepath.Join(root, domain.DefaultEntryPoint)
	}
	if ep.VersionEnv == "" {
		ep.VersionEnv = domain.DefaultVersionEnv
	}
	if !envName.MatchString(ep.VersionEnv) {
		return domain.EntryPoint{}, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "not a valid environment variable name"), "version_env", ep.VersionEnv)
	}
	if ep.Wrapper == "" {
		return domain.EntryPoint{}, zerr.Wrap(domain.ErrConfigInvalid, "entrypoint needs a wrapper")
	}
	return ep, nil
}

// relativeTo returns path relative to root in slash form, or path itself when it lies outside root.
func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}

func validate(plan *domain.Plan) error {
	graph := domain.NewGraph()
	for _, c := range plan.Components() {
		if c.Name == "" {
			return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "component has no name"), "kind", string(c.Kind))
		}
		if err := graph.AddComponent(c); err != nil {
			return err
		}
	}
	if err := graph.Validate(); err != nil {
		return err
	}

	ro := plan.Gradle.ROCache
	if ro == "" {
		return nil
	}
	writable := map[string]string{
		"root":          plan.Root,
		"android_home":  plan.AndroidHome,
		"gradle_home":   plan.Gradle.UserHome,
		"entrypoint":    plan.EntryPoint.Path,
		"install_state": domain.DefaultStatePath(),
	}
	for name, path := range writable {
		if fs.IsWithin(ro, path) {
			violation := zerr.With(zerr.Wrap(domain.ErrReadOnlyCacheWrite, "refusing writable location"), "location", name)
			return zerr.With(zerr.With(violation, "path", path), "ro_cache", ro)
		}
	}
	return nil
}

func defaultGradleHome() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, ".gradle")
	}
	return ".gradle"
}
