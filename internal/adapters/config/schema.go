package config

// Rigfile represents the structure of the rig.yaml configuration file.
type Rigfile struct {
	Version    string                 `yaml:"version"`
	Root       string                 `yaml:"root"`
	Licenses   LicensesDTO            `yaml:"licenses"`
	Artifacts  map[string]ArtifactDTO `yaml:"artifacts"`
	System     SystemDTO              `yaml:"system"`
	Android    AndroidDTO             `yaml:"android"`
	Gradle     GradleDTO              `yaml:"gradle"`
	Rust       RustDTO                `yaml:"rust"`
	Workspace  WorkspaceDTO           `yaml:"workspace"`
	Native     NativeDTO              `yaml:"native"`
	EntryPoint EntryPointDTO          `yaml:"entrypoint"`
}

// LicensesDTO controls license acceptance.
type LicensesDTO struct {
	Accept bool `yaml:"accept"`
}

// ArtifactDTO describes a verified download.
type ArtifactDTO struct {
	URL          string `yaml:"url"`
	Digest       string `yaml:"digest"`
	Algorithm    string `yaml:"algorithm"`
	SignatureURL string `yaml:"signatureUrl"`
	Keyring      string `yaml:"keyring"`
}

// PackageDTO is a package name with an optional exact version.
type PackageDTO struct {
	Name      string   `yaml:"name"`
	Version   string   `yaml:"version"`
	DependsOn []string `yaml:"dependsOn"`
}

// SystemDTO lists the system packages installed first.
type SystemDTO struct {
	Packages []PackageDTO `yaml:"packages"`
}

// AndroidDTO configures the SDK root and its packages.
type AndroidDTO struct {
	Home         string   `yaml:"home"`
	CmdlineTools string   `yaml:"cmdlineTools"`
	Packages     []string `yaml:"packages"`
	NDK          string   `yaml:"ndk"`
}

// GradleDTO configures the wrapper and its caches.
type GradleDTO struct {
	Wrapper    string `yaml:"wrapper"`
	ProjectDir string `yaml:"projectDir"`
	UserHome   string `yaml:"userHome"`
	ROCache    string `yaml:"roCache"`
	Warm       *bool  `yaml:"warm"`
}

// RustDTO configures the Rust toolchain.
type RustDTO struct {
	ToolchainFile string   `yaml:"toolchainFile"`
	Channel       string   `yaml:"channel"`
	Targets       []string `yaml:"targets"`
}

// WorkspaceDTO configures the workspace clean step.
type WorkspaceDTO struct {
	Clean *bool `yaml:"clean"`
}

// NativeDTO lists snapshot-pinned packages.
type NativeDTO struct {
	Snapshot SnapshotDTO  `yaml:"snapshot"`
	Packages []PackageDTO `yaml:"packages"`
}

// SnapshotDTO selects where the snapshot pin comes from.
type SnapshotDTO struct {
	From string `yaml:"from"`
	ID   string `yaml:"id"`
	Rev  string `yaml:"rev"`
}

// EntryPointDTO configures the generated build script.
type EntryPointDTO struct {
	Path        string   `yaml:"path"`
	Wrapper     string   `yaml:"wrapper"`
	ProjectDir  string   `yaml:"projectDir"`
	VersionEnv  string   `yaml:"versionEnv"`
	DefaultArgs []string `yaml:"defaultArgs"`
}
