package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// ComponentKind selects the installer backend responsible for a component.
type ComponentKind string

const (
	// KindSystem is an operating system package installed through apt.
	KindSystem ComponentKind = "system"
	// KindAndroidCmdlineTools is the Android SDK command-line tools bootstrap archive.
	KindAndroidCmdlineTools ComponentKind = "android-cmdline-tools"
	// KindAndroidSDK is a package installed through sdkmanager (platform-tools, ndk;<version>, ...).
	KindAndroidSDK ComponentKind = "android-sdk"
	// KindRustToolchain is a rustup toolchain with its cross-compilation targets.
	KindRustToolchain ComponentKind = "rust-toolchain"
)

// Component is a toolchain piece to be installed.
type Component struct {
	// ID is unique across the pipeline, e.g. "system:git" or "android-sdk:ndk;28.0.13004108".
	ID string
	Kind ComponentKind
	// Name is the backend-specific package name.
	Name string
	// Version is an exact version pin; empty means whatever the backend resolves.
	Version string
	// Location is the install root; unique per ID.
	Location string
	// DependsOn lists component IDs that must be installed first.
	DependsOn []string
	// RequiresLicense marks components gated behind license acceptance.
	RequiresLicense bool
	// Targets lists cross-compilation targets for toolchain components.
	Targets []string
	// Artifact is set for components unpacked from a verified download.
	Artifact *Artifact
}

// NewComponentID builds the canonical identifier of a component.
func NewComponentID(kind ComponentKind, name string) string {
	return string(kind) + ":" + name
}

// InstallOptions tunes a single install call.
type InstallOptions struct {
	// Version overrides the component's own pin when non-empty.
	Version string
	// Snapshot restricts package-repository reads to state no newer than the pin.
	Snapshot *SnapshotPin
	// AcceptLicenses answers license prompts non-interactively.
	AcceptLicenses bool
}

// EffectiveVersion returns the version an install call should honour.
func (o InstallOptions) EffectiveVersion(c Component) string {
	if o.Version != "" {
		return o.Version
	}
	return c.Version
}

// InstallResult describes the state after an install call.
type InstallResult struct {
	ComponentID      string
	Version          string
	Location         string
	AlreadyInstalled bool
}

// InstallRecord is persisted after a component was installed successfully.
type InstallRecord struct {
	ComponentID string    `json:"component_id,omitzero"`
	Version     string    `json:"version,omitzero"`
	Location    string    `json:"location,omitzero"`
	Snapshot    string    `json:"snapshot,omitzero"`
	Targets     []string  `json:"targets,omitempty"`
	RunID       string    `json:"run_id,omitzero"`
	InstalledAt time.Time `json:"installed_at,omitzero"`
}

// Satisfies reports whether the record covers the requested install.
// Targets of the request must be a subset of the recorded targets.
func (r *InstallRecord) Satisfies(c Component, opts InstallOptions) bool {
	if r == nil || r.ComponentID != c.ID {
		return false
	}
	if want := opts.EffectiveVersion(c); want != "" && r.Version != want {
		return false
	}
	if opts.Snapshot != nil && r.Snapshot != opts.Snapshot.String() {
		return false
	}
	have := make(map[string]struct{}, len(r.Targets))
	for _, t := range r.Targets {
		have[t] = struct{}{}
	}
	for _, t := range c.Targets {
		if _, ok := have[t]; !ok {
			return false
		}
	}
	return true
}

// SDKPackagePath converts an sdkmanager package path ("ndk;28.0.13004108") to its directory.
func SDKPackagePath(androidHome, pkg string) string {
	return filepath.Join(androidHome, filepath.FromSlash(strings.ReplaceAll(pkg, ";", "/")))
}
