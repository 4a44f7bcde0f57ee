package domain

// SnapshotSource says where the pin for snapshot-pinned packages comes from.
type SnapshotSource string

const (
	// SnapshotFromGit derives the pin from the author time of a revision.
	SnapshotFromGit SnapshotSource = "git"
	// SnapshotFromID uses a literal snapshot identifier.
	SnapshotFromID SnapshotSource = "id"
)

// SnapshotSettings configures the package-repository snapshot.
type SnapshotSettings struct {
	From SnapshotSource
	ID   string
	// Rev is the revision whose author time becomes the pin; defaults to HEAD.
	Rev string
}

// GradleSettings locates the build-tool wrapper and its caches.
type GradleSettings struct {
	Wrapper    string
	ProjectDir string
	// UserHome is the writable cache root.
	UserHome string
	// ROCache is the optional read-only dependency cache; it is only passed through.
	ROCache string
	Warm    bool
}

// Plan is the resolved provisioning configuration.
type Plan struct {
	Root           string
	AndroidHome    string
	AcceptLicenses bool
	Artifacts      map[string]Artifact

	// Toolchain are installed before the workspace is cleaned, in order.
	Toolchain []Component
	Gradle    GradleSettings
	Clean     bool

	// Native are installed after the clean step under the snapshot pin.
	Native   []Component
	Snapshot SnapshotSettings

	EntryPoint EntryPoint
}

// Components returns every component of the plan in install order.
func (p *Plan) Components() []Component {
	all := make([]Component, 0, len(p.Toolchain)+len(p.Native))
	all = append(all, p.Toolchain...)
	return append(all, p.Native...)
}
