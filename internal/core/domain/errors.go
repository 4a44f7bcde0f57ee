package domain

import "go.trai.ch/zerr"

var (
	// ErrIntegrity is returned when a fetched artifact does not match its expected digest or signature.
	ErrIntegrity = zerr.New("artifact integrity check failed")

	// ErrDownload is returned when a network or mirror failure prevents fetching or installing.
	ErrDownload = zerr.New("download failed")

	// ErrLicenseNotAccepted is returned when a component needs license acceptance and it was not granted.
	ErrLicenseNotAccepted = zerr.New("license not accepted")

	// ErrUnsupportedComponent is returned for an unknown component kind, identifier or version.
	ErrUnsupportedComponent = zerr.New("unsupported component")

	// ErrWrapperUnavailable is returned when the build-tool wrapper cannot report its version.
	ErrWrapperUnavailable = zerr.New("build tool wrapper unavailable")

	// ErrBuildToolFailure is returned when the wrapped build tool exits with a nonzero status.
	ErrBuildToolFailure = zerr.New("build tool failed")

	// ErrInstallFailed is returned when an installer command fails for reasons other than the network.
	ErrInstallFailed = zerr.New("component installation failed")

	// ErrUnsupportedAlgorithm is returned when an artifact declares an unknown digest algorithm.
	ErrUnsupportedAlgorithm = zerr.New("unsupported digest algorithm")

	// ErrArtifactNotFound is returned when a component references an artifact that is not declared.
	ErrArtifactNotFound = zerr.New("artifact not found")

	// ErrInvalidSnapshot is returned when a snapshot identifier cannot be parsed.
	ErrInvalidSnapshot = zerr.New("invalid snapshot identifier, expected format YYYYMMDDTHHMMSSZ")

	// ErrSnapshotViolation is returned when a package index returns a package newer than the active pin.
	ErrSnapshotViolation = zerr.New("package is newer than the snapshot pin")

	// ErrPackageNotFound is returned when a package is absent from the pinned package universe.
	ErrPackageNotFound = zerr.New("package not found in snapshot")

	// ErrIndexRequestFailed is returned when the package index cannot be queried.
	ErrIndexRequestFailed = zerr.New("failed to query package index")

	// ErrIndexParseFailed is returned when the package index cannot be parsed.
	ErrIndexParseFailed = zerr.New("failed to parse package index")

	// ErrIndexCacheWriteFailed is returned when writing to the package index cache fails.
	ErrIndexCacheWriteFailed = zerr.New("failed to write package index cache")

	// ErrExtractFailed is returned when an archive cannot be unpacked.
	ErrExtractFailed = zerr.New("failed to extract archive")

	// ErrUnsafeArchivePath is returned when an archive entry escapes the destination directory.
	ErrUnsafeArchivePath = zerr.New("archive entry escapes destination")

	// ErrCommandFailed is returned when an external command exits with a nonzero status.
	ErrCommandFailed = zerr.New("command failed")

	// ErrVersionResolveFailed is returned when the version string cannot be derived from git.
	ErrVersionResolveFailed = zerr.New("failed to resolve version from source control")

	// ErrToolchainFileInvalid is returned when the rust-toolchain file has no channel.
	ErrToolchainFileInvalid = zerr.New("rust-toolchain file does not name a channel")

	// ErrStoreCreateFailed is returned when the install state directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create install state directory")

	// ErrStoreReadFailed is returned when an install record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read install record")

	// ErrStoreUnmarshalFailed is returned when an install record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal install record")

	// ErrStoreMarshalFailed is returned when an install record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal install record")

	// ErrStoreWriteFailed is returned when an install record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write install record")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config file is structurally valid but semantically wrong.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrReadOnlyCacheWrite is returned when a writable location lies inside the read-only cache.
	ErrReadOnlyCacheWrite = zerr.New("writable path is inside the read-only dependency cache")

	// ErrDuplicateComponent is returned when two components share an ID.
	ErrDuplicateComponent = zerr.New("duplicate component")

	// ErrMissingDependency is returned when a component depends on an undeclared component.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when component dependencies form a cycle.
	ErrCycleDetected = zerr.New("dependency cycle detected")

	// ErrDependencyOrder is returned when a dependency would be installed after its dependent.
	ErrDependencyOrder = zerr.New("dependency installed out of order")

	// ErrEntryPointWriteFailed is returned when the entry point script cannot be written.
	ErrEntryPointWriteFailed = zerr.New("failed to write entry point")
)
