package domain

import (
	"os"
	"path/filepath"
)

const (
	// RigDirName is the name of the rig metadata directory under the user cache.
	RigDirName = "rig"

	// StateDirName is the name of the install state directory.
	StateDirName = "state"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// PackagesDirName is the name of the package index cache directory.
	PackagesDirName = "packages"

	// ConfigFileName is the name of the pipeline configuration file.
	ConfigFileName = "rig.yaml"

	// DefaultAndroidHome is the fixed Android SDK root.
	DefaultAndroidHome = "/opt/android-sdk"

	// NDKDirName is the directory under the SDK root holding versioned NDKs.
	NDKDirName = "ndk"

	// CmdlineToolsDir is the location of the command-line tools relative to the SDK root.
	CmdlineToolsDir = "cmdline-tools/latest"

	// DefaultEntryPoint is the default path of the generated entry point script.
	DefaultEntryPoint = "build.sh"

	// DefaultVersionEnv is the environment variable that receives the version string.
	DefaultVersionEnv = "OVERRIDE_VERSION"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the permission for generated executables (rwxr-xr-x).
	ExecPerm = 0o755
)

// Environment variables consumed at provisioning or invocation time.
const (
	EnvConfig          = "RIG_CONFIG"
	EnvStateDir        = "RIG_STATE_DIR"
	EnvSnapshotMirror  = "RIG_SNAPSHOT_MIRROR"
	EnvAndroidHome     = "ANDROID_HOME"
	EnvAndroidNDKHome  = "ANDROID_NDK_HOME"
	EnvAndroidSDKDist  = "ANDROID_SDK_DIST"
	EnvAndroidSDKSHA   = "ANDROID_SDK_SHA256"
	EnvNDKVersion      = "NDK_VERSION"
	EnvRustTargets     = "RUST_TARGETS"
	EnvSnapshotID      = "SNAPSHOT_ID"
	EnvGradleROCache   = "GRADLE_RO_DEP_CACHE"
	EnvGradleUserHome  = "GRADLE_USER_HOME"
	AndroidSDKBaseURL  = "https://dl.google.com/android/repository/"
	SnapshotMirror     = "https://snapshot.ubuntu.com/ubuntu"
	AndroidSDKArtifact = "android-sdk"
)

// DefaultRigPath returns the root directory for rig metadata.
// It lives under the user cache so that cleaning the workspace does not erase it.
func DefaultRigPath() string {
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		return "." + RigDirName
	}
	return filepath.Join(dir, RigDirName)
}

// DefaultStatePath returns the path for install records.
// RIG_STATE_DIR overrides the default of the rig root joined with state.
func DefaultStatePath() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return dir
	}
	return filepath.Join(DefaultRigPath(), StateDirName)
}

// DefaultPackageCachePath returns the default path for the package index cache.
// It joins the rig root, cache, and packages.
func DefaultPackageCachePath() string {
	return filepath.Join(DefaultRigPath(), CacheDirName, PackagesDirName)
}

// NDKPath returns the install root of an NDK version under the SDK root.
func NDKPath(androidHome, version string) string {
	return filepath.Join(androidHome, NDKDirName, version)
}
