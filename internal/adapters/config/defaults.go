package config

import "go.trai.ch/rig/internal/core/domain"

// Pinned defaults of the reference build image.
const (
	defaultSDKDist   = "commandlinetools-linux-13114758_latest.zip"
	defaultSDKSHA256 = "7ec965280a073311c339e571cd5de778b9975026cfcbe79f2b1cdcb1e15317ee"
	defaultNDK       = "28.0.13004108"
)

// Default returns the configuration used when no rig.yaml exists.
// Parsed files are decoded on top of it, so omitted sections keep these values.
func Default() Rigfile {
	warm := true
	return Rigfile{
		Version: "1",
		Root:    ".",
		Artifacts: map[string]ArtifactDTO{
			domain.AndroidSDKArtifact: {
				URL:       domain.AndroidSDKBaseURL + defaultSDKDist,
				Digest:    defaultSDKSHA256,
				Algorithm: string(domain.SHA256),
			},
		},
		System: SystemDTO{Packages: []PackageDTO{
			{Name: "git", Version: "1:2.43.0-1ubuntu7.3"},
			{Name: "python3", Version: "3.12.3-0ubuntu2"},
			{Name: "unzip", Version: "6.0-28ubuntu4.1"},
			{Name: "rustup", Version: "1.26.0-5build1"},
		}},
		Android: AndroidDTO{
			Home:         domain.DefaultAndroidHome,
			CmdlineTools: domain.AndroidSDKArtifact,
			Packages:     []string{"platform-tools"},
			NDK:          defaultNDK,
		},
		Gradle: GradleDTO{
			Wrapper:    "java/gradlew",
			ProjectDir: "java",
			Warm:       &warm,
		},
		Rust: RustDTO{
			ToolchainFile: "rust-toolchain",
			Targets: []string{
				"aarch64-linux-android",
				"armv7-linux-androideabi",
				"x86_64-linux-android",
				"aarch64-unknown-linux-gnu",
			},
		},
		Native: NativeDTO{
			Snapshot: SnapshotDTO{From: string(domain.SnapshotFromGit), Rev: "HEAD"},
			Packages: []PackageDTO{
				{Name: "clang"},
				{Name: "protobuf-compiler"},
				{Name: "cmake"},
				{Name: "make"},
				{Name: "crossbuild-essential-arm64"},
			},
		},
		EntryPoint: EntryPointDTO{
			Path:        domain.DefaultEntryPoint,
			VersionEnv:  domain.DefaultVersionEnv,
			DefaultArgs: []string{"--help"},
		},
	}
}
