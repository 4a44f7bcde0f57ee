package config

import (
	"strings"

	"go.trai.ch/rig/internal/core/domain"
)

// applyEnv applies provisioning overrides from the environment on top of the parsed file.
func applyEnv(rf *Rigfile, getenv func(string) string) {
	if v := getenv(domain.EnvAndroidHome); v != "" {
		rf.Android.Home = v
	}

	dist, sum := getenv(domain.EnvAndroidSDKDist), getenv(domain.EnvAndroidSDKSHA)
	if dist != "" || sum != "" {
		if rf.Artifacts == nil {
			rf.Artifacts = make(map[string]ArtifactDTO)
		}
		art := rf.Artifacts[domain.AndroidSDKArtifact]
		if dist != "" {
			art.URL = domain.AndroidSDKBaseURL + dist
		}
		if sum != "" {
			art.Digest = sum
			art.Algorithm = string(domain.SHA256)
		}
		rf.Artifacts[domain.AndroidSDKArtifact] = art
	}

	if v := getenv(domain.EnvNDKVersion); v != "" {
		rf.Android.NDK = v
	}
	if v := getenv(domain.EnvRustTargets); v != "" {
		rf.Rust.Targets = splitList(v)
	}
	if v := getenv(domain.EnvSnapshotID); v != "" {
		rf.Native.Snapshot.From = string(domain.SnapshotFromID)
		rf.Native.Snapshot.ID = v
	}
	if v := getenv(domain.EnvGradleROCache); v != "" {
		rf.Gradle.ROCache = v
	}
	if v := getenv(domain.EnvGradleUserHome); v != "" {
		rf.Gradle.UserHome = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
