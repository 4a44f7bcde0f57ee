package domain_test

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rig/internal/core/domain"
)

func TestArtifact_Matches(t *testing.T) {
	sum := sha256.Sum256([]byte("hello"))
	lower := fmt.Sprintf("%x", sum)

	tests := []struct {
		name     string
		expected string
		want     bool
	}{
		{"exact", lower, true},
		{"upper case", strings.ToUpper(lower), true},
		{"surrounding whitespace", "  " + lower + "\n", true},
		{"mismatch", strings.Repeat("0", 64), false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := domain.Artifact{Digest: tt.expected}
			assert.Equal(t, tt.want, a.Matches(sum[:]))
		})
	}
}

func TestAlgorithm_NewHash(t *testing.T) {
	for _, alg := range []domain.Algorithm{"", domain.SHA256, domain.SHA512, domain.SHA1} {
		h, err := alg.NewHash()
		require.NoError(t, err, string(alg))
		assert.NotNil(t, h)
	}

	_, err := domain.Algorithm("md5").NewHash()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedAlgorithm)
}

func TestSnapshotPin(t *testing.T) {
	t.Run("format is second precision UTC", func(t *testing.T) {
		loc := time.FixedZone("CEST", 2*60*60)
		pin := domain.NewSnapshotPin(time.Date(2025, 3, 14, 11, 30, 5, 999, loc))
		assert.Equal(t, "20250314T093005Z", pin.String())
	})

	t.Run("parse round trip", func(t *testing.T) {
		pin, err := domain.ParseSnapshot("20250314T093005Z")
		require.NoError(t, err)
		assert.Equal(t, "20250314T093005Z", pin.String())
	})

	t.Run("parse rejects garbage", func(t *testing.T) {
		_, err := domain.ParseSnapshot("yesterday")
		assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)
	})

	t.Run("from unix", func(t *testing.T) {
		pin, err := domain.SnapshotFromUnix("1741944605\n")
		require.NoError(t, err)
		assert.Equal(t, "20250314T093005Z", pin.String())

		_, err = domain.SnapshotFromUnix("abc")
		assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)
	})

	t.Run("allows", func(t *testing.T) {
		pin, err := domain.ParseSnapshot("20250314T093005Z")
		require.NoError(t, err)
		assert.True(t, pin.Allows(time.Time{}))
		assert.True(t, pin.Allows(pin.Time))
		assert.True(t, pin.Allows(pin.Time.Add(-time.Hour)))
		assert.False(t, pin.Allows(pin.Time.Add(time.Second)))
	})
}

func TestSanitizeVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"v0.52.1\n", "v0.52.1"},
		{"v0.52.1-3-gabc1234", "v0.52.1-3-gabc1234"},
		{"abc1234", "abc1234"},
		{"v1.0 beta$(rm)", "v1.0-beta--rm-"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.SanitizeVersion(tt.in))
		})
	}
}

func TestInstallRecord_Satisfies(t *testing.T) {
	pin, err := domain.ParseSnapshot("20250101T000000Z")
	require.NoError(t, err)

	comp := domain.Component{ID: "rust-toolchain:1.85.0", Version: "1.85.0", Targets: []string{"aarch64-linux-android"}}
	record := &domain.InstallRecord{
		ComponentID: comp.ID,
		Version:     "1.85.0",
		Snapshot:    pin.String(),
		Targets:     []string{"aarch64-linux-android", "x86_64-linux-android"},
	}

	assert.True(t, record.Satisfies(comp, domain.InstallOptions{}))
	assert.True(t, record.Satisfies(comp, domain.InstallOptions{Snapshot: &pin}))
	assert.False(t, record.Satisfies(comp, domain.InstallOptions{Version: "1.86.0"}))

	other, err := domain.ParseSnapshot("20250102T000000Z")
	require.NoError(t, err)
	assert.False(t, record.Satisfies(comp, domain.InstallOptions{Snapshot: &other}))

	comp.Targets = append(comp.Targets, "armv7-linux-androideabi")
	assert.False(t, record.Satisfies(comp, domain.InstallOptions{}))

	var missing *domain.InstallRecord
	assert.False(t, missing.Satisfies(comp, domain.InstallOptions{}))
}

func TestBuildToolFailure(t *testing.T) {
	var err error = &domain.BuildToolFailure{Code: 3}
	assert.ErrorIs(t, err, domain.ErrBuildToolFailure)
	assert.Contains(t, err.Error(), "exit status 3")

	var failure *domain.BuildToolFailure
	require.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &failure))
	assert.Equal(t, 3, failure.ExitCode())

	assert.Equal(t, 143, (&domain.BuildToolFailure{Code: 143}).ExitCode())
	assert.Equal(t, 1, (&domain.BuildToolFailure{Code: -1}).ExitCode())
}

func TestBuildInvocation_Environ(t *testing.T) {
	inv := domain.BuildInvocation{Env: map[string]string{"B": "2", "A": "1"}}
	assert.Equal(t, []string{"A=1", "B=2"}, inv.Environ())
}

func TestSDKPackagePath(t *testing.T) {
	assert.Equal(t, "/opt/android-sdk/ndk/28.0.13004108", domain.SDKPackagePath("/opt/android-sdk", "ndk;28.0.13004108"))
	assert.Equal(t, "/opt/android-sdk/platform-tools", domain.SDKPackagePath("/opt/android-sdk", "platform-tools"))
	assert.Equal(t, domain.NDKPath("/opt/android-sdk", "28.0.13004108"), domain.SDKPackagePath("/opt/android-sdk", "ndk;28.0.13004108"))
}

func TestStepStatus(t *testing.T) {
	tests := []struct {
		status     domain.StepStatus
		isTerminal bool
	}{
		{domain.StepPending, false},
		{domain.StepRunning, false},
		{domain.StepCompleted, true},
		{domain.StepFailed, true},
		{domain.StepCached, true},
		{domain.StepSkipped, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isTerminal, tt.status.IsTerminal())
			assert.Equal(t, tt.status, domain.NormalizeStepStatus(strings.ToUpper(string(tt.status))))
		})
	}
	assert.Equal(t, domain.StepPending, domain.NormalizeStepStatus("unknown"))
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", domain.LogLevelDebug.String())
	assert.Equal(t, "INFO", domain.LogLevelInfo.String())
	assert.Equal(t, "WARN", domain.LogLevelWarn.String())
	assert.Equal(t, "ERROR", domain.LogLevelError.String())
	assert.Equal(t, "INFO", domain.LogLevel(999).String())
}
