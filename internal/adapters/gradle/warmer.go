// Package gradle drives the Gradle wrapper: cache warm-up and build invocation.
package gradle

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/rig/internal/adapters/fs"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
)

// Warmer implements ports.CacheWarmer.
type Warmer struct {
	runner ports.CommandRunner
}

// NewWarmer creates a new Warmer.
func NewWarmer(runner ports.CommandRunner) *Warmer {
	return &Warmer{runner: runner}
}

// Warm runs the wrapper with --version so that it downloads its distribution into the user home.
func (w *Warmer) Warm(ctx context.Context, settings domain.GradleSettings) error {
	if err := CheckWrapper(settings.Wrapper); err != nil {
		return err
	}
	if settings.ROCache != "" && fs.IsWithin(settings.ROCache, settings.UserHome) {
		guard := zerr.With(zerr.Wrap(domain.ErrReadOnlyCacheWrite, "gradle user home"), "user_home", settings.UserHome)
		return zerr.With(guard, "ro_cache", settings.ROCache)
	}

	dir := settings.ProjectDir
	if dir == "" {
		dir = filepath.Dir(settings.Wrapper)
	}

	err := w.runner.Run(ctx, domain.Command{
		Name: settings.Wrapper,
		Args: []string{"--version"},
		Dir:  dir,
		Env:  Environ(settings),
	})
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWrapperUnavailable, err.Error()), "wrapper", settings.Wrapper)
	}
	return nil
}

// CheckWrapper verifies that the wrapper exists and is executable.
func CheckWrapper(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWrapperUnavailable, "wrapper not found"), "wrapper", path)
	}
	if info.IsDir() || info.Mode().Perm()&0o111 == 0 {
		return zerr.With(zerr.Wrap(domain.ErrWrapperUnavailable, "wrapper is not executable"), "wrapper", path)
	}
	return nil
}

// Env returns the Gradle-specific variables for a build or warm-up.
func Env(settings domain.GradleSettings) map[string]string {
	env := make(map[string]string, 3)
	if settings.UserHome != "" {
		env[domain.EnvGradleUserHome] = settings.UserHome
	}
	if settings.ROCache != "" {
		env[domain.EnvGradleROCache] = settings.ROCache
	}
	if javaHome := os.Getenv("JAVA_HOME"); javaHome != "" {
		env["JAVA_HOME"] = javaHome
	}
	return env
}

// Environ renders Env as KEY=VALUE pairs.
func Environ(settings domain.GradleSettings) []string {
	return domain.BuildInvocation{Env: Env(settings)}.Environ()
}
