package app

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/zerr"
)

// passthroughEnv are the process variables forwarded to the build tool.
var passthroughEnv = []string{"PATH", "HOME", "USER", "LANG", "TERM", "TMPDIR", "JAVA_HOME"}

func defaultGetenv(k string) string {
	return os.Getenv(k)
}

// RunOptions tunes an in-process build invocation.
type RunOptions struct {
	ConfigPath string
}

// Run stamps a fresh version and forwards args to the build-tool wrapper.
// A nonzero exit of the tool is returned as *domain.BuildToolFailure.
func (a *App) Run(ctx context.Context, args []string, opts RunOptions) error {
	plan, err := a.load(opts.ConfigPath)
	if err != nil {
		return err
	}

	version, err := a.resolver.Resolve(ctx, plan.Root)
	if err != nil {
		return err
	}

	inv := a.invocation(plan, version, args)
	code, err := a.tool.Invoke(ctx, inv)
	if err != nil {
		return zerr.With(err, "version", version)
	}
	if code != 0 {
		return &domain.BuildToolFailure{Code: code}
	}
	return nil
}

// invocation mirrors the generated entrypoint: same wrapper, same project
// directory, run from the repository root.
func (a *App) invocation(plan *domain.Plan, version string, args []string) domain.BuildInvocation {
	ep := plan.EntryPoint
	if len(args) == 0 {
		args = ep.DefaultArgs
	}

	full := make([]string, 0, len(args)+2)
	if ep.ProjectDir != "" {
		full = append(full, "-p", ep.ProjectDir)
	}
	full = append(full, args...)

	tool := ep.Wrapper
	if !filepath.IsAbs(tool) {
		tool = filepath.Join(plan.Root, tool)
	}

	return domain.BuildInvocation{
		Tool:    tool,
		Version: version,
		Args:    full,
		Dir:     plan.Root,
		Env:     a.environment(plan, version),
	}
}

// environment builds the child environment from scratch for every invocation.
func (a *App) environment(plan *domain.Plan, version string) map[string]string {
	env := make(map[string]string, len(passthroughEnv)+6)
	for _, k := range passthroughEnv {
		if v := a.getenv(k); v != "" {
			env[k] = v
		}
	}

	env[domain.EnvAndroidHome] = plan.AndroidHome
	for _, c := range plan.Toolchain {
		if c.Kind == domain.KindAndroidSDK && c.Version != "" && c.Name == domain.NDKDirName+";"+c.Version {
			env[domain.EnvAndroidNDKHome] = c.Location
		}
	}
	if plan.Gradle.UserHome != "" {
		env[domain.EnvGradleUserHome] = plan.Gradle.UserHome
	}
	if plan.Gradle.ROCache != "" {
		env[domain.EnvGradleROCache] = plan.Gradle.ROCache
	}

	env[plan.EntryPoint.VersionEnv] = version
	return env
}
