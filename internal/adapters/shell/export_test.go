package shell

import "go.trai.ch/rig/internal/core/ports"

// ResolveEnvironment is exported for white-box tests.
var ResolveEnvironment = resolveEnvironment

// NewRunnerWithEnv creates a runner that sees sysEnv as the system environment.
func NewRunnerWithEnv(logger ports.Logger, sysEnv []string) *Runner {
	return &Runner{logger: logger, sysEnv: func() []string { return sysEnv }}
}
