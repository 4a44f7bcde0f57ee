package config

import "go.trai.ch/rig/internal/core/ports"

var ParseToolchainFile = parseToolchainFile

// NewLoaderWithEnv creates a Loader with a fixed environment and working directory.
func NewLoaderWithEnv(logger ports.Logger, env map[string]string, cwd string) *Loader {
	return &Loader{
		logger: logger,
		getenv: func(k string) string { return env[k] },
		getwd:  func() (string, error) { return cwd, nil },
		exists: func(string) bool { return false },
	}
}
