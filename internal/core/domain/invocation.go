package domain

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// BuildInvocation is one call of the wrapped build tool.
type BuildInvocation struct {
	// Tool is the executable to run, e.g. the Gradle wrapper.
	Tool    string
	Version string
	Args    []string
	Dir     string
	// Env is the complete child environment; nothing is inherited implicitly.
	Env map[string]string
}

// Environ renders Env as sorted KEY=VALUE pairs.
func (b BuildInvocation) Environ() []string {
	env := make([]string, 0, len(b.Env))
	for k, v := range b.Env {
		env = append(env, k+"="+v)
	}
	slices.Sort(env)
	return env
}

// BuildToolFailure carries the nonzero exit status of the build tool.
type BuildToolFailure struct {
	Code int
}

func (e *BuildToolFailure) Error() string {
	return ErrBuildToolFailure.Error() + ": exit status " + strconv.Itoa(e.Code)
}

// Is makes errors.Is(err, ErrBuildToolFailure) hold.
func (e *BuildToolFailure) Is(target error) bool {
	return target == ErrBuildToolFailure
}

// ExitCode returns the status to propagate. Statuses outside 1..255 become 1.
func (e *BuildToolFailure) ExitCode() int {
	if e.Code < 1 || e.Code > 255 {
		return 1
	}
	return e.Code
}

var unsafeVersionChars = regexp.MustCompile(`[^A-Za-z0-9._+-]`)

// SanitizeVersion trims a describe string and replaces characters that are
// unsafe in an environment value.
func SanitizeVersion(raw string) string {
	return unsafeVersionChars.ReplaceAllString(strings.TrimSpace(raw), "-")
}

// EntryPoint describes the generated build script.
type EntryPoint struct {
	Path        string
	Wrapper     string
	ProjectDir  string
	VersionEnv  string
	DefaultArgs []string
}
