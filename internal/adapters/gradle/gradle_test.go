package gradle_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rig/internal/adapters/gradle"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writeWrapper(t *testing.T, body string, perm os.FileMode) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "java")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	path := filepath.Join(dir, "gradlew")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), perm))
	return path
}

func TestWarmer_Warm(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	wrapper := writeWrapper(t, "exit 0\n", 0o755)
	userHome := filepath.Join(t.TempDir(), "gradle-home")

	runner.EXPECT().Run(gomock.Any(), mocks.CommandNamed(wrapper, "--version")).DoAndReturn(
		func(_ context.Context, cmd domain.Command) error {
			assert.Equal(t, filepath.Dir(wrapper), cmd.Dir)
			assert.Contains(t, cmd.Env, "GRADLE_USER_HOME="+userHome)
			assert.Contains(t, cmd.Env, "GRADLE_RO_DEP_CACHE=/.gradle-ro-cache")
			return nil
		})

	err := gradle.NewWarmer(runner).Warm(context.Background(), domain.GradleSettings{
		Wrapper:  wrapper,
		UserHome: userHome,
		ROCache:  "/.gradle-ro-cache",
	})
	require.NoError(t, err)
}

func TestWarmer_Warm_Failures(t *testing.T) {
	t.Run("missing wrapper", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockCommandRunner(ctrl)

		err := gradle.NewWarmer(runner).Warm(context.Background(), domain.GradleSettings{Wrapper: filepath.Join(t.TempDir(), "gradlew")})
		assert.True(t, errors.Is(err, domain.ErrWrapperUnavailable))
	})

	t.Run("not executable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockCommandRunner(ctrl)

		err := gradle.NewWarmer(runner).Warm(context.Background(), domain.GradleSettings{Wrapper: writeWrapper(t, "", 0o644)})
		assert.True(t, errors.Is(err, domain.ErrWrapperUnavailable))
	})

	t.Run("nonzero exit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockCommandRunner(ctrl)
		runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(zerr.With(zerr.Wrap(domain.ErrCommandFailed, "gradlew --version"), "exit_code", 1))

		err := gradle.NewWarmer(runner).Warm(context.Background(), domain.GradleSettings{Wrapper: writeWrapper(t, "exit 1\n", 0o755)})
		assert.True(t, errors.Is(err, domain.ErrWrapperUnavailable))
	})

	t.Run("user home inside read-only cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockCommandRunner(ctrl)

		err := gradle.NewWarmer(runner).Warm(context.Background(), domain.GradleSettings{
			Wrapper:  writeWrapper(t, "exit 0\n", 0o755),
			UserHome: "/.gradle-ro-cache/home",
			ROCache:  "/.gradle-ro-cache",
		})
		assert.True(t, errors.Is(err, domain.ErrReadOnlyCacheWrite))
	})
}

func TestTool_Invoke(t *testing.T) {
	wrapper := writeWrapper(t, `printf '%s|%s|%s\n' "$OVERRIDE_VERSION" "$*" "${RIG_LEAK-unset}"
exit 3
`, 0o755)
	t.Setenv("RIG_LEAK", "leaked")

	var stdout bytes.Buffer
	tool := gradle.NewToolWithIO(strings.NewReader(""), &stdout, &bytes.Buffer{})

	code, err := tool.Invoke(context.Background(), domain.BuildInvocation{
		Tool: wrapper,
		Args: []string{"-p", "java", "assemble", "--info"},
		Dir:  filepath.Dir(wrapper),
		Env:  map[string]string{"OVERRIDE_VERSION": "v0.52.1-3-gabc1234"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, code)
	assert.Equal(t, "v0.52.1-3-gabc1234|-p java assemble --info|unset\n", stdout.String())
}

func TestTool_Invoke_KilledBySignal(t *testing.T) {
	wrapper := writeWrapper(t, "kill -TERM $$\nsleep 5\n", 0o755)
	tool := gradle.NewToolWithIO(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})

	code, err := tool.Invoke(context.Background(), domain.BuildInvocation{Tool: wrapper, Dir: filepath.Dir(wrapper)})
	require.NoError(t, err)
	assert.Equal(t, 128+int(syscall.SIGTERM), code)
}

func TestTool_Invoke_Missing(t *testing.T) {
	tool := gradle.NewToolWithIO(nil, &bytes.Buffer{}, &bytes.Buffer{})
	_, err := tool.Invoke(context.Background(), domain.BuildInvocation{Tool: filepath.Join(t.TempDir(), "gradlew")})
	assert.True(t, errors.Is(err, domain.ErrWrapperUnavailable))
}

func TestEnv(t *testing.T) {
	t.Setenv("JAVA_HOME", "/opt/java/openjdk")
	env := gradle.Env(domain.GradleSettings{UserHome: "/root/.gradle", ROCache: "/.gradle-ro-cache"})
	assert.Equal(t, map[string]string{
		"GRADLE_USER_HOME":    "/root/.gradle",
		"GRADLE_RO_DEP_CACHE": "/.gradle-ro-cache",
		"JAVA_HOME":           "/opt/java/openjdk",
	}, env)
}
