package shell_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rig/internal/adapters/shell"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func sysEnv() []string {
	return []string{"PATH=" + os.Getenv("PATH"), "HOME=/home/builder", "RIG_SECRET=leak"}
}

func TestRunner_Output(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	r := shell.NewRunnerWithEnv(log, sysEnv())

	out, err := r.Output(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(out))
}

func TestRunner_ExplicitEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	r := shell.NewRunnerWithEnv(log, sysEnv())

	out, err := r.Output(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", `printf '%s|%s|%s' "$OVERRIDE_VERSION" "$HOME" "$RIG_SECRET"`},
		Env:  []string{"OVERRIDE_VERSION=v1.2.3"},
	})
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3|/home/builder|", string(out))
}

func TestRunner_Run_StreamsLines(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	var lines []string
	log.EXPECT().Info(gomock.Any()).Do(func(msg string) { lines = append(lines, msg) }).AnyTimes()

	r := shell.NewRunnerWithEnv(log, sysEnv())

	err := r.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo one; echo two; printf three"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, lines)
}

func TestRunner_Run_Stdin(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	r := shell.NewRunnerWithEnv(log, sysEnv())

	out, err := r.Output(context.Background(), domain.Command{
		Name:  "sh",
		Args:  []string{"-c", "read answer; echo got $answer"},
		Stdin: strings.NewReader("y\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, "got y\n", string(out))
}

func TestRunner_Run_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	r := shell.NewRunnerWithEnv(log, sysEnv())

	err := r.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo 'E: Unable to locate package nope' >&2; exit 100"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCommandFailed))

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	md := zErr.Metadata()
	assert.Equal(t, 100, md["exit_code"])
	assert.Equal(t, "E: Unable to locate package nope", md["stderr"])
}

func TestRunner_Run_MissingExecutable(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	r := shell.NewRunnerWithEnv(log, sysEnv())

	err := r.Run(context.Background(), domain.Command{Name: "definitely-not-a-command-rig"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCommandFailed))
}

func TestRunner_Run_Empty(t *testing.T) {
	r := shell.NewRunnerWithEnv(nil, nil)
	err := r.Run(context.Background(), domain.Command{})
	assert.True(t, errors.Is(err, domain.ErrCommandFailed))
}

func TestResolveEnvironment(t *testing.T) {
	env := shell.ResolveEnvironment(
		[]string{"PATH=/usr/bin", "HOME=/root", "SECRET=x", "malformed"},
		[]string{"PATH=/opt/android-sdk/platform-tools:/usr/bin", "ANDROID_HOME=/opt/android-sdk"},
	)
	assert.ElementsMatch(t, []string{
		"PATH=/opt/android-sdk/platform-tools:/usr/bin",
		"HOME=/root",
		"ANDROID_HOME=/opt/android-sdk",
	}, env)
}
