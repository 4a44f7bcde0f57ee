package rustup_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rig/internal/adapters/rustup"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

var androidTargets = []string{
	"aarch64-linux-android",
	"armv7-linux-androideabi",
	"x86_64-linux-android",
	"aarch64-unknown-linux-gnu",
}

func toolchain() domain.Component {
	return domain.Component{
		ID:       domain.NewComponentID(domain.KindRustToolchain, "1.85.0"),
		Kind:     domain.KindRustToolchain,
		Name:     "1.85.0",
		Version:  "1.85.0",
		Location: "/opt/rustup",
		Targets:  androidTargets,
	}
}

func TestInstall_Fresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)

	runner.EXPECT().Output(gomock.Any(), mocks.CommandNamed("rustup", "toolchain", "list")).Return([]byte("no installed toolchains\n"), nil)
	runner.EXPECT().Run(gomock.Any(), mocks.CommandNamed("rustup", "toolchain", "install", "1.85.0")).DoAndReturn(
		func(_ context.Context, cmd domain.Command) error {
			assert.Equal(t, []string{
				"toolchain", "install", "1.85.0", "--profile", "minimal",
				"--target", "aarch64-linux-android",
				"--target", "armv7-linux-androideabi",
				"--target", "x86_64-linux-android",
				"--target", "aarch64-unknown-linux-gnu",
				"--no-self-update",
			}, cmd.Args)
			assert.Contains(t, cmd.Env, "RUSTUP_HOME=/opt/rustup")
			return nil
		})

	res, err := rustup.NewInstaller(runner).Install(context.Background(), toolchain(), domain.InstallOptions{})
	require.NoError(t, err)
	assert.Equal(t, "1.85.0", res.Version)
	assert.False(t, res.AlreadyInstalled)
}

func TestInstall_AlreadyInstalled(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)

	runner.EXPECT().Output(gomock.Any(), mocks.CommandNamed("rustup", "toolchain", "list")).
		Return([]byte("1.85.0-x86_64-unknown-linux-gnu (default)\n"), nil)
	runner.EXPECT().Output(gomock.Any(), mocks.CommandNamed("rustup", "target", "list", "--installed")).
		Return([]byte("x86_64-unknown-linux-gnu\n"+joinLines(androidTargets)), nil)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Times(0)

	res, err := rustup.NewInstaller(runner).Install(context.Background(), toolchain(), domain.InstallOptions{})
	require.NoError(t, err)
	assert.True(t, res.AlreadyInstalled)
}

func TestInstall_AddsMissingTargets(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)

	runner.EXPECT().Output(gomock.Any(), mocks.CommandNamed("rustup", "toolchain", "list")).
		Return([]byte("1.85.0-x86_64-unknown-linux-gnu\n"), nil)
	runner.EXPECT().Output(gomock.Any(), mocks.CommandNamed("rustup", "target", "list", "--installed")).
		Return([]byte("x86_64-unknown-linux-gnu\naarch64-linux-android\n"), nil)
	runner.EXPECT().Run(gomock.Any(), mocks.CommandNamed("rustup", "target", "add", "--toolchain", "1.85.0",
		"armv7-linux-androideabi", "x86_64-linux-android", "aarch64-unknown-linux-gnu")).Return(nil)

	res, err := rustup.NewInstaller(runner).Install(context.Background(), toolchain(), domain.InstallOptions{})
	require.NoError(t, err)
	assert.False(t, res.AlreadyInstalled)
}

func TestInstall_Failures(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   error
	}{
		{"bad channel", "error: invalid toolchain name: 'bogus'", domain.ErrUnsupportedComponent},
		{"network", "error: could not download file from 'https://static.rust-lang.org/'", domain.ErrDownload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			runner := mocks.NewMockCommandRunner(ctrl)

			runner.EXPECT().Output(gomock.Any(), gomock.Any()).Return(nil, zerr.Wrap(domain.ErrCommandFailed, "rustup"))
			runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(zerr.With(zerr.Wrap(domain.ErrCommandFailed, "rustup"), "stderr", tt.stderr))

			_, err := rustup.NewInstaller(runner).Install(context.Background(), toolchain(), domain.InstallOptions{})
			assert.True(t, errors.Is(err, tt.want))
		})
	}
}

func TestInstall_Rejects(t *testing.T) {
	ctrl := gomock.NewController(t)
	inst := rustup.NewInstaller(mocks.NewMockCommandRunner(ctrl))

	_, err := inst.Install(context.Background(), domain.Component{ID: "system:git", Kind: domain.KindSystem}, domain.InstallOptions{})
	assert.True(t, errors.Is(err, domain.ErrUnsupportedComponent))

	_, err = inst.Install(context.Background(), domain.Component{ID: "rust-toolchain:", Kind: domain.KindRustToolchain}, domain.InstallOptions{})
	assert.True(t, errors.Is(err, domain.ErrUnsupportedComponent))
}

func joinLines(lines []string) string {
	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return out
}
