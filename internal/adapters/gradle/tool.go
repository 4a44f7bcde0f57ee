package gradle

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	waitDelay       = 10 * time.Second
	shellSignalBase = 128
)

// Tool implements ports.BuildTool by executing the wrapper on the terminal's stdio.
type Tool struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewTool creates a Tool attached to the process stdio.
func NewTool() *Tool {
	return &Tool{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
}

// NewToolWithIO creates a Tool with explicit stdio.
func NewToolWithIO(stdin io.Reader, stdout, stderr io.Writer) *Tool {
	return &Tool{stdin: stdin, stdout: stdout, stderr: stderr}
}

// Invoke runs inv.Tool with exactly inv.Env as its environment.
// A nonzero exit status is returned as the status, not as an error.
// A tool killed by a signal reports 128+signal, as a shell would.
func (t *Tool) Invoke(ctx context.Context, inv domain.BuildInvocation) (int, error) {
	if err := CheckWrapper(inv.Tool); err != nil {
		return -1, err
	}

	cmd := exec.CommandContext(ctx, inv.Tool, inv.Args...) //nolint:gosec // the wrapper path comes from the configuration
	cmd.Dir = inv.Dir
	cmd.Env = inv.Environ()
	cmd.Stdin = t.stdin
	cmd.Stdout = t.stdout
	cmd.Stderr = t.stderr
	cmd.Cancel = func() error { return cmd.Process.Signal(syscall.SIGTERM) }
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitStatus(exitErr), nil
	}
	return -1, zerr.With(zerr.Wrap(domain.ErrWrapperUnavailable, err.Error()), "wrapper", inv.Tool)
}

func exitStatus(exitErr *exec.ExitError) int {
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return shellSignalBase + int(ws.Signal())
	}
	return exitErr.ExitCode()
}
