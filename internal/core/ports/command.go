package ports

import (
	"context"

	"go.trai.ch/rig/internal/core/domain"
)

// CommandRunner executes external programs.
//
//go:generate mockgen -source=command.go -destination=mocks/mock_command.go -package=mocks
type CommandRunner interface {
	// Run executes the command and streams its output to the logger.
	Run(ctx context.Context, cmd domain.Command) error

	// Output executes the command and returns its standard output.
	Output(ctx context.Context, cmd domain.Command) ([]byte, error)
}
