// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/mason/internal/core/domain"
)

// Runner defines the interface for executing external commands.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run spawns exactly one child process and waits for it to exit.
	//
	// On a non-zero exit it returns domain.ErrCommandFailed carrying the
	// command line, exit code and any captured output. When the executable
	// cannot be located it returns domain.ErrExecutableNotFound.
	Run(ctx context.Context, req domain.RunRequest) (domain.ProcessResult, error)
}
