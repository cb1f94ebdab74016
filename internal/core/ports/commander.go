package ports

import (
	"context"

	"go.trai.ch/drub/internal/core/domain"
)

// Commander runs subprocesses.
//
//go:generate mockgen -source=commander.go -destination=mocks/mock_commander.go -package=mocks
type Commander interface {
	// Run executes the command and waits for it. A non-zero exit status is an
	// error carrying the exit code as metadata.
	Run(ctx context.Context, cmd domain.Command) error
}
