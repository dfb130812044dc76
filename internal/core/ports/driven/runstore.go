package driven

import (
	"context"

	"github.com/custodia-labs/galley/internal/core/domain"
)

// RunStore persists chaining runs.
type RunStore interface {
	// SaveRun stores a run.
	SaveRun(ctx context.Context, run *domain.Run) error

	// GetRun retrieves a run by ID.
	// Returns domain.ErrNotFound if absent.
	GetRun(ctx context.Context, id string) (*domain.Run, error)

	// ListRuns returns run summaries, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)

	// DeleteRun removes a run.
	DeleteRun(ctx context.Context, id string) error
}
