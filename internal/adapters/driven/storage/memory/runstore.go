package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/galley/internal/core/domain"
	"github.com/custodia-labs/galley/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu    sync.RWMutex
	runs  map[string]domain.Run
	order []string // save order, oldest first
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]domain.Run),
	}
}

// SaveRun stores a run, replacing any run with the same ID.
func (s *RunStore) SaveRun(_ context.Context, run *domain.Run) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(run.ID)
	s.runs[run.ID] = *run
	s.order = append(s.order, run.ID)
	return nil
}

// GetRun retrieves a run by ID.
func (s *RunStore) GetRun(_ context.Context, id string) (*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// ListRuns returns run summaries, most recently saved first.
func (s *RunStore) ListRuns(_ context.Context, limit int) ([]domain.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.RunSummary
	for i := len(s.order) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		run := s.runs[s.order[i]]
		out = append(out, domain.RunSummary{
			ID:         run.ID,
			Name:       run.Name,
			CreatedAt:  run.CreatedAt,
			Tokens:     run.Result.Stats.Tokens,
			ChainCount: len(run.Result.Chains),
		})
	}
	return out, nil
}

// DeleteRun removes a run.
func (s *RunStore) DeleteRun(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
	return nil
}

func (s *RunStore) removeLocked(id string) {
	if _, ok := s.runs[id]; !ok {
		return
	}
	delete(s.runs, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
