package adapters

import (
	"context"
	"fmt"
	"sync"

	"backtest_backend/internal/feature/backtest/domain/entity"
	"backtest_backend/internal/feature/backtest/usecase"
)

// runMemory keeps runs in process memory. Used by the CLI when no database is configured.
type runMemory struct {
	mu   sync.RWMutex
	runs map[string]*entity.Run
}

var _ usecase.RunRepository = (*runMemory)(nil)

func NewMemoryRunRepository() *runMemory {
	return &runMemory{runs: make(map[string]*entity.Run)}
}

func (r *runMemory) Save(ctx context.Context, run *entity.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.runs[run.ID]; ok {
		return fmt.Errorf("run %s already exists", run.ID)
	}
	r.runs[run.ID] = run
	return nil
}

func (r *runMemory) FindByID(ctx context.Context, id string) (*entity.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrRunNotFound, id)
	}
	return run, nil
}
