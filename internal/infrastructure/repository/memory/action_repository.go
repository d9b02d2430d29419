package memory

import (
	"context"
	"sync"

	"github.com/gaeliza/gaeliza-api/internal/domain/action"
)

// ActionRepository keeps the ledger as an append-only slice so insertion
// order survives, matching the creation-order reads the sorters rely on.
type ActionRepository struct {
	mu      sync.RWMutex
	actions []action.Action
}

func NewActionRepository(actions []action.Action) *ActionRepository {
	return &ActionRepository{actions: append([]action.Action(nil), actions...)}
}

func (r *ActionRepository) ListByMatch(_ context.Context, matchID string) ([]action.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]action.Action, 0, len(r.actions))
	for _, a := range r.actions {
		if a.MatchID == matchID {
			out = append(out, a)
		}
	}

	return out, nil
}

func (r *ActionRepository) GetByID(_ context.Context, actionID string) (action.Action, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.actions {
		if a.ID == actionID {
			return a, true, nil
		}
	}

	return action.Action{}, false, nil
}

func (r *ActionRepository) Create(_ context.Context, item action.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.actions = append(r.actions, item)

	return nil
}

func (r *ActionRepository) Delete(_ context.Context, actionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.actions {
		if a.ID == actionID {
			r.actions = append(r.actions[:i], r.actions[i+1:]...)
			return nil
		}
	}

	return nil
}
