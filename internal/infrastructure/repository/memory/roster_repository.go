package memory

import (
	"context"
	"sync"

	"github.com/gaeliza/gaeliza-api/internal/domain/roster"
)

type RosterRepository struct {
	mu      sync.RWMutex
	entries []roster.Entry
}

func NewRosterRepository(entries []roster.Entry) *RosterRepository {
	return &RosterRepository{entries: append([]roster.Entry(nil), entries...)}
}

func (r *RosterRepository) ListByMatch(_ context.Context, matchID string) ([]roster.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if e.MatchID == matchID {
			out = append(out, e)
		}
	}

	return out, nil
}

func (r *RosterRepository) Add(_ context.Context, item roster.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.MatchID == item.MatchID && e.PlayerID == item.PlayerID {
			return roster.ErrDuplicateEntry
		}
	}
	r.entries = append(r.entries, item)

	return nil
}

func (r *RosterRepository) Remove(_ context.Context, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.ID == entryID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}

	return nil
}
