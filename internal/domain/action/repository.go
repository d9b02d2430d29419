package action

import "context"

// Repository describes ledger persistence needs from use cases. ListByMatch
// must return events in insertion order; chronological and recency ordering
// are read-side projections on top of that.
type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Action, error)
	GetByID(ctx context.Context, actionID string) (Action, bool, error)
	Create(ctx context.Context, item Action) error
	Delete(ctx context.Context, actionID string) error
}
