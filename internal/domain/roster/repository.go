package roster

import "context"

// Repository describes roster persistence needs from use cases. Add returns
// ErrDuplicateEntry when the (match, player) pair already exists.
type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Entry, error)
	Add(ctx context.Context, item Entry) error
	Remove(ctx context.Context, entryID string) error
}
