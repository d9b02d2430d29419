package match

import "context"

// Repository describes match persistence needs from use cases. List returns
// matches ordered descending by kickoff time.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Create(ctx context.Context, item Match) error
}
