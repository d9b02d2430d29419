package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gaeliza/gaeliza-api/internal/domain/action"
	qb "github.com/gaeliza/gaeliza-api/internal/platform/querybuilder"
)

// actionColumns excludes the internal seq column so row scanning matches the
// table model.
var actionColumns = []string{
	"id", "match_id", "team_id", "player_id", "type", "subtype",
	"minute", "second", "x", "y", "created_at",
}

type ActionRepository struct {
	db *sqlx.DB
}

func NewActionRepository(db *sqlx.DB) *ActionRepository {
	return &ActionRepository{db: db}
}

// ListByMatch returns the ledger in insertion order. The seq ordering is the
// contract recency tie-breaking depends on.
func (r *ActionRepository) ListByMatch(ctx context.Context, matchID string) ([]action.Action, error) {
	query, args, err := qb.Select(actionColumns...).From("actions").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("seq ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select actions query: %w", err)
	}

	var rows []actionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select actions: %w", err)
	}

	out := make([]action.Action, 0, len(rows))
	for _, row := range rows {
		out = append(out, actionFromRow(row))
	}

	return out, nil
}

func (r *ActionRepository) GetByID(ctx context.Context, actionID string) (action.Action, bool, error) {
	query, args, err := qb.Select(actionColumns...).From("actions").
		Where(qb.Eq("id", actionID)).
		ToSQL()
	if err != nil {
		return action.Action{}, false, fmt.Errorf("build get action by id query: %w", err)
	}

	var row actionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return action.Action{}, false, nil
		}
		return action.Action{}, false, fmt.Errorf("get action by id: %w", err)
	}

	return actionFromRow(row), true, nil
}

func (r *ActionRepository) Create(ctx context.Context, item action.Action) error {
	row := actionTableModel{
		ID:        item.ID,
		MatchID:   item.MatchID,
		TeamID:    item.TeamID,
		PlayerID:  nullString(item.PlayerID),
		Type:      string(item.Type),
		Subtype:   nullString(item.Subtype),
		Minute:    item.Minute,
		Second:    item.Second,
		X:         nullIntPtr(item.X),
		Y:         nullIntPtr(item.Y),
		CreatedAt: item.CreatedAt,
	}

	query, args, err := qb.InsertModel("actions", row, "")
	if err != nil {
		return fmt.Errorf("build insert action query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert action: %w", err)
	}

	return nil
}

func (r *ActionRepository) Delete(ctx context.Context, actionID string) error {
	query, args, err := qb.DeleteFrom("actions").
		Where(qb.Eq("id", actionID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete action query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete action: %w", err)
	}

	return nil
}

func actionFromRow(row actionTableModel) action.Action {
	return action.Action{
		ID:        row.ID,
		MatchID:   row.MatchID,
		TeamID:    row.TeamID,
		PlayerID:  stringOrEmpty(row.PlayerID),
		Type:      action.Type(row.Type),
		Subtype:   stringOrEmpty(row.Subtype),
		Minute:    row.Minute,
		Second:    row.Second,
		X:         intPtrOrNil(row.X),
		Y:         intPtrOrNil(row.Y),
		CreatedAt: row.CreatedAt,
	}
}
