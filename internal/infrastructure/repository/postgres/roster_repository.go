package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gaeliza/gaeliza-api/internal/domain/roster"
	qb "github.com/gaeliza/gaeliza-api/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListByMatch(ctx context.Context, matchID string) ([]roster.Entry, error) {
	query, args, err := qb.Select("id", "match_id", "team_id", "player_id").
		From("match_rosters").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("seq ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster query: %w", err)
	}

	var rows []rosterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select roster: %w", err)
	}

	out := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Entry{
			ID:       row.ID,
			MatchID:  row.MatchID,
			TeamID:   row.TeamID,
			PlayerID: row.PlayerID,
		})
	}

	return out, nil
}

func (r *RosterRepository) Add(ctx context.Context, item roster.Entry) error {
	row := rosterTableModel{
		ID:       item.ID,
		MatchID:  item.MatchID,
		TeamID:   item.TeamID,
		PlayerID: item.PlayerID,
	}

	query, args, err := qb.InsertModel("match_rosters", row, "")
	if err != nil {
		return fmt.Errorf("build insert roster entry query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return roster.ErrDuplicateEntry
		}
		return fmt.Errorf("insert roster entry: %w", err)
	}

	return nil
}

func (r *RosterRepository) Remove(ctx context.Context, entryID string) error {
	query, args, err := qb.DeleteFrom("match_rosters").
		Where(qb.Eq("id", entryID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete roster entry query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete roster entry: %w", err)
	}

	return nil
}
