package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	CrestURL     sql.NullString `db:"crest_url"`
	Gender       sql.NullString `db:"gender"`
	ParentTeamID sql.NullString `db:"parent_team_id"`
	CreatedBy    string         `db:"created_by"`
	CreatedAt    time.Time      `db:"created_at"`
}

type playerTableModel struct {
	ID        string         `db:"id"`
	FirstName string         `db:"first_name"`
	LastName  sql.NullString `db:"last_name"`
	Number    sql.NullInt64  `db:"number"`
	TeamID    string         `db:"team_id"`
	Type      string         `db:"type"`
	CreatedAt time.Time      `db:"created_at"`
}

type matchTableModel struct {
	ID          string         `db:"id"`
	HomeTeamID  string         `db:"home_team_id"`
	AwayTeamID  string         `db:"away_team_id"`
	KickoffAt   time.Time      `db:"kickoff_at"`
	Location    sql.NullString `db:"location"`
	Competition sql.NullString `db:"competition"`
	VideoURL    sql.NullString `db:"video_url"`
	CreatedBy   string         `db:"created_by"`
	CreatedAt   time.Time      `db:"created_at"`
}

type rosterTableModel struct {
	ID       string `db:"id"`
	MatchID  string `db:"match_id"`
	TeamID   string `db:"team_id"`
	PlayerID string `db:"player_id"`
}

// actionTableModel rows carry a serial seq column, never exposed to the
// domain, so reads can reproduce exact insertion order.
type actionTableModel struct {
	ID        string         `db:"id"`
	MatchID   string         `db:"match_id"`
	TeamID    string         `db:"team_id"`
	PlayerID  sql.NullString `db:"player_id"`
	Type      string         `db:"type"`
	Subtype   sql.NullString `db:"subtype"`
	Minute    int            `db:"minute"`
	Second    int            `db:"second"`
	X         sql.NullInt64  `db:"x"`
	Y         sql.NullInt64  `db:"y"`
	CreatedAt time.Time      `db:"created_at"`
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func stringOrEmpty(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}

func nullIntPtr(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtrOrNil(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
