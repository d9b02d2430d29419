package roster

import (
	"errors"
	"fmt"
)

// ErrDuplicateEntry signals that the (match, player) pair is already
// rostered. Adding the same player twice is rejected, never silently
// duplicated.
var ErrDuplicateEntry = errors.New("player is already rostered for this match")

// Entry is one player's inclusion in a team's squad for one specific match.
// Entries are created once and never updated.
type Entry struct {
	ID       string
	MatchID  string
	TeamID   string
	PlayerID string
}

func (e Entry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("roster entry id is required")
	}
	if e.MatchID == "" {
		return fmt.Errorf("roster entry match id is required")
	}
	if e.TeamID == "" {
		return fmt.Errorf("roster entry team id is required")
	}
	if e.PlayerID == "" {
		return fmt.Errorf("roster entry player id is required")
	}
	return nil
}
