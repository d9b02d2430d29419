package match

import (
	"fmt"
	"time"
)

// Match is one registered fixture. Home/away team references are immutable
// after creation; CreatedBy records the coach who owns the match session.
type Match struct {
	ID          string
	HomeTeamID  string
	AwayTeamID  string
	KickoffAt   time.Time
	Location    string
	Competition string
	VideoURL    string
	CreatedBy   string
	CreatedAt   time.Time
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.HomeTeamID == "" {
		return fmt.Errorf("match home team id is required")
	}
	if m.AwayTeamID == "" {
		return fmt.Errorf("match away team id is required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match teams must be distinct")
	}
	if m.KickoffAt.IsZero() {
		return fmt.Errorf("match kickoff time is required")
	}
	return nil
}

// SideOf reports which side a team plays for in this match.
func (m Match) SideOf(teamID string) (Side, bool) {
	switch teamID {
	case m.HomeTeamID:
		return SideHome, true
	case m.AwayTeamID:
		return SideAway, true
	default:
		return "", false
	}
}

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)
