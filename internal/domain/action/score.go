package action

import "fmt"

// A goal is worth three points, a point one. Scores are derived, never stored.
const goalValue = 3

type Score struct {
	Goals  int
	Points int
}

func (s Score) Total() int {
	return s.Goals*goalValue + s.Points
}

// Scoreline renders the conventional GAA notation, e.g. "2-05 (11)".
func (s Score) Scoreline() string {
	return fmt.Sprintf("%d-%02d (%d)", s.Goals, s.Points, s.Total())
}

type Scoreboard struct {
	Home Score
	Away Score
}

// ComputeScore reduces the ledger to a scoreboard in a single pass. Events
// for unknown team ids are ignored; an empty ledger yields all zeros.
func ComputeScore(ledger []Action, homeTeamID, awayTeamID string) Scoreboard {
	var board Scoreboard
	for _, a := range ledger {
		var side *Score
		switch a.TeamID {
		case homeTeamID:
			side = &board.Home
		case awayTeamID:
			side = &board.Away
		default:
			continue
		}

		switch a.Type {
		case TypeGoal:
			side.Goals++
		case TypePoint:
			side.Points++
		}
	}
	return board
}
