package action

import (
	"fmt"
	"time"
)

// Type is the closed vocabulary of loggable match events.
type Type string

const (
	TypeGoal            Type = "goal"
	TypePoint           Type = "point"
	TypeMissedShot      Type = "missed_shot"
	TypeCarry           Type = "carry"
	TypeTurnover        Type = "turnover"
	TypeBallWon         Type = "ball_won"
	TypeRecovery        Type = "recovery"
	TypeBlock           Type = "block"
	TypeFoulCommitted   Type = "foul_committed"
	TypePenaltyConceded Type = "penalty_conceded"
	TypeYellowCard      Type = "yellow_card"
	TypeBlackCard       Type = "black_card"
	TypeRedCard         Type = "red_card"
	TypeKickout         Type = "kickout"
	TypeSave            Type = "save"
)

var AllTypes = map[Type]struct{}{
	TypeGoal:            {},
	TypePoint:           {},
	TypeMissedShot:      {},
	TypeCarry:           {},
	TypeTurnover:        {},
	TypeBallWon:         {},
	TypeRecovery:        {},
	TypeBlock:           {},
	TypeFoulCommitted:   {},
	TypePenaltyConceded: {},
	TypeYellowCard:      {},
	TypeBlackCard:       {},
	TypeRedCard:         {},
	TypeKickout:         {},
	TypeSave:            {},
}

// Label renders the type for humans ("missed_shot" -> "Missed shot").
func (t Type) Label() string {
	return humanize(string(t))
}

// SubtypeLabel renders a subtype for humans ("free_kick" -> "Free kick").
// An absent subtype renders as a dash.
func SubtypeLabel(subtype string) string {
	if subtype == "" {
		return "-"
	}
	return humanize(subtype)
}

// IsCard reports whether the type is a disciplinary card.
func (t Type) IsCard() bool {
	switch t {
	case TypeYellowCard, TypeBlackCard, TypeRedCard:
		return true
	default:
		return false
	}
}

// CanAttachCard reports whether logging this type may fan out into a second
// disciplinary-card entry in the same user action.
func CanAttachCard(t Type) bool {
	return t == TypeFoulCommitted || t == TypePenaltyConceded
}

// SubtypeOptions is the allowed refinement set per type. Types absent from the
// map carry no subtype.
var SubtypeOptions = map[Type][]string{
	TypeGoal:            {"foot", "hand", "penalty", "free_kick", "forty_five"},
	TypePoint:           {"foot", "hand", "penalty", "free_kick", "forty_five"},
	TypeMissedShot:      {"wide", "post", "short", "blocked"},
	TypeTurnover:        {"bad_pass", "bad_bounce", "overcarry", "steps", "one_plus_one", "inside_13m", "attacking_foul"},
	TypeBallWon:         {"throw_in", "open_play"},
	TypeRecovery:        {"intercepted_pass", "direct_steal"},
	TypeFoulCommitted:   {"strike", "hold", "bad_pickup", "trip", "obstruction", "dissent", "illegal_block"},
	TypePenaltyConceded: {"strike", "hold", "bad_pickup", "trip", "obstruction", "dissent", "illegal_block"},
	TypeKickout:         {"good_short", "good_long", "bad_short", "bad_long"},
}

func subtypeAllowed(t Type, subtype string) bool {
	for _, opt := range SubtypeOptions[t] {
		if opt == subtype {
			return true
		}
	}
	return false
}

// Action is one immutable ledger entry. PlayerID is empty for team-level
// actions. X/Y are percentage positions on a normalized pitch (home goal at
// x=0, away goal at x=100); nil means the event carries no position.
type Action struct {
	ID        string
	MatchID   string
	TeamID    string
	PlayerID  string
	Type      Type
	Subtype   string
	Minute    int
	Second    int
	X         *int
	Y         *int
	CreatedAt time.Time
}

func (a Action) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("action id is required")
	}
	if a.MatchID == "" {
		return fmt.Errorf("action match id is required")
	}
	if a.TeamID == "" {
		return fmt.Errorf("action team id is required")
	}
	if _, ok := AllTypes[a.Type]; !ok {
		return fmt.Errorf("unknown action type: %s", a.Type)
	}
	if a.Subtype != "" && !subtypeAllowed(a.Type, a.Subtype) {
		return fmt.Errorf("subtype %q is not allowed for type %s", a.Subtype, a.Type)
	}
	if a.Minute < 0 {
		return fmt.Errorf("action minute must be >= 0")
	}
	if a.Second < 0 || a.Second > 59 {
		return fmt.Errorf("action second must be in [0,59]")
	}
	if (a.X == nil) != (a.Y == nil) {
		return fmt.Errorf("action position requires both x and y")
	}
	if a.X != nil {
		if *a.X < 0 || *a.X > 100 {
			return fmt.Errorf("action x position must be in [0,100]")
		}
		if *a.Y < 0 || *a.Y > 100 {
			return fmt.Errorf("action y position must be in [0,100]")
		}
	}
	return nil
}

func (a Action) HasPosition() bool {
	return a.X != nil && a.Y != nil
}

// ClockLabel formats the stored match-clock time as `M' S''`.
func (a Action) ClockLabel() string {
	return fmt.Sprintf("%d' %d''", a.Minute, a.Second)
}

func humanize(v string) string {
	out := make([]byte, len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '_' {
			out[i] = ' '
			continue
		}
		if i == 0 && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
