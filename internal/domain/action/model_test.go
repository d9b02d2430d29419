package action

import (
	"testing"
)

func intPtr(v int) *int { return &v }

func validAction() Action {
	return Action{
		ID:      "act-1",
		MatchID: "match-1",
		TeamID:  "team-h",
		Type:    TypePoint,
		Minute:  12,
		Second:  30,
	}
}

func TestActionValidate(t *testing.T) {
	if err := validAction().Validate(); err != nil {
		t.Fatalf("expected valid action, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Action)
	}{
		{"missing match id", func(a *Action) { a.MatchID = "" }},
		{"missing team id", func(a *Action) { a.TeamID = "" }},
		{"unknown type", func(a *Action) { a.Type = "rabona" }},
		{"negative minute", func(a *Action) { a.Minute = -1 }},
		{"second too large", func(a *Action) { a.Second = 60 }},
		{"negative second", func(a *Action) { a.Second = -1 }},
		{"x out of range", func(a *Action) { a.X = intPtr(101); a.Y = intPtr(50) }},
		{"y out of range", func(a *Action) { a.X = intPtr(50); a.Y = intPtr(-2) }},
		{"x without y", func(a *Action) { a.X = intPtr(50) }},
		{"subtype not in allowed set", func(a *Action) { a.Subtype = "wide" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := validAction()
			tc.mutate(&a)
			if err := a.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestActionValidateAllowsTypedSubtype(t *testing.T) {
	a := validAction()
	a.Type = TypeMissedShot
	a.Subtype = "wide"
	if err := a.Validate(); err != nil {
		t.Fatalf("expected wide to be a valid missed_shot subtype, got %v", err)
	}
}

func TestComputeScore(t *testing.T) {
	ledger := []Action{
		{Type: TypeGoal, TeamID: "home"},
		{Type: TypePoint, TeamID: "home"},
		{Type: TypeGoal, TeamID: "away"},
		{Type: TypeTurnover, TeamID: "home"},
	}

	board := ComputeScore(ledger, "home", "away")
	if board.Home.Goals != 1 || board.Home.Points != 1 || board.Home.Total() != 4 {
		t.Fatalf("unexpected home score: %+v", board.Home)
	}
	if board.Away.Goals != 1 || board.Away.Points != 0 || board.Away.Total() != 3 {
		t.Fatalf("unexpected away score: %+v", board.Away)
	}
}

func TestComputeScoreEmptyLedger(t *testing.T) {
	board := ComputeScore(nil, "home", "away")
	if board.Home.Total() != 0 || board.Away.Total() != 0 {
		t.Fatalf("expected all-zero scoreboard, got %+v", board)
	}
}

func TestScoreline(t *testing.T) {
	s := Score{Goals: 2, Points: 5}
	if got := s.Scoreline(); got != "2-05 (11)" {
		t.Fatalf("unexpected scoreline: %s", got)
	}
}

func TestSortChronologicalKeepsInsertionOrderOnTies(t *testing.T) {
	ledger := []Action{
		{ID: "a", Minute: 5, Second: 0},
		{ID: "b", Minute: 3, Second: 10},
		{ID: "c", Minute: 5, Second: 0},
	}

	out := SortChronological(ledger)
	want := []string{"b", "a", "c"}
	for i, id := range want {
		if out[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, out[i].ID)
		}
	}
	if ledger[0].ID != "a" {
		t.Fatalf("input slice must not be reordered")
	}
}

func TestSortRecentBreaksTiesByDescendingInsertion(t *testing.T) {
	ledger := []Action{
		{ID: "first", Minute: 10, Second: 30},
		{ID: "second", Minute: 10, Second: 30},
		{ID: "earlier", Minute: 2, Second: 0},
	}

	out := SortRecent(ledger)
	want := []string{"second", "first", "earlier"}
	for i, id := range want {
		if out[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, out[i].ID)
		}
	}
}

func TestCategoryOf(t *testing.T) {
	for typ := range AllTypes {
		if _, ok := CategoryOf(typ); !ok {
			t.Fatalf("type %s has no category", typ)
		}
	}
	if c, _ := CategoryOf(TypeBlackCard); c != CategoryInfractions {
		t.Fatalf("expected black card in infractions, got %s", c)
	}
	if c, _ := CategoryOf(TypeSave); c != CategoryGoalkeeping {
		t.Fatalf("expected save in goalkeeping, got %s", c)
	}
}

func TestTypeLabel(t *testing.T) {
	if got := TypeMissedShot.Label(); got != "Missed shot" {
		t.Fatalf("unexpected label: %s", got)
	}
}

func TestSubtypeLabel(t *testing.T) {
	if got := SubtypeLabel("free_kick"); got != "Free kick" {
		t.Fatalf("unexpected label: %s", got)
	}
	if got := SubtypeLabel(""); got != "-" {
		t.Fatalf("empty subtype should render a dash, got %q", got)
	}
}

func TestClockLabel(t *testing.T) {
	a := Action{Minute: 10, Second: 30}
	if got := a.ClockLabel(); got != "10' 30''" {
		t.Fatalf("unexpected clock label: %s", got)
	}
}

func TestCardHelpers(t *testing.T) {
	if !TypeYellowCard.IsCard() || TypeGoal.IsCard() {
		t.Fatalf("card classification broken")
	}
	if !CanAttachCard(TypeFoulCommitted) || CanAttachCard(TypeGoal) {
		t.Fatalf("card attachment rules broken")
	}
}
