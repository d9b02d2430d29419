package usecase

import (
	"testing"
	"time"

	"github.com/gaeliza/gaeliza-api/internal/domain/action"
	"github.com/gaeliza/gaeliza-api/internal/domain/match"
	"github.com/gaeliza/gaeliza-api/internal/infrastructure/repository/memory"
	"github.com/gaeliza/gaeliza-api/internal/platform/cache"
	"github.com/gaeliza/gaeliza-api/internal/platform/logging"
)

func newFeedFixture(actions []action.Action) *FeedService {
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	ledger := NewLedgerService(
		matchRepo,
		memory.NewRosterRepository(memory.SeedRoster()),
		memory.NewActionRepository(actions),
		&sequenceIDGenerator{},
		cache.NewStore(time.Minute),
		logging.NewNop(),
	)
	return NewFeedService(ledger, matchRepo, teamRepo, playerRepo)
}

func seedEvent(id string, teamID, playerID, typ string, minute, second int) action.Action {
	return action.Action{
		ID:       id,
		MatchID:  memory.MatchIDOpening,
		TeamID:   teamID,
		PlayerID: playerID,
		Type:     action.Type(typ),
		Minute:   minute,
		Second:   second,
	}
}

func TestFeedService_Recent(t *testing.T) {
	// Two events share 20'00''; the later-created one must surface first.
	service := newFeedFixture([]action.Action{
		seedEvent("a1", memory.TeamIDKeltoi, "player-keltoi-07", "point", 5, 0),
		seedEvent("a2", memory.TeamIDFillos, "player-fillos-05", "goal", 20, 0),
		seedEvent("a3", memory.TeamIDKeltoi, "player-keltoi-11", "recovery", 20, 0),
		seedEvent("a4", memory.TeamIDKeltoi, "", "kickout", 12, 30),
	})

	items, err := service.Recent(t.Context(), memory.MatchIDOpening, 0)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected default limit of 3, got %d", len(items))
	}

	gotOrder := []string{items[0].Action.ID, items[1].Action.ID, items[2].Action.ID}
	wantOrder := []string{"a3", "a2", "a4"}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("recency order mismatch: got %v, want %v", gotOrder, wantOrder)
		}
	}

	if items[0].TeamName != "Keltoi GAA" {
		t.Fatalf("unexpected team name %q", items[0].TeamName)
	}
	if items[0].PlayerLabel != "#11 Antela Rey" {
		t.Fatalf("unexpected player label %q", items[0].PlayerLabel)
	}
	if items[2].PlayerLabel != teamActionLabel {
		t.Fatalf("event without player should read %q, got %q", teamActionLabel, items[2].PlayerLabel)
	}
}

func TestFeedService_RecentUnknownPlayer(t *testing.T) {
	service := newFeedFixture([]action.Action{
		seedEvent("a1", memory.TeamIDKeltoi, "player-gone", "point", 5, 0),
	})

	items, err := service.Recent(t.Context(), memory.MatchIDOpening, 3)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(items) != 1 || items[0].PlayerLabel != unknownPlayerLabel {
		t.Fatalf("expected %q label, got %+v", unknownPlayerLabel, items)
	}
}

func TestFeedService_FullLog(t *testing.T) {
	service := newFeedFixture([]action.Action{
		seedEvent("a1", memory.TeamIDKeltoi, "player-keltoi-07", "goal", 8, 15),
		seedEvent("a2", memory.TeamIDKeltoi, "player-keltoi-07", "point", 2, 0),
		seedEvent("a3", memory.TeamIDFillos, "player-fillos-09", "turnover", 11, 40),
	})

	sides, err := service.FullLog(t.Context(), memory.MatchIDOpening)
	if err != nil {
		t.Fatalf("full log failed: %v", err)
	}
	if len(sides) != 2 {
		t.Fatalf("expected home and away logs, got %d", len(sides))
	}
	if sides[0].Side != match.SideHome || sides[0].TeamName != "Keltoi GAA" {
		t.Fatalf("unexpected home side %+v", sides[0])
	}

	for _, side := range sides {
		if len(side.Groups) != len(action.CategoryOrder) {
			t.Fatalf("every category must be listed, got %d groups", len(side.Groups))
		}
	}

	homeShooting := sides[0].Groups[0]
	if homeShooting.Category != action.CategoryShooting || len(homeShooting.Items) != 2 {
		t.Fatalf("unexpected home shooting group %+v", homeShooting)
	}
	// Chronological inside the group: the 2' point before the 8' goal.
	if homeShooting.Items[0].Action.ID != "a2" || homeShooting.Items[1].Action.ID != "a1" {
		t.Fatalf("shooting group must be chronological, got %+v", homeShooting.Items)
	}

	awayPossession := sides[1].Groups[1]
	if awayPossession.Category != action.CategoryPossession || len(awayPossession.Items) != 1 {
		t.Fatalf("unexpected away possession group %+v", awayPossession)
	}

	// Categories with no events stay present, just empty.
	awayGoalkeeping := sides[1].Groups[len(sides[1].Groups)-1]
	if awayGoalkeeping.Category != action.CategoryGoalkeeping || len(awayGoalkeeping.Items) != 0 {
		t.Fatalf("unexpected away goalkeeping group %+v", awayGoalkeeping)
	}
}
