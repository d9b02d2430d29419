package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/gaeliza/gaeliza-api/internal/domain/player"
	"github.com/gaeliza/gaeliza-api/internal/infrastructure/repository/memory"
	"github.com/gaeliza/gaeliza-api/internal/platform/cache"
)

func newRosterFixture() (*RosterService, *memory.PlayerRepository) {
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	service := NewRosterService(
		memory.NewMatchRepository(memory.SeedMatches()),
		playerRepo,
		memory.NewRosterRepository(memory.SeedRoster()),
		&sequenceIDGenerator{},
		cache.NewStore(time.Minute),
	)
	return service, playerRepo
}

func TestRosterService_AddEntry_Duplicate(t *testing.T) {
	service, _ := newRosterFixture()

	_, err := service.AddEntry(t.Context(), AddRosterEntryInput{
		MatchID:  memory.MatchIDOpening,
		TeamID:   memory.TeamIDKeltoi,
		PlayerID: "player-keltoi-07",
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for an already rostered player, got %v", err)
	}
}

func TestRosterService_AddEntry_TemporaryPlayer(t *testing.T) {
	service, playerRepo := newRosterFixture()

	item, err := service.AddEntry(t.Context(), AddRosterEntryInput{
		MatchID: memory.MatchIDOpening,
		TeamID:  memory.TeamIDFillos,
		NewPlayer: &NewTemporaryPlayerInput{
			FirstName: "Xoel",
			LastName:  "Davila",
			Number:    intPtrTest(23),
		},
	})
	if err != nil {
		t.Fatalf("add entry failed: %v", err)
	}
	if item.Player.Type != player.TypeTemporary {
		t.Fatalf("inline player should be temporary, got %s", item.Player.Type)
	}
	if item.Entry.TeamID != memory.TeamIDFillos || item.Entry.PlayerID != item.Player.ID {
		t.Fatalf("entry does not reference the new player: %+v", item.Entry)
	}

	stored, exists, err := playerRepo.GetByID(t.Context(), item.Player.ID)
	if err != nil || !exists {
		t.Fatalf("temporary player should be persisted, exists=%v err=%v", exists, err)
	}
	if stored.DisplayName() != "#23 Xoel Davila" {
		t.Fatalf("unexpected display name %q", stored.DisplayName())
	}
}

func TestRosterService_AddEntry_Validation(t *testing.T) {
	service, _ := newRosterFixture()

	if _, err := service.AddEntry(t.Context(), AddRosterEntryInput{
		MatchID:   memory.MatchIDOpening,
		TeamID:    memory.TeamIDKeltoi,
		PlayerID:  "player-fillos-09",
		NewPlayer: &NewTemporaryPlayerInput{FirstName: "X"},
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for conflicting inputs, got %v", err)
	}

	if _, err := service.AddEntry(t.Context(), AddRosterEntryInput{
		MatchID: memory.MatchIDOpening,
		TeamID:  memory.TeamIDKeltoi,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing player, got %v", err)
	}

	if _, err := service.AddEntry(t.Context(), AddRosterEntryInput{
		MatchID:  memory.MatchIDOpening,
		TeamID:   "team-elsewhere",
		PlayerID: "player-keltoi-07",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a team not in the match, got %v", err)
	}

	if _, err := service.AddEntry(t.Context(), AddRosterEntryInput{
		MatchID:  "missing",
		TeamID:   memory.TeamIDKeltoi,
		PlayerID: "player-keltoi-07",
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown match, got %v", err)
	}
}

func TestRosterService_RemoveEntry(t *testing.T) {
	service, _ := newRosterFixture()

	if err := service.RemoveEntry(t.Context(), memory.MatchIDOpening, "roster-02"); err != nil {
		t.Fatalf("remove entry failed: %v", err)
	}

	items, err := service.ListByMatch(t.Context(), memory.MatchIDOpening)
	if err != nil {
		t.Fatalf("list roster failed: %v", err)
	}
	for _, item := range items {
		if item.Entry.ID == "roster-02" {
			t.Fatal("removed entry still listed")
		}
	}

	if err := service.RemoveEntry(t.Context(), memory.MatchIDOpening, "roster-02"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a removed entry, got %v", err)
	}
}

func intPtrTest(v int) *int { return &v }
