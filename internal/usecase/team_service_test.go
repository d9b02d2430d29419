package usecase

import (
	"errors"
	"testing"

	"github.com/gaeliza/gaeliza-api/internal/domain/player"
	"github.com/gaeliza/gaeliza-api/internal/domain/team"
	"github.com/gaeliza/gaeliza-api/internal/domain/user"
	"github.com/gaeliza/gaeliza-api/internal/infrastructure/repository/memory"
)

func newTeamFixture() *TeamService {
	return NewTeamService(
		memory.NewTeamRepository(memory.SeedTeams()),
		memory.NewPlayerRepository(memory.SeedPlayers()),
		&sequenceIDGenerator{},
	)
}

func TestTeamService_CreateTeam(t *testing.T) {
	service := newTeamFixture()

	created, err := service.CreateTeam(t.Context(), user.Principal{UserID: "coach-2"}, CreateTeamInput{
		Name:         "Keltoi GAA B",
		Gender:       "mixed",
		ParentTeamID: memory.TeamIDKeltoi,
	})
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}
	if created.Gender != team.GenderMixed || created.ParentTeamID != memory.TeamIDKeltoi {
		t.Fatalf("unexpected team %+v", created)
	}
	if created.CreatedBy != "coach-2" {
		t.Fatalf("team must record its creator, got %q", created.CreatedBy)
	}

	if _, err := service.CreateTeam(t.Context(), user.Principal{UserID: "coach-2"}, CreateTeamInput{
		Name:   "Orphans",
		Gender: "unknown",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad gender, got %v", err)
	}

	if _, err := service.CreateTeam(t.Context(), user.Principal{UserID: "coach-2"}, CreateTeamInput{
		Name:         "Orphans",
		ParentTeamID: "team-ghost",
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown parent, got %v", err)
	}
}

func TestTeamService_CreatePlayer(t *testing.T) {
	service := newTeamFixture()

	created, err := service.CreatePlayer(t.Context(), CreatePlayerInput{
		TeamID:    memory.TeamIDFillos,
		FirstName: "Paulo",
		LastName:  "Novas",
	})
	if err != nil {
		t.Fatalf("create player failed: %v", err)
	}
	if created.Type != player.TypeOfficial {
		t.Fatalf("squad players are official, got %s", created.Type)
	}

	players, err := service.ListPlayers(t.Context(), memory.TeamIDFillos)
	if err != nil {
		t.Fatalf("list players failed: %v", err)
	}
	found := false
	for _, p := range players {
		if p.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("created player missing from team listing")
	}

	if _, err := service.ListPlayers(t.Context(), "team-ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown team, got %v", err)
	}
}
