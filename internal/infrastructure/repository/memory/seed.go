package memory

import (
	"time"

	"github.com/gaeliza/gaeliza-api/internal/domain/match"
	"github.com/gaeliza/gaeliza-api/internal/domain/player"
	"github.com/gaeliza/gaeliza-api/internal/domain/roster"
	"github.com/gaeliza/gaeliza-api/internal/domain/team"
)

// Seed IDs shared by the demo dataset and the tests built on it.
const (
	TeamIDKeltoi   = "team-keltoi"
	TeamIDFillos   = "team-fillos"
	MatchIDOpening = "match-opening"
	SeedUserID     = "user-coach-1"
)

var seedCreatedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func SeedTeams() []team.Team {
	return []team.Team{
		{
			ID:        TeamIDKeltoi,
			Name:      "Keltoi GAA",
			Gender:    team.GenderMale,
			CreatedBy: SeedUserID,
			CreatedAt: seedCreatedAt,
		},
		{
			ID:        TeamIDFillos,
			Name:      "Fillos de Breogan",
			Gender:    team.GenderMale,
			CreatedBy: SeedUserID,
			CreatedAt: seedCreatedAt,
		},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "player-keltoi-01", FirstName: "Brais", LastName: "Castro", Number: intPtr(1), TeamID: TeamIDKeltoi, Type: player.TypeOfficial, CreatedAt: seedCreatedAt},
		{ID: "player-keltoi-07", FirstName: "Iago", LastName: "Souto", Number: intPtr(7), TeamID: TeamIDKeltoi, Type: player.TypeOfficial, CreatedAt: seedCreatedAt},
		{ID: "player-keltoi-11", FirstName: "Antela", LastName: "Rey", Number: intPtr(11), TeamID: TeamIDKeltoi, Type: player.TypeOfficial, CreatedAt: seedCreatedAt},
		{ID: "player-fillos-05", FirstName: "Uxio", LastName: "Mallo", Number: intPtr(5), TeamID: TeamIDFillos, Type: player.TypeOfficial, CreatedAt: seedCreatedAt},
		{ID: "player-fillos-09", FirstName: "Roi", LastName: "Paz", Number: intPtr(9), TeamID: TeamIDFillos, Type: player.TypeOfficial, CreatedAt: seedCreatedAt},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{
			ID:          MatchIDOpening,
			HomeTeamID:  TeamIDKeltoi,
			AwayTeamID:  TeamIDFillos,
			KickoffAt:   time.Date(2026, 3, 14, 17, 0, 0, 0, time.UTC),
			Location:    "A Madroa, Vigo",
			Competition: "Liga Galega",
			CreatedBy:   SeedUserID,
			CreatedAt:   seedCreatedAt,
		},
	}
}

func SeedRoster() []roster.Entry {
	return []roster.Entry{
		{ID: "roster-01", MatchID: MatchIDOpening, TeamID: TeamIDKeltoi, PlayerID: "player-keltoi-01"},
		{ID: "roster-02", MatchID: MatchIDOpening, TeamID: TeamIDKeltoi, PlayerID: "player-keltoi-07"},
		{ID: "roster-03", MatchID: MatchIDOpening, TeamID: TeamIDKeltoi, PlayerID: "player-keltoi-11"},
		{ID: "roster-04", MatchID: MatchIDOpening, TeamID: TeamIDFillos, PlayerID: "player-fillos-05"},
		{ID: "roster-05", MatchID: MatchIDOpening, TeamID: TeamIDFillos, PlayerID: "player-fillos-09"},
	}
}
