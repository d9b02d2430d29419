package httpapi

import (
	"context"
	"time"

	"github.com/gaeliza/gaeliza-api/internal/domain/action"
	"github.com/gaeliza/gaeliza-api/internal/domain/match"
	"github.com/gaeliza/gaeliza-api/internal/domain/player"
	"github.com/gaeliza/gaeliza-api/internal/domain/team"
	"github.com/gaeliza/gaeliza-api/internal/usecase"
)

type teamDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CrestURL     string `json:"crestUrl,omitempty"`
	Gender       string `json:"gender,omitempty"`
	ParentTeamID string `json:"parentTeamId,omitempty"`
	CreatedAtUTC string `json:"createdAtUtc"`
}

type playerDTO struct {
	ID           string `json:"id"`
	TeamID       string `json:"teamId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName,omitempty"`
	Number       *int   `json:"number,omitempty"`
	DisplayName  string `json:"displayName"`
	Type         string `json:"type"`
	CreatedAtUTC string `json:"createdAtUtc"`
}

type matchDTO struct {
	ID           string `json:"id"`
	HomeTeamID   string `json:"homeTeamId"`
	AwayTeamID   string `json:"awayTeamId"`
	KickoffAt    string `json:"kickoffAt"`
	Location     string `json:"location,omitempty"`
	Competition  string `json:"competition,omitempty"`
	VideoURL     string `json:"videoUrl,omitempty"`
	CreatedBy    string `json:"createdBy"`
	CreatedAtUTC string `json:"createdAtUtc"`
}

type scoreDTO struct {
	Goals     int    `json:"goals"`
	Points    int    `json:"points"`
	Total     int    `json:"total"`
	Scoreline string `json:"scoreline"`
}

type scoreboardDTO struct {
	Home scoreDTO `json:"home"`
	Away scoreDTO `json:"away"`
}

type actionDTO struct {
	ID           string `json:"id"`
	MatchID      string `json:"matchId"`
	TeamID       string `json:"teamId"`
	PlayerID     string `json:"playerId,omitempty"`
	Type         string `json:"type"`
	Subtype      string `json:"subtype,omitempty"`
	Minute       int    `json:"minute"`
	Second       int    `json:"second"`
	X            *int   `json:"x,omitempty"`
	Y            *int   `json:"y,omitempty"`
	ClockLabel   string `json:"clockLabel"`
	CreatedAtUTC string `json:"createdAtUtc"`
}

type rosterItemDTO struct {
	EntryID string    `json:"entryId"`
	TeamID  string    `json:"teamId"`
	Player  playerDTO `json:"player"`
}

func teamToDTO(ctx context.Context, v team.Team) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	return teamDTO{
		ID:           v.ID,
		Name:         v.Name,
		CrestURL:     v.CrestURL,
		Gender:       string(v.Gender),
		ParentTeamID: v.ParentTeamID,
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func playerToDTO(ctx context.Context, v player.Player) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	return playerDTO{
		ID:           v.ID,
		TeamID:       v.TeamID,
		FirstName:    v.FirstName,
		LastName:     v.LastName,
		Number:       v.Number,
		DisplayName:  v.DisplayName(),
		Type:         string(v.Type),
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func matchToDTO(ctx context.Context, v match.Match) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	return matchDTO{
		ID:           v.ID,
		HomeTeamID:   v.HomeTeamID,
		AwayTeamID:   v.AwayTeamID,
		KickoffAt:    v.KickoffAt.UTC().Format(time.RFC3339),
		Location:     v.Location,
		Competition:  v.Competition,
		VideoURL:     v.VideoURL,
		CreatedBy:    v.CreatedBy,
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func scoreboardToDTO(ctx context.Context, v action.Scoreboard) scoreboardDTO {
	ctx, span := startSpan(ctx, "httpapi.scoreboardToDTO")
	defer span.End()

	return scoreboardDTO{
		Home: scoreToDTO(v.Home),
		Away: scoreToDTO(v.Away),
	}
}

func scoreToDTO(v action.Score) scoreDTO {
	return scoreDTO{
		Goals:     v.Goals,
		Points:    v.Points,
		Total:     v.Total(),
		Scoreline: v.Scoreline(),
	}
}

func actionToDTO(ctx context.Context, v action.Action) actionDTO {
	ctx, span := startSpan(ctx, "httpapi.actionToDTO")
	defer span.End()

	return actionDTO{
		ID:           v.ID,
		MatchID:      v.MatchID,
		TeamID:       v.TeamID,
		PlayerID:     v.PlayerID,
		Type:         string(v.Type),
		Subtype:      v.Subtype,
		Minute:       v.Minute,
		Second:       v.Second,
		X:            v.X,
		Y:            v.Y,
		ClockLabel:   v.ClockLabel(),
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func rosterItemToDTO(ctx context.Context, v usecase.RosterItem) rosterItemDTO {
	ctx, span := startSpan(ctx, "httpapi.rosterItemToDTO")
	defer span.End()

	return rosterItemDTO{
		EntryID: v.Entry.ID,
		TeamID:  v.Entry.TeamID,
		Player:  playerToDTO(ctx, v.Player),
	}
}
