package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gaeliza/gaeliza-api/internal/domain/player"
	"github.com/gaeliza/gaeliza-api/internal/domain/team"
	"github.com/gaeliza/gaeliza-api/internal/domain/user"
	"github.com/gaeliza/gaeliza-api/internal/platform/id"
)

type CreateTeamInput struct {
	Name         string
	CrestURL     string
	Gender       string
	ParentTeamID string
}

type CreatePlayerInput struct {
	TeamID    string
	FirstName string
	LastName  string
	Number    *int
}

type TeamService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	idGen      id.Generator
	now        func() time.Time
}

func NewTeamService(teamRepo team.Repository, playerRepo player.Repository, idGen id.Generator) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *TeamService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.ListTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.GetTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return t, nil
}

func (s *TeamService) CreateTeam(ctx context.Context, principal user.Principal, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.CreateTeam")
	defer span.End()

	if principal.UserID == "" {
		return team.Team{}, fmt.Errorf("%w: principal is required", ErrUnauthorized)
	}

	input.ParentTeamID = strings.TrimSpace(input.ParentTeamID)
	if input.ParentTeamID != "" {
		if _, exists, err := s.teamRepo.GetByID(ctx, input.ParentTeamID); err != nil {
			return team.Team{}, fmt.Errorf("get parent team: %w", err)
		} else if !exists {
			return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.ParentTeamID)
		}
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	item := team.Team{
		ID:           teamID,
		Name:         strings.TrimSpace(input.Name),
		CrestURL:     strings.TrimSpace(input.CrestURL),
		Gender:       team.Gender(strings.TrimSpace(input.Gender)),
		ParentTeamID: input.ParentTeamID,
		CreatedBy:    principal.UserID,
		CreatedAt:    s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	return item, nil
}

func (s *TeamService) ListPlayers(ctx context.Context, teamID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.ListPlayers")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}
	if _, exists, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, fmt.Errorf("get team by id: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

// CreatePlayer registers an official squad player. Temporary match-day
// players are created through the roster flow instead.
func (s *TeamService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.CreatePlayer")
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	if _, exists, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		return player.Player{}, fmt.Errorf("get team by id: %w", err)
	} else if !exists {
		return player.Player{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.TeamID)
	}

	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	item := player.Player{
		ID:        playerID,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Number:    input.Number,
		TeamID:    input.TeamID,
		Type:      player.TypeOfficial,
		CreatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Create(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	return item, nil
}
