package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/gaeliza/gaeliza-api/internal/domain/action"
	"github.com/gaeliza/gaeliza-api/internal/domain/match"
	"github.com/gaeliza/gaeliza-api/internal/domain/player"
	"github.com/gaeliza/gaeliza-api/internal/domain/roster"
	"github.com/gaeliza/gaeliza-api/internal/domain/team"
	"github.com/gaeliza/gaeliza-api/internal/domain/user"
	"github.com/gaeliza/gaeliza-api/internal/platform/id"
)

type CreateMatchInput struct {
	HomeTeamID  string
	AwayTeamID  string
	KickoffAt   time.Time
	Location    string
	Competition string
	VideoURL    string
}

// ListMatchesFilter narrows the match list. Query matches against location,
// competition and team names, case-insensitively. Mine keeps only matches
// registered by the calling coach.
type ListMatchesFilter struct {
	Query string
	Mine  bool
}

// MatchSummary is a match joined with its team records for list views.
type MatchSummary struct {
	Match    match.Match
	HomeTeam team.Team
	AwayTeam team.Team
}

// MatchBundle is everything the live logging screen needs in one load.
type MatchBundle struct {
	Match      match.Match
	HomeTeam   team.Team
	AwayTeam   team.Team
	Roster     []RosterItem
	Scoreboard action.Scoreboard
}

type MatchService struct {
	matchRepo  match.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
	rosterRepo roster.Repository
	actionRepo action.Repository
	idGen      id.Generator
	now        func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	actionRepo action.Repository,
	idGen id.Generator,
) *MatchService {
	return &MatchService{
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
		actionRepo: actionRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *MatchService) Create(ctx context.Context, principal user.Principal, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.Create")
	defer span.End()

	input.HomeTeamID = strings.TrimSpace(input.HomeTeamID)
	input.AwayTeamID = strings.TrimSpace(input.AwayTeamID)
	if principal.UserID == "" {
		return match.Match{}, fmt.Errorf("%w: principal is required", ErrUnauthorized)
	}

	for _, teamID := range []string{input.HomeTeamID, input.AwayTeamID} {
		if teamID == "" {
			continue
		}
		if _, exists, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
			return match.Match{}, fmt.Errorf("get team by id: %w", err)
		} else if !exists {
			return match.Match{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	item := match.Match{
		ID:          matchID,
		HomeTeamID:  input.HomeTeamID,
		AwayTeamID:  input.AwayTeamID,
		KickoffAt:   input.KickoffAt.UTC(),
		Location:    strings.TrimSpace(input.Location),
		Competition: strings.TrimSpace(input.Competition),
		VideoURL:    strings.TrimSpace(input.VideoURL),
		CreatedBy:   principal.UserID,
		CreatedAt:   s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.matchRepo.Create(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	return item, nil
}

func (s *MatchService) List(ctx context.Context, principal user.Principal, filter ListMatchesFilter) ([]MatchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.List")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	teamsByID := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		teamsByID[t.ID] = t
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		if filter.Mine && m.CreatedBy != principal.UserID {
			continue
		}

		summary := MatchSummary{
			Match:    m,
			HomeTeam: teamsByID[m.HomeTeamID],
			AwayTeam: teamsByID[m.AwayTeamID],
		}
		if query != "" && !summaryMatchesQuery(summary, query) {
			continue
		}
		out = append(out, summary)
	}

	return out, nil
}

func summaryMatchesQuery(s MatchSummary, query string) bool {
	for _, field := range []string{
		s.Match.Location,
		s.Match.Competition,
		s.HomeTeam.Name,
		s.AwayTeam.Name,
	} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Detail loads the match bundle. Teams, roster and ledger come from
// independent tables, so they are fetched concurrently.
func (s *MatchService) Detail(ctx context.Context, matchID string) (MatchBundle, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.Detail")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return MatchBundle{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return MatchBundle{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return MatchBundle{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	bundle := MatchBundle{Match: m}

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		t, exists, err := s.teamRepo.GetByID(ctx, m.HomeTeamID)
		if err != nil {
			return fmt.Errorf("get home team: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: team=%s", ErrNotFound, m.HomeTeamID)
		}
		bundle.HomeTeam = t
		return nil
	})
	p.Go(func(ctx context.Context) error {
		t, exists, err := s.teamRepo.GetByID(ctx, m.AwayTeamID)
		if err != nil {
			return fmt.Errorf("get away team: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: team=%s", ErrNotFound, m.AwayTeamID)
		}
		bundle.AwayTeam = t
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.loadRoster(ctx, matchID)
		if err != nil {
			return err
		}
		bundle.Roster = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		ledger, err := s.actionRepo.ListByMatch(ctx, matchID)
		if err != nil {
			return fmt.Errorf("list actions: %w", err)
		}
		bundle.Scoreboard = action.ComputeScore(ledger, m.HomeTeamID, m.AwayTeamID)
		return nil
	})
	if err := p.Wait(); err != nil {
		return MatchBundle{}, err
	}

	return bundle, nil
}

func (s *MatchService) loadRoster(ctx context.Context, matchID string) ([]RosterItem, error) {
	entries, err := s.rosterRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}

	items := make([]RosterItem, 0, len(entries))
	for _, e := range entries {
		item := RosterItem{Entry: e}
		p, exists, err := s.playerRepo.GetByID(ctx, e.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("get roster player: %w", err)
		}
		if exists {
			item.Player = p
		}
		items = append(items, item)
	}
	return items, nil
}
