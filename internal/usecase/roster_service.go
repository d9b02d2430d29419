package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gaeliza/gaeliza-api/internal/domain/match"
	"github.com/gaeliza/gaeliza-api/internal/domain/player"
	"github.com/gaeliza/gaeliza-api/internal/domain/roster"
	"github.com/gaeliza/gaeliza-api/internal/platform/cache"
	"github.com/gaeliza/gaeliza-api/internal/platform/id"
)

// RosterItem is a roster entry joined with its player record. Player is the
// zero value when the referenced player row is missing.
type RosterItem struct {
	Entry  roster.Entry
	Player player.Player
}

// NewTemporaryPlayerInput describes a guest player created inline while
// building a match roster.
type NewTemporaryPlayerInput struct {
	FirstName string
	LastName  string
	Number    *int
}

type AddRosterEntryInput struct {
	MatchID  string
	TeamID   string
	PlayerID string
	// NewPlayer, when set, creates a temporary player on the team and
	// rosters it in one call. Mutually exclusive with PlayerID.
	NewPlayer *NewTemporaryPlayerInput
}

type RosterService struct {
	matchRepo  match.Repository
	playerRepo player.Repository
	rosterRepo roster.Repository
	idGen      id.Generator
	cache      *cache.Store
	now        func() time.Time
}

func NewRosterService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	idGen id.Generator,
	store *cache.Store,
) *RosterService {
	return &RosterService{
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
		idGen:      idGen,
		cache:      store,
		now:        time.Now,
	}
}

func (s *RosterService) ListByMatch(ctx context.Context, matchID string) ([]RosterItem, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.ListByMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

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

func (s *RosterService) AddEntry(ctx context.Context, input AddRosterEntryInput) (RosterItem, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.AddEntry")
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)

	if input.MatchID == "" {
		return RosterItem{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}
	if input.PlayerID != "" && input.NewPlayer != nil {
		return RosterItem{}, fmt.Errorf("%w: provide either player_id or a new player, not both", ErrInvalidInput)
	}
	if input.PlayerID == "" && input.NewPlayer == nil {
		return RosterItem{}, fmt.Errorf("%w: player_id or a new player is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return RosterItem{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return RosterItem{}, fmt.Errorf("%w: match=%s", ErrNotFound, input.MatchID)
	}
	if _, ok := m.SideOf(input.TeamID); !ok {
		return RosterItem{}, fmt.Errorf("%w: team %s is not playing match %s", ErrInvalidInput, input.TeamID, input.MatchID)
	}

	var rostered player.Player
	if input.NewPlayer != nil {
		rostered, err = s.createTemporaryPlayer(ctx, input.TeamID, *input.NewPlayer)
		if err != nil {
			return RosterItem{}, err
		}
	} else {
		p, exists, err := s.playerRepo.GetByID(ctx, input.PlayerID)
		if err != nil {
			return RosterItem{}, fmt.Errorf("get player by id: %w", err)
		}
		if !exists {
			return RosterItem{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerID)
		}
		rostered = p
	}

	entryID, err := s.idGen.NewID()
	if err != nil {
		return RosterItem{}, fmt.Errorf("generate roster entry id: %w", err)
	}

	entry := roster.Entry{
		ID:       entryID,
		MatchID:  input.MatchID,
		TeamID:   input.TeamID,
		PlayerID: rostered.ID,
	}
	if err := entry.Validate(); err != nil {
		return RosterItem{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.rosterRepo.Add(ctx, entry); err != nil {
		if errors.Is(err, roster.ErrDuplicateEntry) {
			return RosterItem{}, fmt.Errorf("%w: player %s is already rostered for match %s", ErrDuplicate, rostered.ID, input.MatchID)
		}
		return RosterItem{}, fmt.Errorf("add roster entry: %w", err)
	}

	s.invalidateMatch(ctx, input.MatchID)

	return RosterItem{Entry: entry, Player: rostered}, nil
}

func (s *RosterService) RemoveEntry(ctx context.Context, matchID, entryID string) error {
	ctx, span := startUsecaseSpan(ctx, "RosterService.RemoveEntry")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	entryID = strings.TrimSpace(entryID)
	if matchID == "" || entryID == "" {
		return fmt.Errorf("%w: match_id and entry_id are required", ErrInvalidInput)
	}

	entries, err := s.rosterRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return fmt.Errorf("list roster: %w", err)
	}
	found := false
	for _, e := range entries {
		if e.ID == entryID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: roster entry=%s", ErrNotFound, entryID)
	}

	if err := s.rosterRepo.Remove(ctx, entryID); err != nil {
		return fmt.Errorf("remove roster entry: %w", err)
	}

	s.invalidateMatch(ctx, matchID)

	return nil
}

func (s *RosterService) createTemporaryPlayer(ctx context.Context, teamID string, input NewTemporaryPlayerInput) (player.Player, error) {
	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	p := player.Player{
		ID:        playerID,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Number:    input.Number,
		TeamID:    teamID,
		Type:      player.TypeTemporary,
		CreatedAt: s.now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Create(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("create temporary player: %w", err)
	}

	return p, nil
}

func (s *RosterService) invalidateMatch(ctx context.Context, matchID string) {
	if s.cache == nil {
		return
	}
	s.cache.DeletePrefix(ctx, "match:"+matchID)
}
