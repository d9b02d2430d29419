package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gaeliza/gaeliza-api/internal/domain/action"
	"github.com/gaeliza/gaeliza-api/internal/domain/match"
	"github.com/gaeliza/gaeliza-api/internal/domain/pitch"
	"github.com/gaeliza/gaeliza-api/internal/domain/roster"
	"github.com/gaeliza/gaeliza-api/internal/platform/cache"
	"github.com/gaeliza/gaeliza-api/internal/platform/id"
	"github.com/gaeliza/gaeliza-api/internal/platform/logging"
)

type RecordActionInput struct {
	MatchID  string
	TeamID   string
	PlayerID string
	Type     string
	Subtype  string
	// Minute is a pointer so a missing minute is distinguishable from
	// minute zero. Nothing is written until it is present.
	Minute *int
	Second int
	X      *int
	Y      *int
	// Card optionally attaches a disciplinary card to a foul or conceded
	// penalty, recorded as a second ledger event.
	Card string
}

// RecordedAction is the outcome of one RecordAction call. Card is non-nil
// when a card event was fanned out alongside the primary event.
type RecordedAction struct {
	Action action.Action
	Card   *action.Action
}

// ShotMarker is a positioned ledger event with its map styling.
type ShotMarker struct {
	Action action.Action
	Style  pitch.MarkerStyle
}

type LedgerService struct {
	matchRepo  match.Repository
	rosterRepo roster.Repository
	actionRepo action.Repository
	idGen      id.Generator
	cache      *cache.Store
	logger     *logging.Logger
	now        func() time.Time
}

func NewLedgerService(
	matchRepo match.Repository,
	rosterRepo roster.Repository,
	actionRepo action.Repository,
	idGen id.Generator,
	store *cache.Store,
	logger *logging.Logger,
) *LedgerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LedgerService{
		matchRepo:  matchRepo,
		rosterRepo: rosterRepo,
		actionRepo: actionRepo,
		idGen:      idGen,
		cache:      store,
		logger:     logger,
		now:        time.Now,
	}
}

// RecordAction validates and appends a ledger event. All validation happens
// before anything is written; a rejected action leaves the ledger untouched.
func (s *LedgerService) RecordAction(ctx context.Context, input RecordActionInput) (RecordedAction, error) {
	ctx, span := startUsecaseSpan(ctx, "LedgerService.RecordAction")
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)
	input.Type = strings.TrimSpace(input.Type)
	input.Subtype = strings.TrimSpace(input.Subtype)
	input.Card = strings.TrimSpace(input.Card)

	if input.MatchID == "" {
		return RecordedAction{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}
	if input.Minute == nil {
		return RecordedAction{}, fmt.Errorf("%w: minute is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return RecordedAction{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return RecordedAction{}, fmt.Errorf("%w: match=%s", ErrNotFound, input.MatchID)
	}
	if _, ok := m.SideOf(input.TeamID); !ok {
		return RecordedAction{}, fmt.Errorf("%w: team %s is not playing match %s", ErrInvalidInput, input.TeamID, input.MatchID)
	}

	if input.PlayerID != "" {
		if err := s.checkRostered(ctx, input.MatchID, input.TeamID, input.PlayerID); err != nil {
			return RecordedAction{}, err
		}
	}

	cardType := action.Type(input.Card)
	if input.Card != "" {
		if !cardType.IsCard() {
			return RecordedAction{}, fmt.Errorf("%w: %q is not a card type", ErrInvalidInput, input.Card)
		}
		if !action.CanAttachCard(action.Type(input.Type)) {
			return RecordedAction{}, fmt.Errorf("%w: a card can only accompany a foul or conceded penalty", ErrInvalidInput)
		}
	}

	primaryID, err := s.idGen.NewID()
	if err != nil {
		return RecordedAction{}, fmt.Errorf("generate action id: %w", err)
	}

	primary := action.Action{
		ID:        primaryID,
		MatchID:   input.MatchID,
		TeamID:    input.TeamID,
		PlayerID:  input.PlayerID,
		Type:      action.Type(input.Type),
		Subtype:   input.Subtype,
		Minute:    *input.Minute,
		Second:    input.Second,
		X:         input.X,
		Y:         input.Y,
		CreatedAt: s.now().UTC(),
	}
	if err := primary.Validate(); err != nil {
		return RecordedAction{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.actionRepo.Create(ctx, primary); err != nil {
		return RecordedAction{}, fmt.Errorf("create action: %w", err)
	}

	result := RecordedAction{Action: primary}
	if input.Card != "" {
		card, err := s.recordCard(ctx, primary, cardType)
		if err != nil {
			return RecordedAction{}, err
		}
		result.Card = &card
	}

	s.invalidateMatch(ctx, input.MatchID)

	return result, nil
}

// recordCard appends the card event that accompanies a foul. If the card
// write fails, the primary event is rolled back so the ledger never holds
// half of the pair.
func (s *LedgerService) recordCard(ctx context.Context, primary action.Action, cardType action.Type) (action.Action, error) {
	cardID, err := s.idGen.NewID()
	if err != nil {
		s.rollback(ctx, primary)
		return action.Action{}, fmt.Errorf("generate card action id: %w", err)
	}

	card := action.Action{
		ID:        cardID,
		MatchID:   primary.MatchID,
		TeamID:    primary.TeamID,
		PlayerID:  primary.PlayerID,
		Type:      cardType,
		Minute:    primary.Minute,
		Second:    primary.Second,
		CreatedAt: s.now().UTC(),
	}
	if err := s.actionRepo.Create(ctx, card); err != nil {
		s.rollback(ctx, primary)
		return action.Action{}, fmt.Errorf("create card action: %w", err)
	}

	return card, nil
}

func (s *LedgerService) rollback(ctx context.Context, primary action.Action) {
	if err := s.actionRepo.Delete(ctx, primary.ID); err != nil {
		s.logger.ErrorContext(ctx, "rollback of primary action failed, ledger holds an orphan foul",
			"action_id", primary.ID,
			"match_id", primary.MatchID,
			"error", err,
		)
	}
	s.invalidateMatch(ctx, primary.MatchID)
}

func (s *LedgerService) DeleteAction(ctx context.Context, matchID, actionID string) error {
	ctx, span := startUsecaseSpan(ctx, "LedgerService.DeleteAction")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	actionID = strings.TrimSpace(actionID)
	if matchID == "" || actionID == "" {
		return fmt.Errorf("%w: match_id and action_id are required", ErrInvalidInput)
	}

	a, exists, err := s.actionRepo.GetByID(ctx, actionID)
	if err != nil {
		return fmt.Errorf("get action by id: %w", err)
	}
	if !exists || a.MatchID != matchID {
		return fmt.Errorf("%w: action=%s", ErrNotFound, actionID)
	}

	if err := s.actionRepo.Delete(ctx, actionID); err != nil {
		return fmt.Errorf("delete action: %w", err)
	}

	s.invalidateMatch(ctx, matchID)

	return nil
}

// Ledger returns the match events in chronological order.
func (s *LedgerService) Ledger(ctx context.Context, matchID string) ([]action.Action, error) {
	ctx, span := startUsecaseSpan(ctx, "LedgerService.Ledger")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	load := func(ctx context.Context) (any, error) {
		if _, exists, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
			return nil, fmt.Errorf("get match by id: %w", err)
		} else if !exists {
			return nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
		}

		ledger, err := s.actionRepo.ListByMatch(ctx, matchID)
		if err != nil {
			return nil, fmt.Errorf("list actions: %w", err)
		}
		return action.SortChronological(ledger), nil
	}

	if s.cache == nil {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return v.([]action.Action), nil
	}

	v, err := s.cache.GetOrLoad(ctx, "match:"+matchID+":ledger", load)
	if err != nil {
		return nil, err
	}
	return v.([]action.Action), nil
}

// Scoreboard derives the current score from the ledger. It is never stored;
// deleting an event immediately changes the result.
func (s *LedgerService) Scoreboard(ctx context.Context, matchID string) (action.Scoreboard, error) {
	ctx, span := startUsecaseSpan(ctx, "LedgerService.Scoreboard")
	defer span.End()

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return action.Scoreboard{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return action.Scoreboard{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	ledger, err := s.Ledger(ctx, matchID)
	if err != nil {
		return action.Scoreboard{}, err
	}

	return action.ComputeScore(ledger, m.HomeTeamID, m.AwayTeamID), nil
}

// ShotMap returns positioned events filtered by type. An empty type list
// falls back to the shooting actions, mirroring the default map view.
func (s *LedgerService) ShotMap(ctx context.Context, matchID string, types []string) ([]ShotMarker, error) {
	ctx, span := startUsecaseSpan(ctx, "LedgerService.ShotMap")
	defer span.End()

	ledger, err := s.Ledger(ctx, matchID)
	if err != nil {
		return nil, err
	}

	visible := pitch.NewFilter()
	if len(types) > 0 {
		parsed := make([]action.Type, 0, len(types))
		for _, raw := range types {
			typ := action.Type(strings.TrimSpace(raw))
			if _, known := action.AllTypes[typ]; !known {
				return nil, fmt.Errorf("%w: unknown action type %q", ErrInvalidInput, raw)
			}
			parsed = append(parsed, typ)
		}
		visible = pitch.FilterOf(parsed...)
	}

	markers := make([]ShotMarker, 0, len(ledger))
	for _, a := range visible.Apply(ledger) {
		markers = append(markers, ShotMarker{Action: a, Style: pitch.StyleFor(a.Type)})
	}
	return markers, nil
}

func (s *LedgerService) checkRostered(ctx context.Context, matchID, teamID, playerID string) error {
	entries, err := s.rosterRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return fmt.Errorf("list roster: %w", err)
	}
	for _, e := range entries {
		if e.PlayerID == playerID && e.TeamID == teamID {
			return nil
		}
	}
	return fmt.Errorf("%w: player %s is not rostered for team %s in match %s", ErrInvalidInput, playerID, teamID, matchID)
}

func (s *LedgerService) invalidateMatch(ctx context.Context, matchID string) {
	if s.cache == nil {
		return
	}
	s.cache.DeletePrefix(ctx, "match:"+matchID)
}
