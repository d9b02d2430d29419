package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/gaeliza/gaeliza-api/internal/domain/action"
	"github.com/gaeliza/gaeliza-api/internal/domain/match"
	"github.com/gaeliza/gaeliza-api/internal/domain/player"
	"github.com/gaeliza/gaeliza-api/internal/domain/team"
)

const defaultRecentLimit = 3

// Labels used when a ledger event cannot be attributed to a player.
const (
	teamActionLabel    = "Team action"
	unknownPlayerLabel = "Unknown player"
)

// FeedItem is one ledger event decorated for display.
type FeedItem struct {
	Action      action.Action
	TeamName    string
	PlayerLabel string
	TypeLabel   string
	ClockLabel  string
}

// CategoryGroup is a feed category with its items, possibly empty. Empty
// groups are still listed so the reader sees the category exists.
type CategoryGroup struct {
	Category action.Category
	Label    string
	Items    []FeedItem
}

// SideLog is the full categorized feed for one team.
type SideLog struct {
	Side     match.Side
	TeamID   string
	TeamName string
	Groups   []CategoryGroup
}

type FeedService struct {
	ledger     *LedgerService
	matchRepo  match.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
}

func NewFeedService(
	ledger *LedgerService,
	matchRepo match.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
) *FeedService {
	return &FeedService{
		ledger:     ledger,
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
	}
}

// Recent returns the latest events across both teams, newest first. Events
// at the same clock position surface in reverse creation order.
func (s *FeedService) Recent(ctx context.Context, matchID string, limit int) ([]FeedItem, error) {
	ctx, span := startUsecaseSpan(ctx, "FeedService.Recent")
	defer span.End()

	if limit <= 0 {
		limit = defaultRecentLimit
	}

	ledger, err := s.ledger.Ledger(ctx, matchID)
	if err != nil {
		return nil, err
	}

	recent := action.SortRecent(ledger)
	if len(recent) > limit {
		recent = recent[:limit]
	}

	return s.decorate(ctx, recent)
}

// FullLog returns every event of the match grouped per side and category,
// chronological within each group.
func (s *FeedService) FullLog(ctx context.Context, matchID string) ([]SideLog, error) {
	ctx, span := startUsecaseSpan(ctx, "FeedService.FullLog")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	ledger, err := s.ledger.Ledger(ctx, matchID)
	if err != nil {
		return nil, err
	}
	items, err := s.decorate(ctx, ledger)
	if err != nil {
		return nil, err
	}

	sides := []SideLog{
		{Side: match.SideHome, TeamID: m.HomeTeamID},
		{Side: match.SideAway, TeamID: m.AwayTeamID},
	}
	for i := range sides {
		if t, exists, err := s.teamRepo.GetByID(ctx, sides[i].TeamID); err != nil {
			return nil, fmt.Errorf("get team by id: %w", err)
		} else if exists {
			sides[i].TeamName = t.Name
		}

		groups := make([]CategoryGroup, 0, len(action.CategoryOrder))
		for _, cat := range action.CategoryOrder {
			group := CategoryGroup{Category: cat, Label: cat.Label()}
			for _, item := range items {
				if item.Action.TeamID != sides[i].TeamID {
					continue
				}
				if c, ok := action.CategoryOf(item.Action.Type); ok && c == cat {
					group.Items = append(group.Items, item)
				}
			}
			groups = append(groups, group)
		}
		sides[i].Groups = groups
	}

	return sides, nil
}

func (s *FeedService) decorate(ctx context.Context, ledger []action.Action) ([]FeedItem, error) {
	teamNames := make(map[string]string)
	playerLabels := make(map[string]string)

	items := make([]FeedItem, 0, len(ledger))
	for _, a := range ledger {
		item := FeedItem{
			Action:     a,
			TypeLabel:  a.Type.Label(),
			ClockLabel: a.ClockLabel(),
		}

		name, ok := teamNames[a.TeamID]
		if !ok {
			t, exists, err := s.teamRepo.GetByID(ctx, a.TeamID)
			if err != nil {
				return nil, fmt.Errorf("get team by id: %w", err)
			}
			if exists {
				name = t.Name
			}
			teamNames[a.TeamID] = name
		}
		item.TeamName = name

		item.PlayerLabel = teamActionLabel
		if a.PlayerID != "" {
			label, ok := playerLabels[a.PlayerID]
			if !ok {
				p, exists, err := s.playerRepo.GetByID(ctx, a.PlayerID)
				if err != nil {
					return nil, fmt.Errorf("get player by id: %w", err)
				}
				label = unknownPlayerLabel
				if exists {
					label = p.DisplayName()
				}
				playerLabels[a.PlayerID] = label
			}
			item.PlayerLabel = label
		}

		items = append(items, item)
	}

	return items, nil
}
