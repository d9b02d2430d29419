package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gaeliza/gaeliza-api/internal/domain/action"
	"github.com/gaeliza/gaeliza-api/internal/infrastructure/repository/memory"
	"github.com/gaeliza/gaeliza-api/internal/platform/cache"
	"github.com/gaeliza/gaeliza-api/internal/platform/logging"
)

type sequenceIDGenerator struct {
	next int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("id-%03d", g.next), nil
}

func newLedgerFixture() (*LedgerService, *memory.ActionRepository) {
	actionRepo := memory.NewActionRepository(nil)
	return NewLedgerService(
		memory.NewMatchRepository(memory.SeedMatches()),
		memory.NewRosterRepository(memory.SeedRoster()),
		actionRepo,
		&sequenceIDGenerator{},
		cache.NewStore(time.Minute),
		logging.NewNop(),
	), actionRepo
}

func minutePtr(v int) *int { return &v }

func TestLedgerService_RecordAction(t *testing.T) {
	service, _ := newLedgerFixture()

	x, y := 62, 41
	recorded, err := service.RecordAction(t.Context(), RecordActionInput{
		MatchID:  memory.MatchIDOpening,
		TeamID:   memory.TeamIDKeltoi,
		PlayerID: "player-keltoi-07",
		Type:     "goal",
		Subtype:  "foot",
		Minute:   minutePtr(12),
		Second:   30,
		X:        &x,
		Y:        &y,
	})
	if err != nil {
		t.Fatalf("record action failed: %v", err)
	}
	if recorded.Action.ID == "" || recorded.Card != nil {
		t.Fatalf("expected a single plain event, got %+v", recorded)
	}

	ledger, err := service.Ledger(t.Context(), memory.MatchIDOpening)
	if err != nil {
		t.Fatalf("ledger failed: %v", err)
	}
	if len(ledger) != 1 || ledger[0].Type != action.TypeGoal || !ledger[0].HasPosition() {
		t.Fatalf("unexpected ledger %+v", ledger)
	}

	board, err := service.Scoreboard(t.Context(), memory.MatchIDOpening)
	if err != nil {
		t.Fatalf("scoreboard failed: %v", err)
	}
	if board.Home.Goals != 1 || board.Home.Total() != 3 || board.Away.Total() != 0 {
		t.Fatalf("unexpected scoreboard %+v", board)
	}
}

func TestLedgerService_RecordAction_MinuteRequired(t *testing.T) {
	service, repo := newLedgerFixture()

	_, err := service.RecordAction(t.Context(), RecordActionInput{
		MatchID: memory.MatchIDOpening,
		TeamID:  memory.TeamIDKeltoi,
		Type:    "point",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	ledger, err := repo.ListByMatch(t.Context(), memory.MatchIDOpening)
	if err != nil {
		t.Fatalf("list actions: %v", err)
	}
	if len(ledger) != 0 {
		t.Fatalf("rejected action must not be written, ledger %+v", ledger)
	}
}

func TestLedgerService_RecordAction_Validation(t *testing.T) {
	service, _ := newLedgerFixture()

	cases := []struct {
		name  string
		input RecordActionInput
	}{
		{
			name: "team not in match",
			input: RecordActionInput{
				MatchID: memory.MatchIDOpening,
				TeamID:  "team-elsewhere",
				Type:    "point",
				Minute:  minutePtr(5),
			},
		},
		{
			name: "player not rostered",
			input: RecordActionInput{
				MatchID:  memory.MatchIDOpening,
				TeamID:   memory.TeamIDKeltoi,
				PlayerID: "player-fillos-09",
				Type:     "point",
				Minute:   minutePtr(5),
			},
		},
		{
			name: "unknown type",
			input: RecordActionInput{
				MatchID: memory.MatchIDOpening,
				TeamID:  memory.TeamIDKeltoi,
				Type:    "own_goal",
				Minute:  minutePtr(5),
			},
		},
		{
			name: "card on non foul",
			input: RecordActionInput{
				MatchID: memory.MatchIDOpening,
				TeamID:  memory.TeamIDKeltoi,
				Type:    "point",
				Minute:  minutePtr(5),
				Card:    "yellow_card",
			},
		},
		{
			name: "card type not a card",
			input: RecordActionInput{
				MatchID: memory.MatchIDOpening,
				TeamID:  memory.TeamIDKeltoi,
				Type:    "foul_committed",
				Minute:  minutePtr(5),
				Card:    "goal",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.RecordAction(t.Context(), tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestLedgerService_RecordAction_CardFanOut(t *testing.T) {
	service, repo := newLedgerFixture()

	recorded, err := service.RecordAction(t.Context(), RecordActionInput{
		MatchID:  memory.MatchIDOpening,
		TeamID:   memory.TeamIDFillos,
		PlayerID: "player-fillos-05",
		Type:     "foul_committed",
		Subtype:  "trip",
		Minute:   minutePtr(33),
		Second:   10,
		Card:     "yellow_card",
	})
	if err != nil {
		t.Fatalf("record action failed: %v", err)
	}
	if recorded.Card == nil {
		t.Fatal("expected a card event alongside the foul")
	}
	if recorded.Card.Type != action.TypeYellowCard ||
		recorded.Card.PlayerID != "player-fillos-05" ||
		recorded.Card.Minute != 33 || recorded.Card.Second != 10 {
		t.Fatalf("card event does not mirror the foul: %+v", recorded.Card)
	}

	ledger, err := repo.ListByMatch(t.Context(), memory.MatchIDOpening)
	if err != nil {
		t.Fatalf("list actions: %v", err)
	}
	if len(ledger) != 2 {
		t.Fatalf("expected foul and card in the ledger, got %d events", len(ledger))
	}
}

// failingActionRepository wraps the memory ledger and fails the Nth create.
type failingActionRepository struct {
	*memory.ActionRepository
	failOnCreate int
	creates      int
}

func (r *failingActionRepository) Create(ctx context.Context, item action.Action) error {
	r.creates++
	if r.creates == r.failOnCreate {
		return errors.New("insert failed")
	}
	return r.ActionRepository.Create(ctx, item)
}

func TestLedgerService_RecordAction_CardFailureRollsBackFoul(t *testing.T) {
	repo := &failingActionRepository{
		ActionRepository: memory.NewActionRepository(nil),
		failOnCreate:     2,
	}
	service := NewLedgerService(
		memory.NewMatchRepository(memory.SeedMatches()),
		memory.NewRosterRepository(memory.SeedRoster()),
		repo,
		&sequenceIDGenerator{},
		nil,
		logging.NewNop(),
	)

	_, err := service.RecordAction(t.Context(), RecordActionInput{
		MatchID: memory.MatchIDOpening,
		TeamID:  memory.TeamIDKeltoi,
		Type:    "foul_committed",
		Minute:  minutePtr(40),
		Card:    "red_card",
	})
	if err == nil {
		t.Fatal("expected card insert failure to surface")
	}

	ledger, listErr := repo.ListByMatch(t.Context(), memory.MatchIDOpening)
	if listErr != nil {
		t.Fatalf("list actions: %v", listErr)
	}
	if len(ledger) != 0 {
		t.Fatalf("foul should be rolled back when its card fails, ledger %+v", ledger)
	}
}

func TestLedgerService_DeleteActionRecomputesScore(t *testing.T) {
	service, _ := newLedgerFixture()

	recorded, err := service.RecordAction(t.Context(), RecordActionInput{
		MatchID: memory.MatchIDOpening,
		TeamID:  memory.TeamIDKeltoi,
		Type:    "goal",
		Minute:  minutePtr(3),
	})
	if err != nil {
		t.Fatalf("record action failed: %v", err)
	}
	if _, err := service.RecordAction(t.Context(), RecordActionInput{
		MatchID: memory.MatchIDOpening,
		TeamID:  memory.TeamIDKeltoi,
		Type:    "point",
		Minute:  minutePtr(9),
	}); err != nil {
		t.Fatalf("record action failed: %v", err)
	}

	if err := service.DeleteAction(t.Context(), memory.MatchIDOpening, recorded.Action.ID); err != nil {
		t.Fatalf("delete action failed: %v", err)
	}

	board, err := service.Scoreboard(t.Context(), memory.MatchIDOpening)
	if err != nil {
		t.Fatalf("scoreboard failed: %v", err)
	}
	if board.Home.Goals != 0 || board.Home.Points != 1 {
		t.Fatalf("deleting the goal should leave 0-01, got %+v", board.Home)
	}

	if err := service.DeleteAction(t.Context(), memory.MatchIDOpening, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown action, got %v", err)
	}
}

func TestLedgerService_ShotMap(t *testing.T) {
	service, _ := newLedgerFixture()

	x, y := 70, 30
	if _, err := service.RecordAction(t.Context(), RecordActionInput{
		MatchID: memory.MatchIDOpening,
		TeamID:  memory.TeamIDKeltoi,
		Type:    "goal",
		Minute:  minutePtr(2),
		X:       &x,
		Y:       &y,
	}); err != nil {
		t.Fatalf("record action failed: %v", err)
	}
	if _, err := service.RecordAction(t.Context(), RecordActionInput{
		MatchID: memory.MatchIDOpening,
		TeamID:  memory.TeamIDKeltoi,
		Type:    "turnover",
		Minute:  minutePtr(4),
		X:       &x,
		Y:       &y,
	}); err != nil {
		t.Fatalf("record action failed: %v", err)
	}

	markers, err := service.ShotMap(t.Context(), memory.MatchIDOpening, nil)
	if err != nil {
		t.Fatalf("shot map failed: %v", err)
	}
	if len(markers) != 1 || markers[0].Action.Type != action.TypeGoal {
		t.Fatalf("default map should show shooting events only, got %+v", markers)
	}

	markers, err = service.ShotMap(t.Context(), memory.MatchIDOpening, []string{"turnover"})
	if err != nil {
		t.Fatalf("shot map failed: %v", err)
	}
	if len(markers) != 1 || markers[0].Action.Type != action.TypeTurnover {
		t.Fatalf("explicit filter should show turnovers only, got %+v", markers)
	}

	if _, err := service.ShotMap(t.Context(), memory.MatchIDOpening, []string{"bogus"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown type, got %v", err)
	}
}
