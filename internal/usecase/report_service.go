package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/gaeliza/gaeliza-api/internal/domain/action"
	"github.com/gaeliza/gaeliza-api/internal/domain/match"
	"github.com/gaeliza/gaeliza-api/internal/platform/logging"
)

// ReportState tracks where a match report is in its lifecycle. Generation
// moves idle -> generating -> done or failed; a new request resets a finished
// state back to generating.
type ReportState string

const (
	ReportStateIdle       ReportState = "idle"
	ReportStateGenerating ReportState = "generating"
	ReportStateDone       ReportState = "done"
	ReportStateFailed     ReportState = "failed"
)

// ReportEvent is one ledger row flattened for the report table and the
// shot-map section.
type ReportEvent struct {
	ClockLabel  string
	TeamName    string
	PlayerLabel string
	Type        action.Type
	TypeLabel   string
	DetailLabel string
	HasPosition bool
	X, Y        int
}

// ReportData is everything a renderer needs to lay out a match report.
type ReportData struct {
	Match       match.Match
	HomeTeam    string
	AwayTeam    string
	Scoreboard  action.Scoreboard
	Events      []ReportEvent
	GeneratedAt time.Time
}

// ReportRenderer turns report data into a document. The PDF implementation
// lives in infrastructure; tests plug in fakes.
type ReportRenderer interface {
	Render(data ReportData) ([]byte, error)
}

// ReportFile is a finished report ready to stream to the client.
type ReportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// BatchReportResult is the outcome for one match in a batch export.
type BatchReportResult struct {
	MatchID  string
	Filename string
	Err      string
}

type ReportService struct {
	matches        *MatchService
	feed           *FeedService
	ledger         *LedgerService
	renderer       ReportRenderer
	logger         *logging.Logger
	filenamePrefix string
	batchWorkers   int
	now            func() time.Time

	// Finished entries are dropped after reportStateRetention so the map
	// stays bounded over the life of the process.
	mu     sync.Mutex
	states map[string]reportStatus
}

// reportStateRetention is how long a done or failed state stays readable
// before it decays back to idle.
const reportStateRetention = 10 * time.Minute

type reportStatus struct {
	state     ReportState
	updatedAt time.Time
}

func NewReportService(
	matches *MatchService,
	feed *FeedService,
	ledger *LedgerService,
	renderer ReportRenderer,
	logger *logging.Logger,
	filenamePrefix string,
	batchWorkers int,
) *ReportService {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(filenamePrefix) == "" {
		filenamePrefix = "match_report"
	}
	if batchWorkers < 1 {
		batchWorkers = 4
	}
	return &ReportService{
		matches:        matches,
		feed:           feed,
		ledger:         ledger,
		renderer:       renderer,
		logger:         logger,
		filenamePrefix: filenamePrefix,
		batchWorkers:   batchWorkers,
		now:            time.Now,
		states:         make(map[string]reportStatus),
	}
}

// State reports where the match's report generation currently stands.
func (s *ReportService) State(matchID string) ReportState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[matchID]
	if !ok {
		return ReportStateIdle
	}
	if st.state != ReportStateGenerating && !s.now().Before(st.updatedAt.Add(reportStateRetention)) {
		delete(s.states, matchID)
		return ReportStateIdle
	}
	return st.state
}

func (s *ReportService) begin(matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneStatesLocked()
	if st, ok := s.states[matchID]; ok && st.state == ReportStateGenerating {
		return fmt.Errorf("%w: match=%s", ErrReportInProgress, matchID)
	}
	s.states[matchID] = reportStatus{state: ReportStateGenerating, updatedAt: s.now()}
	return nil
}

func (s *ReportService) finish(matchID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := ReportStateDone
	if err != nil {
		state = ReportStateFailed
	}
	s.states[matchID] = reportStatus{state: state, updatedAt: s.now()}
}

func (s *ReportService) pruneStatesLocked() {
	cutoff := s.now().Add(-reportStateRetention)
	for matchID, st := range s.states {
		if st.state != ReportStateGenerating && st.updatedAt.Before(cutoff) {
			delete(s.states, matchID)
		}
	}
}

// Generate builds the match report. Only one generation per match runs at a
// time; a concurrent request is rejected rather than queued.
func (s *ReportService) Generate(ctx context.Context, matchID string) (ReportFile, error) {
	ctx, span := startUsecaseSpan(ctx, "ReportService.Generate")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return ReportFile{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	if err := s.begin(matchID); err != nil {
		return ReportFile{}, err
	}

	file, err := s.generate(ctx, matchID)
	s.finish(matchID, err)
	if err != nil {
		return ReportFile{}, err
	}
	return file, nil
}

func (s *ReportService) generate(ctx context.Context, matchID string) (ReportFile, error) {
	bundle, err := s.matches.Detail(ctx, matchID)
	if err != nil {
		return ReportFile{}, err
	}

	ledger, err := s.ledger.Ledger(ctx, matchID)
	if err != nil {
		return ReportFile{}, err
	}
	items, err := s.feed.decorate(ctx, ledger)
	if err != nil {
		return ReportFile{}, err
	}

	events := make([]ReportEvent, 0, len(items))
	for _, item := range items {
		ev := ReportEvent{
			ClockLabel:  item.ClockLabel,
			TeamName:    item.TeamName,
			PlayerLabel: item.PlayerLabel,
			Type:        item.Action.Type,
			TypeLabel:   item.TypeLabel,
			DetailLabel: action.SubtypeLabel(item.Action.Subtype),
		}
		if item.Action.HasPosition() {
			ev.HasPosition = true
			ev.X = *item.Action.X
			ev.Y = *item.Action.Y
		}
		events = append(events, ev)
	}

	data := ReportData{
		Match:       bundle.Match,
		HomeTeam:    bundle.HomeTeam.Name,
		AwayTeam:    bundle.AwayTeam.Name,
		Scoreboard:  bundle.Scoreboard,
		Events:      events,
		GeneratedAt: s.now().UTC(),
	}

	doc, err := s.renderer.Render(data)
	if err != nil {
		return ReportFile{}, fmt.Errorf("render report: %w", err)
	}

	return ReportFile{
		Filename:    s.Filename(),
		ContentType: "application/pdf",
		Data:        doc,
	}, nil
}

// Filename stamps the artifact with the export date, not the match date, so
// re-exporting an old match on a later day does not overwrite the earlier
// file.
func (s *ReportService) Filename() string {
	return fmt.Sprintf("%s_%s.pdf", s.filenamePrefix, s.now().UTC().Format("2006-01-02"))
}

// GenerateBatch renders reports for several matches on a bounded worker
// pool. Per-match failures land in the result rows instead of aborting the
// batch.
func (s *ReportService) GenerateBatch(ctx context.Context, matchIDs []string) ([]BatchReportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ReportService.GenerateBatch")
	defer span.End()

	cleaned := make([]string, 0, len(matchIDs))
	seen := make(map[string]struct{}, len(matchIDs))
	for _, matchID := range matchIDs {
		matchID = strings.TrimSpace(matchID)
		if matchID == "" {
			return nil, fmt.Errorf("%w: match id cannot be empty", ErrInvalidInput)
		}
		if _, dup := seen[matchID]; dup {
			continue
		}
		seen[matchID] = struct{}{}
		cleaned = append(cleaned, matchID)
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: at least one match id is required", ErrInvalidInput)
	}

	workerCount := s.batchWorkers
	if workerCount > len(cleaned) {
		workerCount = len(cleaned)
	}
	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	results := make([]BatchReportResult, len(cleaned))
	var workers sync.WaitGroup
	for i, matchID := range cleaned {
		i, matchID := i, matchID
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			row := BatchReportResult{MatchID: matchID}
			file, err := s.Generate(ctx, matchID)
			if err != nil {
				row.Err = err.Error()
				s.logger.WarnContext(ctx, "batch report failed", "match_id", matchID, "error", err)
			} else {
				row.Filename = file.Filename
			}
			results[i] = row
		}); err != nil {
			workers.Done()
			results[i] = BatchReportResult{MatchID: matchID, Err: err.Error()}
		}
	}
	workers.Wait()

	return results, nil
}
