package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/gaeliza/gaeliza-api/internal/domain/user"
	"github.com/gaeliza/gaeliza-api/internal/infrastructure/repository/memory"
	"github.com/gaeliza/gaeliza-api/internal/platform/logging"
	"github.com/gaeliza/gaeliza-api/internal/usecase"
)

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (user.Principal, error) {
	if token != "coach-token" {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return user.Principal{UserID: memory.SeedUserID, Username: "coach"}, nil
}

type fixedIDGenerator struct {
	next int
}

func (g *fixedIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("id-%03d", g.next), nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	rosterRepo := memory.NewRosterRepository(memory.SeedRoster())
	actionRepo := memory.NewActionRepository(nil)
	idGen := &fixedIDGenerator{}

	teamService := usecase.NewTeamService(teamRepo, playerRepo, idGen)
	matchService := usecase.NewMatchService(matchRepo, teamRepo, playerRepo, rosterRepo, actionRepo, idGen)
	rosterService := usecase.NewRosterService(matchRepo, playerRepo, rosterRepo, idGen, nil)
	ledgerService := usecase.NewLedgerService(matchRepo, rosterRepo, actionRepo, idGen, nil, logging.NewNop())
	feedService := usecase.NewFeedService(ledgerService, matchRepo, teamRepo, playerRepo)
	reportService := usecase.NewReportService(matchService, feedService, ledgerService, fakeRendererFunc(func(usecase.ReportData) ([]byte, error) {
		return []byte("%PDF-stub"), nil
	}), logging.NewNop(), "match_report", 2)

	handler := NewHandler(teamService, matchService, rosterService, ledgerService, feedService, reportService, logging.NewNop())
	return NewRouter(handler, stubVerifier{}, logging.NewNop(), []string{"*"})
}

type fakeRendererFunc func(usecase.ReportData) ([]byte, error)

func (f fakeRendererFunc) Render(data usecase.ReportData) ([]byte, error) { return f(data) }

func doRequest(t *testing.T, router http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body["data"]
}

func TestRouter_ListTeamsIsPublic(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/teams", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	teams, ok := decodeData(t, rec).([]any)
	if !ok || len(teams) != 2 {
		t.Fatalf("expected 2 seeded teams, got %v", decodeData(t, rec))
	}
}

func TestRouter_MatchesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/matches", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/matches", "wrong-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for bad token, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/matches", "coach-token", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_RecordActionUpdatesScoreboard(t *testing.T) {
	router := newTestRouter(t)

	body := `{"teamId":"` + memory.TeamIDKeltoi + `","playerId":"player-keltoi-07","type":"goal","subtype":"foot","minute":3,"second":20}`
	rec := doRequest(t, router, http.MethodPost, "/v1/matches/"+memory.MatchIDOpening+"/actions", "coach-token", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/matches/"+memory.MatchIDOpening+"/scoreboard", "coach-token", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	board, ok := decodeData(t, rec).(map[string]any)
	if !ok {
		t.Fatalf("expected scoreboard object, got %v", decodeData(t, rec))
	}
	home, _ := board["home"].(map[string]any)
	if got, _ := home["scoreline"].(string); got != "1-00 (3)" {
		t.Fatalf("expected home scoreline 1-00 (3), got %q", got)
	}
}

func TestRouter_RecordActionWithoutMinuteRejected(t *testing.T) {
	router := newTestRouter(t)

	body := `{"teamId":"` + memory.TeamIDKeltoi + `","type":"point"}`
	rec := doRequest(t, router, http.MethodPost, "/v1/matches/"+memory.MatchIDOpening+"/actions", "coach-token", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_DuplicateRosterEntryConflicts(t *testing.T) {
	router := newTestRouter(t)

	body := `{"teamId":"` + memory.TeamIDKeltoi + `","playerId":"player-keltoi-07"}`
	rec := doRequest(t, router, http.MethodPost, "/v1/matches/"+memory.MatchIDOpening+"/roster", "coach-token", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409 for rostered player, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_DownloadReportStreamsPDF(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/matches/"+memory.MatchIDOpening+"/report", "coach-token", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type %q", got)
	}
	// The filename carries the export date.
	want := "match_report_" + time.Now().UTC().Format("2006-01-02") + ".pdf"
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, want) {
		t.Fatalf("unexpected content disposition %q, want %q", got, want)
	}
}

func TestRouter_HealthzIsOpen(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
