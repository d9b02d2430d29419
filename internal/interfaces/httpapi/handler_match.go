package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/gaeliza/gaeliza-api/internal/usecase"
)

type createMatchRequest struct {
	HomeTeamID  string `json:"homeTeamId" validate:"required"`
	AwayTeamID  string `json:"awayTeamId" validate:"required,nefield=HomeTeamID"`
	KickoffAt   string `json:"kickoffAt" validate:"required"`
	Location    string `json:"location" validate:"max=200"`
	Competition string `json:"competition" validate:"max=200"`
	VideoURL    string `json:"videoUrl" validate:"omitempty,url"`
}

type matchSummaryDTO struct {
	Match    matchDTO `json:"match"`
	HomeTeam teamDTO  `json:"homeTeam"`
	AwayTeam teamDTO  `json:"awayTeam"`
}

type matchBundleDTO struct {
	Match      matchDTO        `json:"match"`
	HomeTeam   teamDTO         `json:"homeTeam"`
	AwayTeam   teamDTO         `json:"awayTeam"`
	Roster     []rosterItemDTO `json:"roster"`
	Scoreboard scoreboardDTO   `json:"scoreboard"`
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	filter := usecase.ListMatchesFilter{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Mine:  r.URL.Query().Get("mine") == "true",
	}

	summaries, err := h.matchService.List(ctx, principal, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, matchSummaryDTO{
			Match:    matchToDTO(ctx, s.Match),
			HomeTeam: teamToDTO(ctx, s.HomeTeam),
			AwayTeam: teamToDTO(ctx, s.AwayTeam),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createMatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	kickoffAt, err := time.Parse(time.RFC3339, req.KickoffAt)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: kickoffAt must be RFC3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	m, err := h.matchService.Create(ctx, principal, usecase.CreateMatchInput{
		HomeTeamID:  req.HomeTeamID,
		AwayTeamID:  req.AwayTeamID,
		KickoffAt:   kickoffAt,
		Location:    req.Location,
		Competition: req.Competition,
		VideoURL:    req.VideoURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(ctx, m))
}

func (h *Handler) GetMatchDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchDetail")
	defer span.End()

	matchID := r.PathValue("matchID")
	bundle, err := h.matchService.Detail(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match detail failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	roster := make([]rosterItemDTO, 0, len(bundle.Roster))
	for _, item := range bundle.Roster {
		roster = append(roster, rosterItemToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, matchBundleDTO{
		Match:      matchToDTO(ctx, bundle.Match),
		HomeTeam:   teamToDTO(ctx, bundle.HomeTeam),
		AwayTeam:   teamToDTO(ctx, bundle.AwayTeam),
		Roster:     roster,
		Scoreboard: scoreboardToDTO(ctx, bundle.Scoreboard),
	})
}

func (h *Handler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoreboard")
	defer span.End()

	matchID := r.PathValue("matchID")
	board, err := h.ledgerService.Scoreboard(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get scoreboard failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreboardToDTO(ctx, board))
}
