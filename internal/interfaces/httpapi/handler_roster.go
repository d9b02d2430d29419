package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/gaeliza/gaeliza-api/internal/usecase"
)

type newTemporaryPlayerRequest struct {
	FirstName string `json:"firstName" validate:"required,max=80"`
	LastName  string `json:"lastName" validate:"max=80"`
	Number    *int   `json:"number" validate:"omitempty,min=0,max=99"`
}

type addRosterEntryRequest struct {
	TeamID    string                     `json:"teamId" validate:"required"`
	PlayerID  string                     `json:"playerId"`
	NewPlayer *newTemporaryPlayerRequest `json:"newPlayer"`
}

func (h *Handler) ListRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRoster")
	defer span.End()

	matchID := r.PathValue("matchID")
	items, err := h.rosterService.ListByMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list roster failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]rosterItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, rosterItemToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) AddRosterEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddRosterEntry")
	defer span.End()

	matchID := r.PathValue("matchID")

	var req addRosterEntryRequest
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

	input := usecase.AddRosterEntryInput{
		MatchID:  matchID,
		TeamID:   req.TeamID,
		PlayerID: req.PlayerID,
	}
	if req.NewPlayer != nil {
		input.NewPlayer = &usecase.NewTemporaryPlayerInput{
			FirstName: req.NewPlayer.FirstName,
			LastName:  req.NewPlayer.LastName,
			Number:    req.NewPlayer.Number,
		}
	}

	item, err := h.rosterService.AddEntry(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "add roster entry failed", "match_id", matchID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, rosterItemToDTO(ctx, item))
}

func (h *Handler) RemoveRosterEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveRosterEntry")
	defer span.End()

	matchID := r.PathValue("matchID")
	entryID := r.PathValue("entryID")

	if err := h.rosterService.RemoveEntry(ctx, matchID, entryID); err != nil {
		h.logger.WarnContext(ctx, "remove roster entry failed", "match_id", matchID, "entry_id", entryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}
