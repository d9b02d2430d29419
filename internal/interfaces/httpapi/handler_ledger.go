package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/gaeliza/gaeliza-api/internal/usecase"
)

type recordActionRequest struct {
	TeamID   string `json:"teamId" validate:"required"`
	PlayerID string `json:"playerId"`
	Type     string `json:"type" validate:"required"`
	Subtype  string `json:"subtype"`
	// Minute stays a pointer so minute zero survives the trip and a missing
	// minute is rejected downstream.
	Minute *int   `json:"minute"`
	Second int    `json:"second" validate:"min=0,max=59"`
	X      *int   `json:"x" validate:"omitempty,min=0,max=100"`
	Y      *int   `json:"y" validate:"omitempty,min=0,max=100"`
	Card   string `json:"card" validate:"omitempty,oneof=yellow_card black_card red_card"`
}

type recordedActionDTO struct {
	Action actionDTO  `json:"action"`
	Card   *actionDTO `json:"card,omitempty"`
}

type shotMarkerDTO struct {
	Action actionDTO `json:"action"`
	Fill   string    `json:"fill"`
	Label  string    `json:"label"`
}

func (h *Handler) ListActions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListActions")
	defer span.End()

	matchID := r.PathValue("matchID")
	ledger, err := h.ledgerService.Ledger(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list actions failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]actionDTO, 0, len(ledger))
	for _, a := range ledger {
		items = append(items, actionToDTO(ctx, a))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RecordAction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordAction")
	defer span.End()

	matchID := r.PathValue("matchID")

	var req recordActionRequest
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

	recorded, err := h.ledgerService.RecordAction(ctx, usecase.RecordActionInput{
		MatchID:  matchID,
		TeamID:   req.TeamID,
		PlayerID: req.PlayerID,
		Type:     req.Type,
		Subtype:  req.Subtype,
		Minute:   req.Minute,
		Second:   req.Second,
		X:        req.X,
		Y:        req.Y,
		Card:     req.Card,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record action failed", "match_id", matchID, "type", req.Type, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := recordedActionDTO{Action: actionToDTO(ctx, recorded.Action)}
	if recorded.Card != nil {
		card := actionToDTO(ctx, *recorded.Card)
		out.Card = &card
	}

	writeSuccess(ctx, w, http.StatusCreated, out)
}

func (h *Handler) DeleteAction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteAction")
	defer span.End()

	matchID := r.PathValue("matchID")
	actionID := r.PathValue("actionID")

	if err := h.ledgerService.DeleteAction(ctx, matchID, actionID); err != nil {
		h.logger.WarnContext(ctx, "delete action failed", "match_id", matchID, "action_id", actionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) GetShotMap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetShotMap")
	defer span.End()

	matchID := r.PathValue("matchID")

	var types []string
	if raw := strings.TrimSpace(r.URL.Query().Get("types")); raw != "" {
		types = strings.Split(raw, ",")
	}

	markers, err := h.ledgerService.ShotMap(ctx, matchID, types)
	if err != nil {
		h.logger.WarnContext(ctx, "get shot map failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]shotMarkerDTO, 0, len(markers))
	for _, m := range markers {
		items = append(items, shotMarkerDTO{
			Action: actionToDTO(ctx, m.Action),
			Fill:   m.Style.Fill,
			Label:  m.Style.Label,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
