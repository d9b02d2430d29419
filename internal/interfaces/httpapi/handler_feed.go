package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gaeliza/gaeliza-api/internal/usecase"
)

type feedItemDTO struct {
	Action      actionDTO `json:"action"`
	TeamName    string    `json:"teamName"`
	PlayerLabel string    `json:"playerLabel"`
	TypeLabel   string    `json:"typeLabel"`
	ClockLabel  string    `json:"clockLabel"`
}

type categoryGroupDTO struct {
	Category string        `json:"category"`
	Label    string        `json:"label"`
	Items    []feedItemDTO `json:"items"`
}

type sideLogDTO struct {
	Side     string             `json:"side"`
	TeamID   string             `json:"teamId"`
	TeamName string             `json:"teamName"`
	Groups   []categoryGroupDTO `json:"groups"`
}

func (h *Handler) GetRecentFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRecentFeed")
	defer span.End()

	matchID := r.PathValue("matchID")

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 {
			limit = parsed
		}
	}

	items, err := h.feedService.Recent(ctx, matchID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "get recent feed failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]feedItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, feedItemToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetFullLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFullLog")
	defer span.End()

	matchID := r.PathValue("matchID")
	sides, err := h.feedService.FullLog(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get full log failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]sideLogDTO, 0, len(sides))
	for _, side := range sides {
		groups := make([]categoryGroupDTO, 0, len(side.Groups))
		for _, group := range side.Groups {
			items := make([]feedItemDTO, 0, len(group.Items))
			for _, item := range group.Items {
				items = append(items, feedItemToDTO(ctx, item))
			}
			groups = append(groups, categoryGroupDTO{
				Category: string(group.Category),
				Label:    group.Label,
				Items:    items,
			})
		}
		out = append(out, sideLogDTO{
			Side:     string(side.Side),
			TeamID:   side.TeamID,
			TeamName: side.TeamName,
			Groups:   groups,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func feedItemToDTO(ctx context.Context, v usecase.FeedItem) feedItemDTO {
	ctx, span := startSpan(ctx, "httpapi.feedItemToDTO")
	defer span.End()

	return feedItemDTO{
		Action:      actionToDTO(ctx, v.Action),
		TeamName:    v.TeamName,
		PlayerLabel: v.PlayerLabel,
		TypeLabel:   v.TypeLabel,
		ClockLabel:  v.ClockLabel,
	}
}
