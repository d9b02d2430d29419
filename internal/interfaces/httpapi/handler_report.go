package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"

	"github.com/gaeliza/gaeliza-api/internal/usecase"
)

type batchReportRequest struct {
	MatchIDs []string `json:"matchIds" validate:"required,min=1,dive,required"`
}

type reportStateDTO struct {
	MatchID string `json:"matchId"`
	State   string `json:"state"`
}

type batchReportResultDTO struct {
	MatchID  string `json:"matchId"`
	Filename string `json:"filename,omitempty"`
	Error    string `json:"error,omitempty"`
}

// DownloadReport generates the match report and streams the PDF directly.
// Errors still use the JSON envelope; only a successful render switches to
// the attachment response.
func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DownloadReport")
	defer span.End()

	matchID := r.PathValue("matchID")
	file, err := h.reportService.Generate(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "generate report failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

func (h *Handler) GetReportState(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetReportState")
	defer span.End()

	matchID := r.PathValue("matchID")
	writeSuccess(ctx, w, http.StatusOK, reportStateDTO{
		MatchID: matchID,
		State:   string(h.reportService.State(matchID)),
	})
}

func (h *Handler) GenerateBatchReports(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateBatchReports")
	defer span.End()

	var req batchReportRequest
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

	results, err := h.reportService.GenerateBatch(ctx, req.MatchIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "batch report generation failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	rows := make([]batchReportResultDTO, 0, len(results))
	for _, row := range results {
		rows = append(rows, batchReportResultDTO{
			MatchID:  row.MatchID,
			Filename: row.Filename,
			Error:    row.Err,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, rows)
}
