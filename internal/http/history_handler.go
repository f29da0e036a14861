package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"medipredict/internal/domain"
	"medipredict/internal/history"
	"medipredict/internal/repository"
	"medipredict/internal/store"
)

// HistoryHandler serves the prediction history views: the decorated
// record listing, the summary stats, and the spreadsheet export.
type HistoryHandler struct {
	sessions    *store.SessionStore
	predictions repository.PredictionsRepository
	logger      *zap.Logger
	now         func() time.Time // injectable for tests
}

func NewHistoryHandler(sessions *store.SessionStore, predictions repository.PredictionsRepository, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		sessions:    sessions,
		predictions: predictions,
		logger:      logger,
		now:         time.Now,
	}
}

// List returns the user's records most-recent-first, each decorated with
// its status badge and input type.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	records, ok := h.loadRecords(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, history.Decorate(records))
}

// Summary returns the stats row: total, this-month, and per-category
// bucket counts.
func (h *HistoryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	records, ok := h.loadRecords(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, history.Summarize(records, h.now()))
}

// Export streams the history as an .xlsx download.
func (h *HistoryHandler) Export(w http.ResponseWriter, r *http.Request) {
	records, ok := h.loadRecords(w, r)
	if !ok {
		return
	}

	data, err := history.GenerateExport(history.Decorate(records))
	if err != nil {
		h.logger.Error("failed to generate history export", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "failed to generate export")
		return
	}

	filename := fmt.Sprintf("prediction-history-%s.xlsx", h.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// loadRecords resolves the caller's session and fetches their records.
func (h *HistoryHandler) loadRecords(w http.ResponseWriter, r *http.Request) ([]domain.Prediction, bool) {
	token := bearerToken(r)
	if token == "" {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return nil, false
	}
	sess, err := h.sessions.Get(r.Context(), token)
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid or expired session")
		return nil, false
	}

	records, err := h.predictions.ListByUser(r.Context(), sess.UserID)
	if err != nil {
		h.logger.Error("failed to list predictions", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "failed to load prediction history")
		return nil, false
	}
	return records, true
}
