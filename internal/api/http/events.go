package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/schulkompass/surveykit/internal/audit"
)

// EventsHandler serves the most recent audit events. Admin only.
func EventsHandler(events *audit.EventRepo, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := events.Recent(r.Context(), parseIntDefault(r.URL.Query().Get("limit"), 50))
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"events": out})
	}
}
