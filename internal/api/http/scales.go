package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/schulkompass/surveykit/internal/reference"
	"github.com/schulkompass/surveykit/internal/scale"
	"github.com/schulkompass/surveykit/internal/survey"
)

// ScalesListHandler serves the scale catalog. Supports ?q= and ?full=1.
func ScalesListHandler(reg *scale.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := scale.ListFilter{
			Query:    r.URL.Query().Get("q"),
			FullOnly: r.URL.Query().Get("full") == "1",
		}
		writeJSON(w, http.StatusOK, map[string]any{"scales": reg.List(f)})
	}
}

// ScaleGetHandler serves one full scale definition plus derived fields.
func ScaleGetHandler(reg *scale.Registry, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := reg.Lookup(chi.URLParam(r, "code"))
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"scale":            sc,
			"duration_minutes": survey.EstimateDuration(len(sc.Items)),
		})
	}
}

// ReferenceGetHandler serves the population statistics for one scale.
func ReferenceGetHandler(reg *scale.Registry, table *reference.Table, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		if _, err := reg.Lookup(code); err != nil {
			writeError(w, log, err)
			return
		}
		st, ok := table.Get(code)
		if !ok {
			writeError(w, log, reference.ErrNoReferenceData)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"scale_code": code, "reference": st})
	}
}
