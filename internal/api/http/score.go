package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schulkompass/surveykit/internal/audit"
	"github.com/schulkompass/surveykit/internal/reference"
	"github.com/schulkompass/surveykit/internal/response"
	"github.com/schulkompass/surveykit/internal/scale"
	"github.com/schulkompass/surveykit/internal/score"
)

type scoreRequest struct {
	RespondentID string         `json:"respondent_id"`
	Answers      map[string]int `json:"answers"`
	// Persist stores the response set and its result for later export.
	Persist bool `json:"persist,omitempty"`
}

type scoreResponse struct {
	Result         score.Result              `json:"result"`
	Classification *reference.Classification `json:"classification,omitempty"`
	Unranked       bool                      `json:"unranked,omitempty"`
	SetID          string                    `json:"set_id,omitempty"`
}

// ScoreHandler scores one submission against a scale and classifies it
// against the reference cohort. A scale without reference data still scores;
// the response is then marked unranked.
func ScoreHandler(reg *scale.Registry, scorer *score.Scorer, cmp *reference.Comparator,
	store response.Store, events *audit.EventRepo, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := reg.Lookup(chi.URLParam(r, "code"))
		if err != nil {
			writeError(w, log, err)
			return
		}

		var req scoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid body"})
			return
		}
		if req.RespondentID == "" {
			req.RespondentID = "anonymous"
		}

		set := response.NewSet(req.RespondentID, sc.Code, req.Answers)
		res, err := scorer.Score(sc, set)
		if err != nil {
			writeError(w, log, err)
			return
		}

		out := scoreResponse{Result: res}
		if !res.Insufficient {
			cl, err := cmp.Classify(sc.Code, res.Score)
			switch {
			case err == nil:
				out.Classification = &cl
			case errors.Is(err, reference.ErrNoReferenceData):
				out.Unranked = true
			default:
				writeError(w, log, err)
				return
			}
		}

		if req.Persist {
			if err := store.PutSet(r.Context(), set); err != nil {
				writeError(w, log, err)
				return
			}
			sr := response.StoredResult{
				ID:           uuid.NewString(),
				SetID:        set.ID,
				ScaleCode:    res.ScaleCode,
				RespondentID: res.RespondentID,
				Score:        res.Score,
				Insufficient: res.Insufficient,
				Used:         res.Used,
				Total:        res.Total,
				CreatedAt:    time.Now().UTC(),
			}
			if out.Classification != nil {
				sr.Tier = string(out.Classification.Tier)
				sr.RefMean = out.Classification.RefMean
				sr.RefSD = out.Classification.RefSD
			}
			if err := store.PutResult(r.Context(), sr); err != nil {
				writeError(w, log, err)
				return
			}
			out.SetID = set.ID
			if events != nil {
				if err := events.Append(r.Context(), audit.EventScoreComputed, set.ID, sr); err != nil {
					log.Warn("event log append failed", zap.Error(err))
				}
			}
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// ResultsListHandler serves stored score results, optionally filtered by
// scale.
func ResultsListHandler(store response.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := store.ListResults(r.Context(), r.URL.Query().Get("scale"))
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": results})
	}
}
