// Package http holds the gateway's request handlers.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/schulkompass/surveykit/internal/packaging"
	"github.com/schulkompass/surveykit/internal/reference"
	"github.com/schulkompass/surveykit/internal/response"
	"github.com/schulkompass/surveykit/internal/scale"
	"github.com/schulkompass/surveykit/internal/score"
	"github.com/schulkompass/surveykit/internal/survey"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type apiError struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	var oor *score.OutOfRangeError
	var mism *score.ScaleMismatchError
	switch {
	case errors.Is(err, scale.ErrScaleNotFound),
		errors.Is(err, response.ErrSetNotFound):
		writeJSON(w, http.StatusNotFound, apiError{Error: err.Error()})
	case errors.As(err, &oor), errors.As(err, &mism),
		errors.Is(err, score.ErrUnknownItem),
		errors.Is(err, score.ErrEmptyScale),
		errors.Is(err, survey.ErrEmptyScale),
		errors.Is(err, packaging.ErrIncompleteBundle):
		writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: err.Error()})
	case errors.Is(err, reference.ErrNoReferenceData):
		writeJSON(w, http.StatusNotFound, apiError{Error: err.Error()})
	default:
		log.Error("internal error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal error"})
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
