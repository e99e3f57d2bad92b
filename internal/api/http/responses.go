package http

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/schulkompass/surveykit/internal/audit"
	"github.com/schulkompass/surveykit/internal/response"
	"github.com/schulkompass/surveykit/internal/scale"
)

// CollectHandler is the submission endpoint the generated form posts to. The
// payload is flat JSON from FormData: student_name, scale_name, timestamp and
// one string-valued field per item. Guarded by a shared token instead of a
// login so students do not need accounts.
func CollectHandler(reg *scale.Registry, store response.Store, events *audit.EventRepo,
	shareToken string, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if shareToken != "" {
			got := r.URL.Query().Get("token")
			if got == "" {
				got = r.Header.Get("X-Share-Token")
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(shareToken)) != 1 {
				writeJSON(w, http.StatusUnauthorized, apiError{Error: "invalid share token"})
				return
			}
		}

		var flat map[string]string
		if err := json.NewDecoder(r.Body).Decode(&flat); err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid body"})
			return
		}

		scaleCode := flat["scale_name"]
		sc, err := reg.Lookup(scaleCode)
		if err != nil {
			writeError(w, log, err)
			return
		}

		answers := make(map[string]int, len(sc.Items))
		for _, it := range sc.Items {
			raw, ok := flat[it.ID]
			if !ok {
				continue
			}
			v, err := strconv.Atoi(raw)
			if err != nil {
				writeJSON(w, http.StatusBadRequest,
					apiError{Error: "non-numeric answer for item " + it.ID})
				return
			}
			answers[it.ID] = v
		}

		name := flat["student_name"]
		if name == "" {
			name = "anonymous"
		}
		set := response.NewSet(name, sc.Code, answers)
		if err := store.PutSet(r.Context(), set); err != nil {
			writeError(w, log, err)
			return
		}
		if events != nil {
			if err := events.Append(r.Context(), audit.EventResponsesSubmitted, set.ID, map[string]any{
				"scale_code": sc.Code,
				"answered":   len(answers),
			}); err != nil {
				log.Warn("event log append failed", zap.Error(err))
			}
		}
		writeJSON(w, http.StatusCreated, map[string]any{"set_id": set.ID})
	}
}

// ResponsesListHandler serves stored response sets for review. Supports
// ?scale=, ?limit= and ?offset=.
func ResponsesListHandler(store response.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		sets, err := store.ListSets(r.Context(), response.ListOpts{
			ScaleCode: q.Get("scale"),
			Limit:     parseIntDefault(q.Get("limit"), 100),
			Offset:    parseIntDefault(q.Get("offset"), 0),
		})
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"sets": sets})
	}
}
