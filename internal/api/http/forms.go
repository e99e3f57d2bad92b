package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/schulkompass/surveykit/internal/scale"
	"github.com/schulkompass/surveykit/internal/survey"
)

// FormHandler serves the hosted copy of a scale's survey form. This is the
// target of the QR code when a package is built without an explicit form URL.
func FormHandler(reg *scale.Registry, publicURL string, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := reg.Lookup(chi.URLParam(r, "code"))
		if err != nil {
			writeError(w, log, err)
			return
		}
		if len(sc.Items) == 0 {
			writeError(w, log, fmt.Errorf("scale %s: %w", sc.Code, survey.ErrEmptyScale))
			return
		}
		var opts survey.Options
		if publicURL != "" {
			opts.CollectorURL = publicURL + "/responses"
		}
		html, err := survey.RenderForm(sc, opts)
		if err != nil {
			writeError(w, log, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(html)
	}
}
