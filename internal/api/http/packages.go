package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schulkompass/surveykit/internal/audit"
	"github.com/schulkompass/surveykit/internal/packaging"
	"github.com/schulkompass/surveykit/internal/reference"
	"github.com/schulkompass/surveykit/internal/scale"
	"github.com/schulkompass/surveykit/internal/storage"
	"github.com/schulkompass/surveykit/internal/survey"
)

type packageRequest struct {
	// FormURL overrides the derived hosting URL encoded into the QR code.
	FormURL string `json:"form_url,omitempty"`
	// CollectorURL overrides the submission endpoint baked into the form.
	CollectorURL string `json:"collector_url,omitempty"`
}

// PackageCreateHandler builds the full instrument package for a scale,
// stores the archive and returns its download key.
func PackageCreateHandler(reg *scale.Registry, table *reference.Table, bands reference.Bands,
	blobs storage.BlobStore, events *audit.EventRepo, publicURL string, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := reg.Lookup(chi.URLParam(r, "code"))
		if err != nil {
			writeError(w, log, err)
			return
		}

		var req packageRequest
		if r.Body != nil {
			// body is optional
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		opts := packageOptions(req, publicURL, sc.Code)
		opts.Bands = bands
		if st, ok := table.Get(sc.Code); ok {
			opts.Reference = st
		}

		bundle, err := survey.BuildInstrument(sc, opts)
		if err != nil {
			writeError(w, log, err)
			return
		}
		data, err := packaging.Build(bundle, nil)
		if err != nil {
			writeError(w, log, err)
			return
		}

		key := "packages/" + uuid.NewString() + ".zip"
		if _, err := blobs.Put(key, bytes.NewReader(data)); err != nil {
			writeError(w, log, err)
			return
		}

		entries, err := packaging.Inspect(data)
		if err != nil {
			writeError(w, log, err)
			return
		}
		if events != nil {
			if err := events.Append(r.Context(), audit.EventPackageBuilt, key, map[string]any{
				"scale_code": sc.Code,
				"size":       len(data),
			}); err != nil {
				log.Warn("event log append failed", zap.Error(err))
			}
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"key":        key,
			"scale_code": sc.Code,
			"size":       len(data),
			"entries":    entries,
		})
	}
}

// packageOptions resolves the artifact URLs, deriving defaults from the
// gateway's public URL when the request does not override them. The derived
// form URL points at the hosted form route, so the QR code in a default
// package is scannable.
func packageOptions(req packageRequest, publicURL, scaleCode string) survey.Options {
	opts := survey.Options{FormURL: req.FormURL, CollectorURL: req.CollectorURL}
	if publicURL != "" {
		if opts.FormURL == "" {
			opts.FormURL = publicURL + "/forms/" + scaleCode
		}
		if opts.CollectorURL == "" {
			opts.CollectorURL = publicURL + "/responses"
		}
	}
	return opts
}

// PackageDownloadHandler streams a stored package archive.
func PackageDownloadHandler(blobs storage.BlobStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := "packages/" + chi.URLParam(r, "key")
		rc, err := blobs.Get(key)
		if err != nil {
			writeJSON(w, http.StatusNotFound, apiError{Error: "package not found"})
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="befragungspaket.zip"`)
		if _, err := io.Copy(w, rc); err != nil {
			log.Warn("package download aborted", zap.Error(err))
		}
	}
}
