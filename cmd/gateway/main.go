package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	api "github.com/schulkompass/surveykit/internal/api/http"
	"github.com/schulkompass/surveykit/internal/audit"
	auth "github.com/schulkompass/surveykit/internal/auth/middleware"
	"github.com/schulkompass/surveykit/internal/config"
	"github.com/schulkompass/surveykit/internal/db"
	"github.com/schulkompass/surveykit/internal/rbac"
	"github.com/schulkompass/surveykit/internal/reference"
	"github.com/schulkompass/surveykit/internal/response"
	"github.com/schulkompass/surveykit/internal/scale"
	"github.com/schulkompass/surveykit/internal/score"
	"github.com/schulkompass/surveykit/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}
	store := response.NewSQLStore(dbh)
	events := audit.NewEventRepo(dbh)

	// --- Domain data ---
	reg, err := loadRegistry(cfg)
	if err != nil {
		log.Fatal("load scales", zap.Error(err))
	}
	table, err := loadReference(ctx, cfg, dbh)
	if err != nil {
		log.Fatal("load reference", zap.Error(err))
	}
	bands := reference.Bands{Width: cfg.BandWidth}
	cmp := reference.NewComparator(table, bands)
	scorer := score.New(score.WithMinCompletion(cfg.MinCompletion))

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatal("blob store", zap.Error(err))
	}

	authSvc := auth.NewAuthService(cfg.AuthSecret, 0)
	checker := rbac.NewChecker()

	// --- Router ---
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Logger, chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Share-Token"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, cfg))

	// Public: students reach the hosted form via the QR code, and the form
	// posts back here with the shared token.
	r.Get("/forms/{code}", api.FormHandler(reg, cfg.PublicURL, log))
	r.Post("/responses", api.CollectHandler(reg, store, events, cfg.ShareToken, log))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(authSvc.JWTMiddleware)

		pr.With(checker.Require(rbac.PermScalesView)).
			Get("/scales", api.ScalesListHandler(reg))
		pr.With(checker.Require(rbac.PermScalesView)).
			Get("/scales/{code}", api.ScaleGetHandler(reg, log))
		pr.With(checker.Require(rbac.PermScalesView)).
			Get("/scales/{code}/reference", api.ReferenceGetHandler(reg, table, log))

		pr.With(checker.Require(rbac.PermScoreCompute)).
			Post("/scales/{code}/score", api.ScoreHandler(reg, scorer, cmp, store, events, log))

		pr.With(checker.Require(rbac.PermPackageCreate)).
			Post("/scales/{code}/package", api.PackageCreateHandler(reg, table, bands, bs, events, cfg.PublicURL, log))
		pr.With(checker.Require(rbac.PermPackageDownload)).
			Get("/packages/{key}", api.PackageDownloadHandler(bs, log))

		pr.With(checker.Require(rbac.PermResultsView)).
			Get("/results", api.ResultsListHandler(store, log))
		pr.With(checker.Require(rbac.PermResultsView)).
			Get("/responses", api.ResponsesListHandler(store, log))

		pr.With(checker.Require(rbac.PermEventsView)).
			Get("/events", api.EventsHandler(events, log))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})

	log.Info("listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("db", cfg.DBDriver),
		zap.Int("scales", reg.Len()))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func loadRegistry(cfg config.Config) (*scale.Registry, error) {
	if cfg.ScalesPath != "" {
		return scale.LoadFile(cfg.ScalesPath)
	}
	return scale.Default()
}

// loadReference prefers an explicit file, then sample values stored in the
// DB, then the bundled PISA statistics.
func loadReference(ctx context.Context, cfg config.Config, dbh *sql.DB) (*reference.Table, error) {
	if cfg.ReferencePath != "" {
		return reference.LoadTableFile(cfg.ReferencePath)
	}
	sample, err := reference.SampleFromDB(ctx, dbh)
	if err == nil && len(sample) > 0 {
		return reference.Compute(sample), nil
	}
	return reference.DefaultTable()
}
