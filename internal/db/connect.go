package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:surveykit.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/surveykit?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS response_sets (
  id TEXT PRIMARY KEY,
  scale_code TEXT NOT NULL,
  respondent_id TEXT NOT NULL,
  submitted_at INTEGER NOT NULL,
  responses_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_response_sets_scale ON response_sets(scale_code, submitted_at);

CREATE TABLE IF NOT EXISTS score_results (
  id TEXT PRIMARY KEY,
  set_id TEXT NOT NULL REFERENCES response_sets(id) ON DELETE CASCADE,
  scale_code TEXT NOT NULL,
  respondent_id TEXT NOT NULL,
  score REAL NOT NULL DEFAULT 0,
  insufficient INTEGER NOT NULL DEFAULT 0,
  used INTEGER NOT NULL,
  total INTEGER NOT NULL,
  tier TEXT NOT NULL DEFAULT '',
  ref_mean REAL NOT NULL DEFAULT 0,
  ref_sd REAL NOT NULL DEFAULT 0,
  created_at INTEGER NOT NULL
);

-- long-format population sample used to compute reference statistics
CREATE TABLE IF NOT EXISTS sample_values (
  scale_code TEXT NOT NULL,
  student_id TEXT NOT NULL,
  value REAL NOT NULL,
  PRIMARY KEY (scale_code, student_id)
);

CREATE TABLE IF NOT EXISTS event_log (
  "offset" INTEGER PRIMARY KEY AUTOINCREMENT, -- BIGSERIAL in Postgres
  typ TEXT NOT NULL,                        -- e.g., package.built
  key TEXT NOT NULL,                        -- natural key: scale code, set ID, ...
  data TEXT NOT NULL,                       -- JSON payload
  created_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS response_sets (
  id TEXT PRIMARY KEY,
  scale_code TEXT NOT NULL,
  respondent_id TEXT NOT NULL,
  submitted_at BIGINT NOT NULL,
  responses_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_response_sets_scale ON response_sets(scale_code, submitted_at);

CREATE TABLE IF NOT EXISTS score_results (
  id TEXT PRIMARY KEY,
  set_id TEXT NOT NULL REFERENCES response_sets(id) ON DELETE CASCADE,
  scale_code TEXT NOT NULL,
  respondent_id TEXT NOT NULL,
  score DOUBLE PRECISION NOT NULL DEFAULT 0,
  insufficient BOOLEAN NOT NULL DEFAULT FALSE,
  used INTEGER NOT NULL,
  total INTEGER NOT NULL,
  tier TEXT NOT NULL DEFAULT '',
  ref_mean DOUBLE PRECISION NOT NULL DEFAULT 0,
  ref_sd DOUBLE PRECISION NOT NULL DEFAULT 0,
  created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS sample_values (
  scale_code TEXT NOT NULL,
  student_id TEXT NOT NULL,
  value DOUBLE PRECISION NOT NULL,
  PRIMARY KEY (scale_code, student_id)
);

CREATE TABLE IF NOT EXISTS event_log (
  "offset" BIGSERIAL PRIMARY KEY,
  typ TEXT NOT NULL,
  key TEXT NOT NULL,
  data TEXT NOT NULL,
  created_at BIGINT NOT NULL
);
`
