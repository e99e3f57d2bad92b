package response

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// SQLStore persists response sets and results in the service database.
// Works against sqlite and postgres (schema in internal/db).
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) PutSet(ctx context.Context, set Set) error {
	if err := set.Validate(); err != nil {
		return err
	}
	rj, err := json.Marshal(set.Responses)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO response_sets (id, scale_code, respondent_id, submitted_at, responses_json)
		 VALUES ($1,$2,$3,$4,$5)`,
		set.ID, set.ScaleCode, set.RespondentID, set.SubmittedAt.Unix(), string(rj))
	return err
}

func (s *SQLStore) GetSet(ctx context.Context, id string) (Set, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, scale_code, respondent_id, submitted_at, responses_json
		 FROM response_sets WHERE id=$1`, id)
	return scanSet(row)
}

func (s *SQLStore) ListSets(ctx context.Context, opts ListOpts) ([]Set, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	var (
		rows *sql.Rows
		err  error
	)
	if opts.ScaleCode != "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, scale_code, respondent_id, submitted_at, responses_json
			 FROM response_sets WHERE scale_code=$1
			 ORDER BY submitted_at ASC LIMIT $2 OFFSET $3`,
			opts.ScaleCode, limit, offset)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, scale_code, respondent_id, submitted_at, responses_json
			 FROM response_sets
			 ORDER BY submitted_at ASC LIMIT $1 OFFSET $2`,
			limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Set
	for rows.Next() {
		set, err := scanSet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, set)
	}
	return out, rows.Err()
}

func (s *SQLStore) PutResult(ctx context.Context, r StoredResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO score_results
		 (id, set_id, scale_code, respondent_id, score, insufficient, used, total, tier, ref_mean, ref_sd, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		r.ID, r.SetID, r.ScaleCode, r.RespondentID, r.Score, r.Insufficient,
		r.Used, r.Total, r.Tier, r.RefMean, r.RefSD, r.CreatedAt.Unix())
	return err
}

func (s *SQLStore) ListResults(ctx context.Context, scaleCode string) ([]StoredResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, set_id, scale_code, respondent_id, score, insufficient, used, total, tier, ref_mean, ref_sd, created_at
		 FROM score_results WHERE ($1='' OR scale_code=$1) ORDER BY created_at ASC`, scaleCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredResult
	for rows.Next() {
		var r StoredResult
		var created int64
		if err := rows.Scan(&r.ID, &r.SetID, &r.ScaleCode, &r.RespondentID, &r.Score,
			&r.Insufficient, &r.Used, &r.Total, &r.Tier, &r.RefMean, &r.RefSD, &created); err != nil {
			return nil, err
		}
		r.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSet(row rowScanner) (Set, error) {
	var set Set
	var submitted int64
	var rj string
	if err := row.Scan(&set.ID, &set.ScaleCode, &set.RespondentID, &submitted, &rj); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Set{}, ErrSetNotFound
		}
		return Set{}, err
	}
	set.SubmittedAt = time.Unix(submitted, 0).UTC()
	if err := json.Unmarshal([]byte(rj), &set.Responses); err != nil {
		return Set{}, err
	}
	return set, nil
}
