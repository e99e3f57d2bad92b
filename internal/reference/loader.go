package reference

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/schulkompass/surveykit/internal/scale"
)

// SampleFromCSV reads a wide-format population sample: header row of scale
// codes (leading respondent-ID column optional, detected by name), one row
// per respondent. Empty cells and PISA missing codes are skipped.
func SampleFromCSV(r io.Reader) (map[string][]float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read sample header: %w", err)
	}
	start := 0
	if len(header) > 0 {
		switch strings.ToLower(strings.TrimSpace(header[0])) {
		case "id", "student_id", "cntstuid":
			start = 1
		}
	}
	sample := make(map[string][]float64, len(header))
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sample line %d: %w", line+1, err)
		}
		line++
		for i := start; i < len(rec) && i < len(header); i++ {
			cell := strings.TrimSpace(rec[i])
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				// empty and textual cells are missing codes
				continue
			}
			if scale.IsMissingValue(v) {
				continue
			}
			code := strings.TrimSpace(header[i])
			sample[code] = append(sample[code], v)
		}
	}
	return sample, nil
}

// SampleFromDB reads the long-format sample_values table.
func SampleFromDB(ctx context.Context, db *sql.DB) (map[string][]float64, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT scale_code, value FROM sample_values ORDER BY scale_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sample := map[string][]float64{}
	for rows.Next() {
		var code string
		var v float64
		if err := rows.Scan(&code, &v); err != nil {
			return nil, err
		}
		sample[code] = append(sample[code], v)
	}
	return sample, rows.Err()
}
