// Package reference holds population summary statistics (PISA Germany
// sample) and classifies scores against them.
package reference

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Stats is the per-scale population summary, fixed for the process lifetime.
type Stats struct {
	Mean float64 `json:"mean"`
	SD   float64 `json:"sd"`
	N    int     `json:"n"`
}

//go:embed refdata/reference.json
var defaultReference []byte

// Table is a read-only lookup of Stats by scale code. Built once, safe for
// concurrent readers, and passed into the Comparator explicitly so reference
// cohorts can be swapped without code changes.
type Table struct {
	stats map[string]Stats
}

func NewTable(m map[string]Stats) *Table {
	cp := make(map[string]Stats, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return &Table{stats: cp}
}

// LoadTable reads a JSON document keyed by scale code.
func LoadTable(r io.Reader) (*Table, error) {
	var m map[string]Stats
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("parse reference table: %w", err)
	}
	return NewTable(m), nil
}

// LoadTableFile reads a reference table from a JSON file.
func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadTable(f)
}

// DefaultTable loads the bundled PISA 2022 Germany reference statistics.
func DefaultTable() (*Table, error) {
	return LoadTable(bytes.NewReader(defaultReference))
}

// Get returns the stats for a scale code.
func (t *Table) Get(code string) (Stats, bool) {
	s, ok := t.stats[code]
	return s, ok
}

// Codes lists the covered scale codes, sorted.
func (t *Table) Codes() []string {
	out := make([]string, 0, len(t.stats))
	for c := range t.stats {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON emits the table in its file format.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.stats)
}

// Compute builds a table from raw sample values per scale using sample mean
// and sample standard deviation. Scales with fewer than two values are
// skipped (no meaningful SD).
func Compute(sample map[string][]float64) *Table {
	m := make(map[string]Stats, len(sample))
	for code, xs := range sample {
		if len(xs) < 2 {
			continue
		}
		m[code] = Stats{
			Mean: stat.Mean(xs, nil),
			SD:   stat.StdDev(xs, nil),
			N:    len(xs),
		}
	}
	return &Table{stats: m}
}
