package scale

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrScaleNotFound is returned by Lookup for unknown scale codes.
var ErrScaleNotFound = errors.New("scale not found")

//go:embed refdata/scales.json
var defaultScales []byte

// Registry is the load-once, read-only scale catalog. Safe for concurrent
// readers; never mutated after Load.
type Registry struct {
	scales map[string]Scale
	order  []string
}

// Load parses and validates a scale definition document. The format is fixed
// input: a JSON object keyed by scale code. Any malformed or duplicate entry
// fails the whole load.
func Load(r io.Reader) (*Registry, error) {
	var raw map[string]Scale
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse scale definitions: %w", err)
	}
	reg := &Registry{scales: make(map[string]Scale, len(raw))}
	for code, s := range raw {
		s.Code = code
		if err := s.Validate(); err != nil {
			return nil, err
		}
		reg.scales[code] = s
		reg.order = append(reg.order, code)
	}
	sort.Strings(reg.order)
	return reg, nil
}

// LoadFile loads scale definitions from a JSON file.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Default loads the bundled PISA 2022 scale definitions.
func Default() (*Registry, error) {
	return Load(bytes.NewReader(defaultScales))
}

// Lookup returns the scale for code.
func (r *Registry) Lookup(code string) (Scale, error) {
	s, ok := r.scales[code]
	if !ok {
		return Scale{}, fmt.Errorf("%s: %w", code, ErrScaleNotFound)
	}
	return s, nil
}

// Summary is a list row for catalog views.
type Summary struct {
	Code      string `json:"code"`
	TitleDE   string `json:"title_de"`
	TitleEN   string `json:"title_en,omitempty"`
	NumItems  int    `json:"num_items"`
	IndexOnly bool   `json:"index_only,omitempty"`
}

// ListFilter restricts List output. Query matches code and titles,
// case-insensitive. FullOnly drops index-only scales without items.
type ListFilter struct {
	Query    string
	FullOnly bool
}

// List returns scale summaries ordered by code.
func (r *Registry) List(f ListFilter) []Summary {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Summary, 0, len(r.order))
	for _, code := range r.order {
		s := r.scales[code]
		if f.FullOnly && (s.IndexOnly || len(s.Items) == 0) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(s.Code), q) &&
			!strings.Contains(strings.ToLower(s.TitleDE), q) &&
			!strings.Contains(strings.ToLower(s.TitleEN), q) {
			continue
		}
		out = append(out, Summary{
			Code:      s.Code,
			TitleDE:   s.TitleDE,
			TitleEN:   s.TitleEN,
			NumItems:  len(s.Items),
			IndexOnly: s.IndexOnly,
		})
	}
	return out
}

// Len is the number of registered scales.
func (r *Registry) Len() int { return len(r.scales) }
