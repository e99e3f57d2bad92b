// Package score computes scale scores from raw Likert responses.
package score

import (
	"errors"
	"fmt"

	"github.com/schulkompass/surveykit/internal/response"
	"github.com/schulkompass/surveykit/internal/scale"
)

// ErrUnknownItem marks a response referencing no item of the scored scale.
var ErrUnknownItem = errors.New("response references unknown item")

// ErrEmptyScale is returned when a scale without item definitions is scored.
var ErrEmptyScale = errors.New("scale has no items")

// OutOfRangeError rejects a raw value outside the scale's category bounds.
// Scoring never clamps.
type OutOfRangeError struct {
	ItemID   string
	Value    int
	Min, Max int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("item %s: value %d outside [%d,%d]", e.ItemID, e.Value, e.Min, e.Max)
}

// ScaleMismatchError rejects a response set tagged for a different scale.
type ScaleMismatchError struct {
	Want, Got string
}

func (e *ScaleMismatchError) Error() string {
	return fmt.Sprintf("response set is for scale %s, not %s", e.Got, e.Want)
}

// Result is the scorer output for one response set. When Insufficient is
// set, Score is meaningless and Used still reports the answered count.
type Result struct {
	ScaleCode    string  `json:"scale_code"`
	RespondentID string  `json:"respondent_id"`
	Score        float64 `json:"score"`
	Insufficient bool    `json:"insufficient,omitempty"`
	Used         int     `json:"used"`
	Total        int     `json:"total"`
}

// ReverseBase returns the constant k such that a reverse-coded raw value v
// transforms to k−v. The spreadsheet template builder uses the same constant
// so both implementations stay arithmetically identical.
func ReverseBase(rs scale.ResponseScale) int { return rs.Max + rs.Min }

// Option configures a Scorer.
type Option func(*Scorer)

// WithMinCompletion sets the fraction of items that must be answered for a
// numeric score. Default 0.5 ("at least half").
func WithMinCompletion(frac float64) Option {
	return func(s *Scorer) { s.minCompletion = frac }
}

// Scorer applies reverse-coding and the completion policy. Pure; safe for
// concurrent use.
type Scorer struct {
	minCompletion float64
}

func New(opts ...Option) *Scorer {
	s := &Scorer{minCompletion: 0.5}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Score computes the arithmetic mean of the answered, reverse-coded item
// values. Items absent from the set are excluded. Malformed input (value out
// of range, mismatched scale code, unknown item, duplicate responses) is
// rejected, never silently corrected.
func (s *Scorer) Score(sc scale.Scale, set response.Set) (Result, error) {
	if set.ScaleCode != sc.Code {
		return Result{}, &ScaleMismatchError{Want: sc.Code, Got: set.ScaleCode}
	}
	if err := set.Validate(); err != nil {
		return Result{}, err
	}
	if len(sc.Items) == 0 {
		return Result{}, fmt.Errorf("scale %s: %w", sc.Code, ErrEmptyScale)
	}

	known := make(map[string]bool, len(sc.Items))
	for _, it := range sc.Items {
		known[it.ID] = true
	}
	for _, r := range set.Responses {
		if !known[r.ItemID] {
			return Result{}, fmt.Errorf("scale %s, item %s: %w", sc.Code, r.ItemID, ErrUnknownItem)
		}
	}

	base := ReverseBase(sc.Response)
	rev := sc.ReverseSet()

	sum, used := 0.0, 0
	for _, it := range sc.Items {
		v, ok := set.Value(it.ID)
		if !ok {
			continue
		}
		if !sc.Response.Contains(v) {
			return Result{}, &OutOfRangeError{ItemID: it.ID, Value: v, Min: sc.Response.Min, Max: sc.Response.Max}
		}
		if rev[it.ID] {
			v = base - v
		}
		sum += float64(v)
		used++
	}

	res := Result{
		ScaleCode:    sc.Code,
		RespondentID: set.RespondentID,
		Used:         used,
		Total:        len(sc.Items),
	}
	if used == 0 || float64(used) < s.minCompletion*float64(len(sc.Items)) {
		res.Insufficient = true
		return res, nil
	}
	res.Score = sum / float64(used)
	return res, nil
}
