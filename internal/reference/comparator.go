package reference

import (
	"errors"
	"fmt"
)

// ErrNoReferenceData means classification was requested for a scale without
// stored population statistics. Callers treat the score as "unranked",
// not as a fatal condition.
var ErrNoReferenceData = errors.New("no reference data for scale")

// Tier is the coarse classification of a score against the reference cohort.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Bands configures the cut-points: low below mean−Width·SD, high above
// mean+Width·SD, medium within. One constant for all scales.
type Bands struct {
	Width float64
}

// DefaultBands is the documented policy: half a standard deviation.
var DefaultBands = Bands{Width: 0.5}

// Classification carries the tier together with the reference statistics it
// was computed against.
type Classification struct {
	Tier    Tier    `json:"tier"`
	RefMean float64 `json:"ref_mean"`
	RefSD   float64 `json:"ref_sd"`
}

// Comparator classifies scores against an injected reference table.
type Comparator struct {
	table *Table
	bands Bands
}

func NewComparator(table *Table, bands Bands) *Comparator {
	if bands.Width <= 0 {
		bands = DefaultBands
	}
	return &Comparator{table: table, bands: bands}
}

// Classify places a score into a tier for the given scale.
func (c *Comparator) Classify(scaleCode string, score float64) (Classification, error) {
	st, ok := c.table.Get(scaleCode)
	if !ok {
		return Classification{}, fmt.Errorf("%s: %w", scaleCode, ErrNoReferenceData)
	}
	cl := Classification{Tier: TierMedium, RefMean: st.Mean, RefSD: st.SD}
	switch {
	case score < st.Mean-c.bands.Width*st.SD:
		cl.Tier = TierLow
	case score > st.Mean+c.bands.Width*st.SD:
		cl.Tier = TierHigh
	}
	return cl, nil
}

// LowCut returns the at-risk cut-point for a scale, used by the spreadsheet
// template so its risk flag matches this comparator.
func (c *Comparator) LowCut(scaleCode string) (float64, error) {
	st, ok := c.table.Get(scaleCode)
	if !ok {
		return 0, fmt.Errorf("%s: %w", scaleCode, ErrNoReferenceData)
	}
	return st.Mean - c.bands.Width*st.SD, nil
}
