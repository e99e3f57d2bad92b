package scale

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ResponseScale describes the Likert range shared by all items of a scale.
// Labels are keyed by the category value ("1".."4").
type ResponseScale struct {
	Min    int               `json:"min" validate:"min=0"`
	Max    int               `json:"max" validate:"gtfield=Min"`
	Labels map[string]string `json:"labels"`
}

// Categories is the number of discrete response options.
func (r ResponseScale) Categories() int { return r.Max - r.Min + 1 }

// Contains reports whether v is a valid raw response on this scale.
func (r ResponseScale) Contains(v int) bool { return v >= r.Min && v <= r.Max }

// Item is one survey question. Reverse mirrors the scale's ReverseItems set
// and must agree with it; validation rejects disagreement.
type Item struct {
	ID      string `json:"id" validate:"required"`
	TextDE  string `json:"text_de" validate:"required"`
	TextEN  string `json:"text_en,omitempty"`
	Reverse bool   `json:"reverse,omitempty"`
}

// Scale is a named psychometric construct with a fixed item set.
// Defined in static reference data, never mutated at runtime.
type Scale struct {
	Code         string        `json:"-" validate:"required"`
	TitleDE      string        `json:"title_de" validate:"required"`
	TitleEN      string        `json:"title_en,omitempty"`
	Description  string        `json:"description_de,omitempty"`
	Fragestamm   string        `json:"fragestamm,omitempty"` // shared lead-in text shown above the items
	Response     ResponseScale `json:"response"`
	Items        []Item        `json:"items" validate:"dive"`
	ReverseItems []string      `json:"reverse_items,omitempty"`

	// IndexOnly marks scales known by a precomputed WLE index without item
	// definitions. They list and classify but cannot be rendered or scored.
	IndexOnly bool `json:"index_only,omitempty"`
}

// Item returns the item with the given ID.
func (s Scale) Item(id string) (Item, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// ReverseSet returns the reverse-coded item IDs as a set.
func (s Scale) ReverseSet() map[string]bool {
	out := make(map[string]bool, len(s.ReverseItems))
	for _, id := range s.ReverseItems {
		out[id] = true
	}
	return out
}

var validate = validator.New()

// Validate checks structural invariants beyond what tags express: duplicate
// item IDs, reverse flags disagreeing with the scale's set, index-only
// scales carrying items.
func (s Scale) Validate() error {
	if s.IndexOnly {
		if len(s.Items) > 0 {
			return fmt.Errorf("scale %s: index-only but has %d items", s.Code, len(s.Items))
		}
		if s.Code == "" {
			return fmt.Errorf("scale with empty code")
		}
		return nil
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("scale %s: %w", s.Code, err)
	}
	rev := s.ReverseSet()
	seen := make(map[string]bool, len(s.Items))
	for _, it := range s.Items {
		if seen[it.ID] {
			return fmt.Errorf("scale %s: duplicate item %s", s.Code, it.ID)
		}
		seen[it.ID] = true
		if it.Reverse != rev[it.ID] {
			return fmt.Errorf("scale %s: item %s reverse flag disagrees with reverse_items", s.Code, it.ID)
		}
	}
	for _, id := range s.ReverseItems {
		if !seen[id] {
			return fmt.Errorf("scale %s: reverse_items references unknown item %s", s.Code, id)
		}
	}
	return nil
}
