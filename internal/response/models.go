// Package response holds one respondent's raw answers for one scale
// administration and the stores that keep them.
package response

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Raw is one raw answer to one item. Unanswered items simply have no Raw in
// the set.
type Raw struct {
	ItemID string `json:"item_id"`
	Value  int    `json:"value"`
}

// Set is the complete submission of one respondent for one scale. Owned by
// the scoring request that created it; never mutated after construction.
type Set struct {
	ID           string    `json:"id"`
	RespondentID string    `json:"respondent_id"`
	ScaleCode    string    `json:"scale_code"`
	SubmittedAt  time.Time `json:"submitted_at"`
	Responses    []Raw     `json:"responses"`
}

// NewSet builds a Set from an answers map (item ID → raw value), ordered by
// item ID for deterministic storage. The map form makes duplicate item IDs
// unrepresentable; sets built by hand go through Validate instead.
func NewSet(respondentID, scaleCode string, answers map[string]int) Set {
	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	rs := make([]Raw, 0, len(ids))
	for _, id := range ids {
		rs = append(rs, Raw{ItemID: id, Value: answers[id]})
	}
	return Set{
		ID:           uuid.NewString(),
		RespondentID: respondentID,
		ScaleCode:    scaleCode,
		SubmittedAt:  time.Now().UTC(),
		Responses:    rs,
	}
}

// Validate rejects sets with two answers for the same item.
func (s Set) Validate() error {
	seen := make(map[string]bool, len(s.Responses))
	for _, r := range s.Responses {
		if seen[r.ItemID] {
			return fmt.Errorf("duplicate response for item %s", r.ItemID)
		}
		seen[r.ItemID] = true
	}
	return nil
}

// Value returns the raw answer for an item, if answered.
func (s Set) Value(itemID string) (int, bool) {
	for _, r := range s.Responses {
		if r.ItemID == itemID {
			return r.Value, true
		}
	}
	return 0, false
}

// StoredResult is a score result persisted on explicit export, flattened
// with its reference classification ("" tier when unranked).
type StoredResult struct {
	ID           string    `json:"id"`
	SetID        string    `json:"set_id"`
	ScaleCode    string    `json:"scale_code"`
	RespondentID string    `json:"respondent_id"`
	Score        float64   `json:"score"`
	Insufficient bool      `json:"insufficient,omitempty"`
	Used         int       `json:"used"`
	Total        int       `json:"total"`
	Tier         string    `json:"tier,omitempty"`
	RefMean      float64   `json:"ref_mean,omitempty"`
	RefSD        float64   `json:"ref_sd,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
