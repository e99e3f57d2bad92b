package response

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrSetNotFound is returned for unknown response set IDs.
var ErrSetNotFound = errors.New("response set not found")

// ListOpts filters ListSets.
type ListOpts struct {
	ScaleCode string
	Limit     int
	Offset    int
}

// Store persists response sets and exported score results.
type Store interface {
	PutSet(ctx context.Context, s Set) error
	GetSet(ctx context.Context, id string) (Set, error)
	ListSets(ctx context.Context, opts ListOpts) ([]Set, error)
	PutResult(ctx context.Context, r StoredResult) error
	ListResults(ctx context.Context, scaleCode string) ([]StoredResult, error)
}

type memoryStore struct {
	mu      sync.RWMutex
	sets    map[string]Set
	results map[string]StoredResult
}

// NewInMemoryStore returns a Store for tests and single-session use.
func NewInMemoryStore() Store {
	return &memoryStore{
		sets:    map[string]Set{},
		results: map[string]StoredResult{},
	}
}

func (m *memoryStore) PutSet(_ context.Context, s Set) error {
	if err := s.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets[s.ID] = s
	return nil
}

func (m *memoryStore) GetSet(_ context.Context, id string) (Set, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sets[id]
	if !ok {
		return Set{}, ErrSetNotFound
	}
	return s, nil
}

func (m *memoryStore) ListSets(_ context.Context, opts ListOpts) ([]Set, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Set, 0, len(m.sets))
	for _, s := range m.sets {
		if opts.ScaleCode != "" && s.ScaleCode != opts.ScaleCode {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.Before(out[j].SubmittedAt) })
	return paginate(out, opts.Limit, opts.Offset), nil
}

func (m *memoryStore) PutResult(_ context.Context, r StoredResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[r.ID] = r
	return nil
}

func (m *memoryStore) ListResults(_ context.Context, scaleCode string) ([]StoredResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]StoredResult, 0, len(m.results))
	for _, r := range m.results {
		if scaleCode != "" && r.ScaleCode != scaleCode {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func paginate(sets []Set, limit, offset int) []Set {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(sets) {
		return nil
	}
	sets = sets[offset:]
	if limit > 0 && limit < len(sets) {
		sets = sets[:limit]
	}
	return sets
}
