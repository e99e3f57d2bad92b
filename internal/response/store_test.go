package response

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSetOrdersByItemID(t *testing.T) {
	set := NewSet("s1", "ANXMAT", map[string]int{
		"ST292Q03": 1, "ST292Q01": 2, "ST292Q02": 4,
	})
	require.NotEmpty(t, set.ID)
	assert.Equal(t, "s1", set.RespondentID)
	assert.Equal(t, []Raw{
		{ItemID: "ST292Q01", Value: 2},
		{ItemID: "ST292Q02", Value: 4},
		{ItemID: "ST292Q03", Value: 1},
	}, set.Responses)

	v, ok := set.Value("ST292Q02")
	require.True(t, ok)
	assert.Equal(t, 4, v)
	_, ok = set.Value("ST292Q09")
	assert.False(t, ok)
}

func TestValidateRejectsDuplicates(t *testing.T) {
	set := Set{
		ID: "x", ScaleCode: "ANXMAT",
		Responses: []Raw{{ItemID: "A", Value: 1}, {ItemID: "A", Value: 2}},
	}
	assert.Error(t, set.Validate())
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	a := NewSet("s1", "ANXMAT", map[string]int{"ST292Q01": 2})
	b := NewSet("s2", "MATHEFF", map[string]int{"ST290Q01": 3})
	require.NoError(t, store.PutSet(ctx, a))
	require.NoError(t, store.PutSet(ctx, b))

	got, err := store.GetSet(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Responses, got.Responses)

	_, err = store.GetSet(ctx, "missing")
	require.ErrorIs(t, err, ErrSetNotFound)

	sets, err := store.ListSets(ctx, ListOpts{ScaleCode: "ANXMAT"})
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, a.ID, sets[0].ID)
}

func TestMemoryStorePagination(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		set := NewSet("s", "ANXMAT", map[string]int{"ST292Q01": 1})
		set.SubmittedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, store.PutSet(ctx, set))
	}

	page, err := store.ListSets(ctx, ListOpts{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.True(t, page[0].SubmittedAt.Before(page[1].SubmittedAt))

	empty, err := store.ListSets(ctx, ListOpts{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)

	// negative offset behaves like zero
	all, err := store.ListSets(ctx, ListOpts{Offset: -1})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestMemoryStoreResults(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	r := StoredResult{
		ID: "r1", SetID: "s1", ScaleCode: "ANXMAT", RespondentID: "p1",
		Score: 3.0, Used: 6, Total: 6, Tier: "medium",
		RefMean: 2.6, RefSD: 0.8, CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.PutResult(ctx, r))

	got, err := store.ListResults(ctx, "ANXMAT")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, r.ID, got[0].ID)

	none, err := store.ListResults(ctx, "MATHEFF")
	require.NoError(t, err)
	assert.Empty(t, none)
}
