package response

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schulkompass/surveykit/internal/db"
)

func openTestDB(t *testing.T) *SQLStore {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?cache=shared&mode=rwc"
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { dbh.Close() })
	return NewSQLStore(dbh)
}

func TestSQLStoreSetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestDB(t)

	set := NewSet("s1", "ANXMAT", map[string]int{"ST292Q01": 2, "ST292Q03": 4})
	require.NoError(t, store.PutSet(ctx, set))

	got, err := store.GetSet(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, set.ID, got.ID)
	assert.Equal(t, set.ScaleCode, got.ScaleCode)
	assert.Equal(t, set.RespondentID, got.RespondentID)
	assert.Equal(t, set.Responses, got.Responses)
	assert.Equal(t, set.SubmittedAt.Unix(), got.SubmittedAt.Unix())

	_, err = store.GetSet(ctx, "missing")
	require.ErrorIs(t, err, ErrSetNotFound)
}

func TestSQLStoreListSets(t *testing.T) {
	ctx := context.Background()
	store := openTestDB(t)

	for i := 0; i < 3; i++ {
		set := NewSet("s", "ANXMAT", map[string]int{"ST292Q01": 1})
		set.SubmittedAt = time.Unix(int64(1000+i), 0)
		require.NoError(t, store.PutSet(ctx, set))
	}
	other := NewSet("s", "MATHEFF", map[string]int{"ST290Q01": 2})
	require.NoError(t, store.PutSet(ctx, other))

	sets, err := store.ListSets(ctx, ListOpts{ScaleCode: "ANXMAT"})
	require.NoError(t, err)
	require.Len(t, sets, 3)
	assert.True(t, sets[0].SubmittedAt.Before(sets[1].SubmittedAt))

	page, err := store.ListSets(ctx, ListOpts{ScaleCode: "ANXMAT", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, sets[1].ID, page[0].ID)

	all, err := store.ListSets(ctx, ListOpts{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	// negative offset behaves like zero
	all, err = store.ListSets(ctx, ListOpts{Offset: -1})
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestSQLStoreResults(t *testing.T) {
	ctx := context.Background()
	store := openTestDB(t)

	set := NewSet("s1", "ANXMAT", map[string]int{"ST292Q01": 2})
	require.NoError(t, store.PutSet(ctx, set))

	r := StoredResult{
		ID: "r1", SetID: set.ID, ScaleCode: "ANXMAT", RespondentID: "s1",
		Score: 2.5, Used: 5, Total: 6, Tier: "medium",
		RefMean: 2.6, RefSD: 0.8, CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.PutResult(ctx, r))

	got, err := store.ListResults(ctx, "ANXMAT")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, r.Score, got[0].Score)
	assert.Equal(t, r.Tier, got[0].Tier)

	none, err := store.ListResults(ctx, "MATHEFF")
	require.NoError(t, err)
	assert.Empty(t, none)
}
