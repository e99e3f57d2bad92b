package audit

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schulkompass/surveykit/internal/db"
)

func TestEventRepoAppendAndRecent(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "audit.db") + "?cache=shared&mode=rwc"
	dbh, err := db.Open(ctx, db.DriverSQLite, dsn)
	require.NoError(t, err)
	defer dbh.Close()

	repo := NewEventRepo(dbh)
	require.NoError(t, repo.Append(ctx, EventPackageBuilt, "packages/a.zip", map[string]any{"scale_code": "ANXMAT"}))
	require.NoError(t, repo.Append(ctx, EventScoreComputed, "set-1", map[string]any{"score": 3.0}))

	events, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// newest first
	assert.Equal(t, EventScoreComputed, events[0].Type)
	assert.Equal(t, "set-1", events[0].Key)
	assert.Contains(t, events[0].DataJSON, "score")
	assert.Greater(t, events[0].Offset, events[1].Offset)
}
