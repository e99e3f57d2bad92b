package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *Table {
	return NewTable(map[string]Stats{
		"ANXMAT": {Mean: 2.6, SD: 0.8, N: 6116},
	})
}

func TestClassifyTiers(t *testing.T) {
	cmp := NewComparator(testTable(), DefaultBands)

	// cuts at 2.6 ± 0.4
	cases := []struct {
		score float64
		want  Tier
	}{
		{1.0, TierLow},
		{2.19, TierLow},
		{2.2, TierMedium}, // boundary belongs to medium
		{2.6, TierMedium},
		{3.0, TierMedium}, // boundary belongs to medium
		{3.01, TierHigh},
		{4.0, TierHigh},
	}
	for _, c := range cases {
		cl, err := cmp.Classify("ANXMAT", c.score)
		require.NoError(t, err)
		assert.Equal(t, c.want, cl.Tier, "score %.2f", c.score)
		assert.Equal(t, 2.6, cl.RefMean)
		assert.Equal(t, 0.8, cl.RefSD)
	}
}

func TestClassifyNoReferenceData(t *testing.T) {
	cmp := NewComparator(testTable(), DefaultBands)

	_, err := cmp.Classify("MATHEFF", 2.5)
	require.ErrorIs(t, err, ErrNoReferenceData)
}

func TestClassifyCustomBands(t *testing.T) {
	cmp := NewComparator(testTable(), Bands{Width: 1.0})

	cl, err := cmp.Classify("ANXMAT", 3.2)
	require.NoError(t, err)
	assert.Equal(t, TierMedium, cl.Tier)

	cl, err = cmp.Classify("ANXMAT", 3.5)
	require.NoError(t, err)
	assert.Equal(t, TierHigh, cl.Tier)
}

func TestLowCut(t *testing.T) {
	cmp := NewComparator(testTable(), DefaultBands)

	cut, err := cmp.LowCut("ANXMAT")
	require.NoError(t, err)
	assert.InDelta(t, 2.2, cut, 1e-9)

	_, err = cmp.LowCut("MATHEFF")
	require.ErrorIs(t, err, ErrNoReferenceData)
}

func TestDefaultTableCoversBundledScales(t *testing.T) {
	table, err := DefaultTable()
	require.NoError(t, err)

	st, ok := table.Get("ANXMAT")
	require.True(t, ok)
	assert.Greater(t, st.SD, 0.0)
	assert.Greater(t, st.N, 0)
	assert.NotEmpty(t, table.Codes())
}
