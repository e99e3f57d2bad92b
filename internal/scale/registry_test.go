package scale

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)
	require.GreaterOrEqual(t, reg.Len(), 4)

	sc, err := reg.Lookup("ANXMAT")
	require.NoError(t, err)
	assert.Equal(t, "ANXMAT", sc.Code)
	assert.Len(t, sc.Items, 6)
	assert.Equal(t, 1, sc.Response.Min)
	assert.Equal(t, 4, sc.Response.Max)
	assert.Equal(t, []string{"ST292Q03"}, sc.ReverseItems)

	it, ok := sc.Item("ST292Q03")
	require.True(t, ok)
	assert.True(t, it.Reverse)
}

func TestLookupUnknown(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	_, err = reg.Lookup("NOPE")
	require.ErrorIs(t, err, ErrScaleNotFound)
}

func TestListFullOnlyHidesIndexScales(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	for _, s := range reg.List(ListFilter{FullOnly: true}) {
		assert.False(t, s.IndexOnly, "index-only scale %s in full-only list", s.Code)
		assert.Greater(t, s.NumItems, 0)
	}
}

func TestListQuery(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	got := reg.List(ListFilter{Query: "anxmat"})
	require.Len(t, got, 1)
	assert.Equal(t, "ANXMAT", got[0].Code)
}

func TestListOrderedByCode(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	var prev string
	for _, s := range reg.List(ListFilter{}) {
		assert.Less(t, prev, s.Code)
		prev = s.Code
	}
}

func TestLoadRejectsBadDefinitions(t *testing.T) {
	cases := map[string]string{
		"unknown field": `{"X":{"title_de":"T","bogus":1,"response":{"min":1,"max":4},"items":[{"id":"A","text_de":"a"}]}}`,
		"max not above min": `{"X":{"title_de":"T","response":{"min":4,"max":1},
			"items":[{"id":"A","text_de":"a"}]}}`,
		"duplicate item": `{"X":{"title_de":"T","response":{"min":1,"max":4},
			"items":[{"id":"A","text_de":"a"},{"id":"A","text_de":"b"}]}}`,
		"reverse flag disagrees": `{"X":{"title_de":"T","response":{"min":1,"max":4},
			"items":[{"id":"A","text_de":"a"}],"reverse_items":["A"]}}`,
		"reverse references unknown item": `{"X":{"title_de":"T","response":{"min":1,"max":4},
			"items":[{"id":"A","text_de":"a"}],"reverse_items":["B"]}}`,
		"index-only with items": `{"X":{"title_de":"T","index_only":true,"response":{"min":1,"max":4},
			"items":[{"id":"A","text_de":"a"}]}}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestResponseScaleContains(t *testing.T) {
	rs := ResponseScale{Min: 1, Max: 4}
	assert.Equal(t, 4, rs.Categories())
	assert.False(t, rs.Contains(0))
	assert.True(t, rs.Contains(1))
	assert.True(t, rs.Contains(4))
	assert.False(t, rs.Contains(5))
}
