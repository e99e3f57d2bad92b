package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateLabel(t *testing.T) {
	assert.Equal(t, "Stimme völlig zu", TranslateLabel("Strongly agree"))
	assert.Equal(t, "Nie oder fast nie", TranslateLabel("Never or hardly ever"))
	assert.Equal(t, "", TranslateLabel(""))
	// unknown labels pass through
	assert.Equal(t, "Quite often", TranslateLabel("Quite often"))
}

func TestIsMissingCode(t *testing.T) {
	missing := []string{"", "  ", ".", ".M", "SYSTEM MISSING", "no response", "97", "Valid Skip"}
	for _, v := range missing {
		assert.True(t, IsMissingCode(v), "%q should be missing", v)
	}
	substantive := []string{"1", "4", "Stimme zu", "3.5"}
	for _, v := range substantive {
		assert.False(t, IsMissingCode(v), "%q should be substantive", v)
	}
}

func TestIsMissingValue(t *testing.T) {
	for _, v := range []float64{95, 96, 97, 98, 99} {
		assert.True(t, IsMissingValue(v), "%v", v)
	}
	for _, v := range []float64{1, 4, 2.95, 94, 95.5, 100} {
		assert.False(t, IsMissingValue(v), "%v", v)
	}
}
