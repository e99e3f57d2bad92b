package survey

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/schulkompass/surveykit/internal/reference"
	"github.com/schulkompass/surveykit/internal/response"
	"github.com/schulkompass/surveykit/internal/scale"
	"github.com/schulkompass/surveykit/internal/score"
)

func anxmat(t *testing.T) scale.Scale {
	t.Helper()
	reg, err := scale.Default()
	require.NoError(t, err)
	sc, err := reg.Lookup("ANXMAT")
	require.NoError(t, err)
	return sc
}

func testOpts() Options {
	return Options{
		FormURL:      "https://example.org/befragung.html",
		CollectorURL: "https://example.org/responses",
		Reference:    reference.Stats{Mean: 2.6, SD: 0.8, N: 6116},
		Bands:        reference.DefaultBands,
	}
}

func TestBuildInstrument(t *testing.T) {
	b, err := BuildInstrument(anxmat(t), testOpts())
	require.NoError(t, err)

	assert.Equal(t, "ANXMAT", b.ScaleCode)
	assert.NotEmpty(t, b.FormHTML)
	assert.NotEmpty(t, b.SheetXLSX)
	assert.NotEmpty(t, b.QRPNG)
	assert.NotEmpty(t, b.InstructionsPDF)
	assert.NotEmpty(t, b.AppsScript)
	assert.NotEmpty(t, b.Readme)

	// PNG signature and PDF header
	assert.True(t, bytes.HasPrefix(b.QRPNG, []byte("\x89PNG\r\n\x1a\n")))
	assert.True(t, bytes.HasPrefix(b.InstructionsPDF, []byte("%PDF")))
}

func TestBuildInstrumentRejectsIndexOnly(t *testing.T) {
	sc := scale.Scale{Code: "ESCS", TitleDE: "ESCS", IndexOnly: true}
	_, err := BuildInstrument(sc, testOpts())
	require.ErrorIs(t, err, ErrEmptyScale)
}

func TestFormContainsAllItems(t *testing.T) {
	sc := anxmat(t)
	b, err := BuildInstrument(sc, testOpts())
	require.NoError(t, err)
	html := string(b.FormHTML)

	// one radio group per item, one input per category
	assert.Equal(t, len(sc.Items)*sc.Response.Categories(), strings.Count(html, `<input type="radio"`))
	for _, it := range sc.Items {
		assert.Contains(t, html, fmt.Sprintf(`name="%s"`, it.ID))
		assert.Contains(t, html, it.TextDE)
	}
	assert.Contains(t, html, `name="student_name"`)
	// the collector URL is JS-escaped by the template engine
	assert.Contains(t, html, "example.org")
}

func TestSheetFormulaMatchesScorer(t *testing.T) {
	sc := anxmat(t)

	answers := map[string]int{
		"ST292Q01": 2, "ST292Q02": 3, "ST292Q03": 1,
		"ST292Q04": 4, "ST292Q05": 2, "ST292Q06": 3,
	}
	res, err := score.New().Score(sc, response.NewSet("s", sc.Code, answers))
	require.NoError(t, err)

	// Evaluate the generated formula by hand: each term is either a plain
	// cell reference or (base-cell) for reverse items.
	formula := rowFormula(sc, 2)
	require.True(t, strings.HasPrefix(formula, "AVERAGE("))
	inner := strings.TrimSuffix(strings.TrimPrefix(formula, "AVERAGE("), ")")
	terms := strings.Split(inner, ",")
	require.Len(t, terms, len(sc.Items))

	base := score.ReverseBase(sc.Response)
	sum := 0.0
	for i, term := range terms {
		v := float64(answers[sc.Items[i].ID])
		if strings.HasPrefix(term, "(") {
			assert.Contains(t, term, fmt.Sprintf("(%d-", base))
			v = float64(base) - v
		}
		sum += v
	}
	assert.InDelta(t, res.Score, sum/float64(len(terms)), 1e-9)
}

func TestSheetStructure(t *testing.T) {
	sc := anxmat(t)
	b, err := BuildInstrument(sc, testOpts())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b.SheetXLSX))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Rohdaten", "Auswertung", "Dashboard", "Anleitung"}, f.GetSheetList())

	// Rohdaten header: timestamp, name, then one column per item
	hdr, err := f.GetCellValue("Rohdaten", "C1")
	require.NoError(t, err)
	assert.Equal(t, sc.Items[0].ID, hdr)

	// risk cut-point = mean - 0.5*SD
	raw, err := f.GetCellValue("Auswertung", "B6")
	require.NoError(t, err)
	cut, err := strconv.ParseFloat(raw, 64)
	require.NoError(t, err)
	assert.InDelta(t, 2.2, cut, 1e-9)

	// first evaluation row carries the generated mean formula
	got, err := f.GetCellFormula("Auswertung", "B9")
	require.NoError(t, err)
	assert.Contains(t, got, "AVERAGE(")
	assert.Contains(t, got, "(5-Rohdaten!E2)") // reverse-coded ST292Q03 sits in column E
}

func TestEstimateDuration(t *testing.T) {
	cases := map[int]int{
		0:  5,
		1:  5,
		6:  5,  // 2 min → floor
		15: 5,  // 5 min exactly
		16: 10, // just over 5 min
		30: 10,
		45: 15,
	}
	for items, want := range cases {
		assert.Equal(t, want, EstimateDuration(items), "%d items", items)
	}
}
