package packaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schulkompass/surveykit/internal/survey"
)

func testBundle() survey.Bundle {
	return survey.Bundle{
		ScaleCode:       "ANXMAT",
		FormHTML:        []byte("<html></html>"),
		SheetXLSX:       []byte("xlsx-bytes"),
		QRPNG:           []byte("png-bytes"),
		InstructionsPDF: []byte("%PDF-1.4"),
		AppsScript:      []byte("function doPost() {}"),
		Readme:          []byte("# Paket"),
	}
}

func TestBuildRoundTrip(t *testing.T) {
	data, err := Build(testBundle(), map[string][]byte{
		"extra/notes.txt": []byte("hello"),
	})
	require.NoError(t, err)

	entries, err := Inspect(data)
	require.NoError(t, err)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	assert.Equal(t, []string{
		EntryForm, EntrySheet, EntryQR, EntryInstructions,
		EntryAppsScript, EntryReadme,
		"extra/notes.txt",
	}, names)

	pdf, err := Extract(data, EntryInstructions)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)

	extra, err := Extract(data, "extra/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), extra)
}

func TestBuildRequiresAllArtifacts(t *testing.T) {
	for _, drop := range []string{EntryForm, EntrySheet, EntryQR, EntryInstructions} {
		b := testBundle()
		switch drop {
		case EntryForm:
			b.FormHTML = nil
		case EntrySheet:
			b.SheetXLSX = nil
		case EntryQR:
			b.QRPNG = nil
		case EntryInstructions:
			b.InstructionsPDF = nil
		}
		_, err := Build(b, nil)
		assert.ErrorIs(t, err, ErrIncompleteBundle, "missing %s", drop)
	}
}

func TestBuildWithoutExtras(t *testing.T) {
	b := testBundle()
	b.AppsScript = nil
	b.Readme = nil

	data, err := Build(b, nil)
	require.NoError(t, err)

	entries, err := Inspect(data)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestExtractUnknownEntry(t *testing.T) {
	data, err := Build(testBundle(), nil)
	require.NoError(t, err)

	_, err = Extract(data, "nope.txt")
	assert.Error(t, err)
}
