// Package survey renders a scale into a distributable instrument: HTML
// form, scoring spreadsheet, QR code and teacher instructions.
package survey

import (
	"errors"
	"fmt"
	"math"

	"github.com/schulkompass/surveykit/internal/reference"
	"github.com/schulkompass/surveykit/internal/scale"
)

// ErrEmptyScale rejects instrument generation for scales without items.
var ErrEmptyScale = errors.New("scale has no items")

// Bundle holds the generated artifacts of one instrument, in memory.
type Bundle struct {
	ScaleCode       string
	FormHTML        []byte
	SheetXLSX       []byte
	QRPNG           []byte
	InstructionsPDF []byte

	// extras, always present but not required by the packager
	AppsScript []byte
	Readme     []byte
}

// Options configures instrument generation.
type Options struct {
	// FormURL is where the hosted form will live; encoded into the QR code
	// and printed in the instructions.
	FormURL string
	// CollectorURL receives form submissions. Empty means the form falls
	// back to downloading answers as JSON.
	CollectorURL string
	// Reference statistics for the scale; used by the spreadsheet dashboard
	// and the instructions. Zero value means no reference comparison.
	Reference reference.Stats
	// Bands defines the at-risk cut used in the spreadsheet.
	Bands reference.Bands
}

// BuildInstrument renders all artifacts for a scale. The spreadsheet's
// formulas are generated from the same scoring constants the interactive
// scorer uses (see buildRowFormula).
func BuildInstrument(sc scale.Scale, opts Options) (Bundle, error) {
	if len(sc.Items) == 0 {
		return Bundle{}, fmt.Errorf("scale %s: %w", sc.Code, ErrEmptyScale)
	}
	if opts.Bands.Width <= 0 {
		opts.Bands = reference.DefaultBands
	}

	form, err := RenderForm(sc, opts)
	if err != nil {
		return Bundle{}, fmt.Errorf("form: %w", err)
	}
	sheet, err := renderSheet(sc, opts)
	if err != nil {
		return Bundle{}, fmt.Errorf("sheet: %w", err)
	}
	qr, err := renderQR(opts.FormURL)
	if err != nil {
		return Bundle{}, fmt.Errorf("qr: %w", err)
	}
	pdf, err := renderInstructions(sc, opts, qr)
	if err != nil {
		return Bundle{}, fmt.Errorf("instructions: %w", err)
	}

	return Bundle{
		ScaleCode:       sc.Code,
		FormHTML:        form,
		SheetXLSX:       sheet,
		QRPNG:           qr,
		InstructionsPDF: pdf,
		AppsScript:      []byte(renderAppsScript(sc)),
		Readme:          []byte(renderReadme(sc, opts)),
	}, nil
}

// EstimateDuration returns the estimated completion time in minutes:
// 20 seconds per item, rounded up to the next 5, floor 5.
func EstimateDuration(numItems int) int {
	minutes := float64(numItems) * 20 / 60
	est := int(math.Ceil(minutes/5)) * 5
	if est < 5 {
		return 5
	}
	return est
}

func renderReadme(sc scale.Scale, opts Options) string {
	url := opts.FormURL
	if url == "" {
		url = "(Formular-URL eintragen)"
	}
	return fmt.Sprintf(`# Befragungspaket: %s (%s)

Inhalt:

- befragung.html – mobiles Formular für die Schülerinnen und Schüler
- auswertung_template.xlsx – Auswertungsvorlage mit fertigen Formeln
- qr_code.png – QR-Code zum Formular (%s)
- anleitung_lehrer.pdf – Schritt-für-Schritt-Anleitung
- google_apps_script.txt – optionales Script für Google Sheets

Geschätzte Bearbeitungszeit: ca. %d Minuten (%d Fragen).
Basierend auf der PISA-2022-Skala %s.
`, sc.TitleDE, sc.Code, url, EstimateDuration(len(sc.Items)), len(sc.Items), sc.Code)
}
