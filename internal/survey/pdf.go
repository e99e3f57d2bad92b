package survey

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/schulkompass/surveykit/internal/scale"
)

// renderInstructions builds the teacher-facing PDF: overview table, usage
// steps, interpretation guidance and the QR code for distribution.
func renderInstructions(sc scale.Scale, opts Options, qrPNG []byte) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("") // cp1252, covers German umlauts
	pdf.SetTitle(tr("PISA Schüler-Befragung: "+sc.TitleDE), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(0x44, 0x72, 0xC4)
	pdf.CellFormat(0, 12, tr("PISA Schüler-Befragung"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, tr(sc.TitleDE), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(0x44, 0x72, 0xC4)
	pdf.CellFormat(0, 8, tr("Anleitung für Lehrkräfte"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr("Diese Anleitung hilft Ihnen dabei, eine wissenschaftlich fundierte "+
		"Schüler-Befragung in Ihrer Klasse durchzuführen. Die Befragung basiert auf der "+
		"PISA-2022-Studie und ermöglicht den Vergleich Ihrer Klasse mit der deutschen Stichprobe."), "", "J", false)
	pdf.Ln(4)

	// overview table
	info := [][2]string{
		{"Skala:", sc.Code},
		{"Titel:", sc.TitleDE},
		{"Anzahl Fragen:", fmt.Sprintf("%d", len(sc.Items))},
		{"Bearbeitungszeit:", fmt.Sprintf("ca. %d Minuten", EstimateDuration(len(sc.Items)))},
		{"Quelle:", "PISA 2022 Skalenhandbuch"},
	}
	if opts.Reference.N > 0 {
		info = append(info, [2]string{"Referenz:", fmt.Sprintf("M = %.2f, SD = %.2f (N = %d)",
			opts.Reference.Mean, opts.Reference.SD, opts.Reference.N)})
	}
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range info {
		pdf.SetFillColor(0xE7, 0xE6, 0xE6)
		pdf.CellFormat(50, 8, tr(row[0]), "1", 0, "L", true, 0, "")
		pdf.CellFormat(120, 8, tr(row[1]), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	steps := []struct {
		head string
		body string
	}{
		{"1. Vorbereitung", "Laden Sie die Auswertungsvorlage (auswertung_template.xlsx) hoch oder öffnen Sie sie lokal. Das HTML-Formular (befragung.html) kann über einen Link oder den QR-Code verteilt werden."},
		{"2. Durchführung", "Die Schülerinnen und Schüler scannen den QR-Code und füllen das Formular auf ihren Geräten aus. Alle Fragen sind Pflichtfelder; der Fortschrittsbalken zeigt den Stand."},
		{"3. Auswertung", "Die Antworten erscheinen im Tab 'Rohdaten'. Die Tabs 'Auswertung' und 'Dashboard' berechnen die Skalenwerte automatisch, einschließlich umgepolter Items."},
		{"4. Interpretation", fmt.Sprintf("Werte deutlich unter dem PISA-Durchschnitt (unter %.2f) deuten auf Unterstützungsbedarf hin. Besprechen Sie auffällige Ergebnisse individuell und nicht vor der Klasse.", opts.Reference.Mean-opts.Bands.Width*opts.Reference.SD)},
	}
	for _, s := range steps {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(0x44, 0x72, 0xC4)
		pdf.CellFormat(0, 8, tr(s.head), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(s.body), "", "J", false)
		pdf.Ln(2)
	}

	// QR on its own page for printing
	if len(qrPNG) > 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 12, tr("Scanne den QR-Code mit deinem Handy"), "", 1, "C", false, 0, "")
		opt := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("qr", opt, bytes.NewReader(qrPNG))
		pdf.ImageOptions("qr", 55, 50, 100, 100, false, opt, 0, "")
		if opts.FormURL != "" {
			pdf.SetY(160)
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(0x80, 0x80, 0x80)
			pdf.CellFormat(0, 8, tr(opts.FormURL), "", 1, "C", false, 0, "")
		}
		pdf.SetY(270)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(0xB0, 0xB0, 0xB0)
		pdf.CellFormat(0, 6, tr("Basierend auf PISA 2022"), "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
