package survey

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/schulkompass/surveykit/internal/scale"
	"github.com/schulkompass/surveykit/internal/score"
)

const (
	sheetData = "Rohdaten"
	sheetEval = "Auswertung"
	sheetDash = "Dashboard"
	sheetHelp = "Anleitung"

	evalHeaderRow = 8
	evalFirstRow  = 9
	evalRows      = 50 // prepared formula rows, one per respondent
)

// rowFormula builds the Auswertung mean formula for one Rohdaten row. It is
// generated from the same constants the scorer applies: reverse-coded cells
// are emitted as (min+max)−ref, everything else as the plain cell, so the
// spreadsheet reproduces score.Scorer exactly for complete rows.
func rowFormula(sc scale.Scale, dataRow int) string {
	base := score.ReverseBase(sc.Response)
	rev := sc.ReverseSet()
	terms := make([]string, 0, len(sc.Items))
	for i, it := range sc.Items {
		col, _ := excelize.ColumnNumberToName(3 + i) // responses start in column C
		ref := fmt.Sprintf("%s!%s%d", sheetData, col, dataRow)
		if rev[it.ID] {
			terms = append(terms, fmt.Sprintf("(%d-%s)", base, ref))
		} else {
			terms = append(terms, ref)
		}
	}
	return "AVERAGE(" + strings.Join(terms, ",") + ")"
}

// renderSheet builds the scoring template workbook: raw data, per-student
// evaluation with generated formulas, a class dashboard and usage notes.
func renderSheet(sc scale.Scale, opts Options) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "4472C4"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	boldStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	num2Style, _ := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("0.00")})
	diffStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("+0.00;-0.00;0.00")})

	// --- Rohdaten ---
	f.SetSheetName("Sheet1", sheetData)
	headers := []string{"Zeitstempel", "Schüler Name"}
	for _, it := range sc.Items {
		headers = append(headers, it.ID)
	}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheetData, cell, h)
		f.SetCellStyle(sheetData, cell, cell, headerStyle)
	}
	f.SetColWidth(sheetData, "A", "A", 20)
	f.SetColWidth(sheetData, "B", "B", 25)
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	f.SetColWidth(sheetData, "C", lastCol, 15)
	f.SetPanes(sheetData, &excelize.Panes{
		Freeze: true, XSplit: 2, YSplit: 1, TopLeftCell: "C2", ActivePane: "bottomRight",
	})

	// --- Auswertung ---
	f.NewSheet(sheetEval)
	f.MergeCell(sheetEval, "A1", "F1")
	f.SetCellValue(sheetEval, "A1", "Auswertung: "+sc.TitleDE)
	f.SetCellStyle(sheetEval, "A1", "A1", titleStyle)

	f.SetCellValue(sheetEval, "A3", "Skala:")
	f.SetCellValue(sheetEval, "B3", sc.Code)
	f.SetCellValue(sheetEval, "A4", "Anzahl Items:")
	f.SetCellValue(sheetEval, "B4", len(sc.Items))
	f.SetCellValue(sheetEval, "A5", "PISA DE Durchschnitt:")
	f.SetCellValue(sheetEval, "B5", opts.Reference.Mean)
	f.SetCellValue(sheetEval, "A6", "Risiko-Grenzwert:")
	f.SetCellValue(sheetEval, "B6", opts.Reference.Mean-opts.Bands.Width*opts.Reference.SD)
	f.SetCellStyle(sheetEval, "A3", "A6", boldStyle)
	f.SetCellStyle(sheetEval, "B5", "B6", num2Style)

	evalHeaders := []string{"Schüler", "Durchschnitt", "Vergleich zu PISA", "Status", "Risiko?"}
	for i, h := range evalHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s%d", col, evalHeaderRow)
		f.SetCellValue(sheetEval, cell, h)
		f.SetCellStyle(sheetEval, cell, cell, headerStyle)
	}
	f.SetColWidth(sheetEval, "A", "A", 25)
	f.SetColWidth(sheetEval, "B", "B", 15)
	f.SetColWidth(sheetEval, "C", "C", 18)
	f.SetColWidth(sheetEval, "D", "D", 15)
	f.SetColWidth(sheetEval, "E", "E", 12)

	for r := 0; r < evalRows; r++ {
		row := evalFirstRow + r
		dataRow := 2 + r
		guard := fmt.Sprintf("%s!B%d=\"\"", sheetData, dataRow)
		f.SetCellFormula(sheetEval, fmt.Sprintf("A%d", row),
			fmt.Sprintf("IF(%s,\"\",%s!B%d)", guard, sheetData, dataRow))
		f.SetCellFormula(sheetEval, fmt.Sprintf("B%d", row),
			fmt.Sprintf("IF(%s,\"\",%s)", guard, rowFormula(sc, dataRow)))
		f.SetCellFormula(sheetEval, fmt.Sprintf("C%d", row),
			fmt.Sprintf("IF(B%d=\"\",\"\",B%d-$B$5)", row, row))
		f.SetCellFormula(sheetEval, fmt.Sprintf("D%d", row),
			fmt.Sprintf("IF(B%d=\"\",\"\",IF(C%d>0,\"Über PISA\",\"Unter PISA\"))", row, row))
		f.SetCellFormula(sheetEval, fmt.Sprintf("E%d", row),
			fmt.Sprintf("IF(B%d=\"\",\"\",IF(B%d<$B$6,\"JA\",\"\"))", row, row))
		f.SetCellStyle(sheetEval, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), num2Style)
		f.SetCellStyle(sheetEval, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), diffStyle)
	}

	// --- Dashboard ---
	f.NewSheet(sheetDash)
	f.MergeCell(sheetDash, "A1", "F1")
	f.SetCellValue(sheetDash, "A1", "Dashboard: "+sc.TitleDE)
	f.SetCellStyle(sheetDash, "A1", "A1", titleStyle)

	lastEval := evalFirstRow + evalRows - 1
	f.SetCellValue(sheetDash, "A3", "Klassendurchschnitt:")
	f.SetCellFormula(sheetDash, "B3", fmt.Sprintf("AVERAGE(%s!B%d:B%d)", sheetEval, evalFirstRow, lastEval))
	f.SetCellValue(sheetDash, "A4", "PISA Deutschland:")
	f.SetCellValue(sheetDash, "B4", opts.Reference.Mean)
	f.SetCellValue(sheetDash, "A5", "Differenz:")
	f.SetCellFormula(sheetDash, "B5", "B3-B4")
	f.SetCellValue(sheetDash, "A7", "Risikoschüler:")
	f.SetCellFormula(sheetDash, "B7",
		fmt.Sprintf("COUNTIF(%s!B%d:B%d,\"<\"&%s!$B$6)", sheetEval, evalFirstRow, lastEval, sheetEval))
	f.SetCellStyle(sheetDash, "A3", "A7", boldStyle)
	f.SetCellStyle(sheetDash, "B3", "B4", num2Style)
	f.SetCellStyle(sheetDash, "B5", "B5", diffStyle)

	// tier legend with the color coding used in reports
	lowFill, _ := f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1}})
	medFill, _ := f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Color: []string{"FFEB9C"}, Pattern: 1}})
	highFill, _ := f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1}})
	f.SetCellValue(sheetDash, "A9", "Einstufung:")
	f.SetCellStyle(sheetDash, "A9", "A9", boldStyle)
	f.SetCellValue(sheetDash, "A10", "low (unter Durchschnittsband)")
	f.SetCellStyle(sheetDash, "A10", "A10", lowFill)
	f.SetCellValue(sheetDash, "A11", "medium (im Durchschnittsband)")
	f.SetCellStyle(sheetDash, "A11", "A11", medFill)
	f.SetCellValue(sheetDash, "A12", "high (über Durchschnittsband)")
	f.SetCellStyle(sheetDash, "A12", "A12", highFill)
	f.SetColWidth(sheetDash, "A", "A", 35)
	f.SetColWidth(sheetDash, "B", "B", 15)

	// --- Anleitung ---
	f.NewSheet(sheetHelp)
	help := []struct {
		cell string
		text string
		bold bool
	}{
		{"A1", "ANLEITUNG - So verwendest du dieses Template", true},
		{"A3", "1. Einrichtung", true},
		{"A4", "   - Lade diese Datei in Google Drive hoch oder öffne sie in Excel", false},
		{"A5", "   - Optional: Web-App-URL aus dem HTML-Formular eintragen", false},
		{"A7", "2. Datensammlung", true},
		{"A8", "   - Teile den QR-Code oder Link mit deinen Schülern", false},
		{"A9", "   - Antworten erscheinen im Tab 'Rohdaten' (eine Zeile pro Schüler)", false},
		{"A11", "3. Auswertung", true},
		{"A12", "   - Tab 'Auswertung': individuelle Ergebnisse, umgepolte Items werden automatisch berücksichtigt", false},
		{"A13", "   - Tab 'Dashboard': Klassenüberblick und Risikozählung", false},
		{"A15", "4. Interpretation", true},
		{"A16", fmt.Sprintf("   - Werte über %.2f: überdurchschnittlich im Vergleich zu PISA Deutschland", opts.Reference.Mean), false},
		{"A17", fmt.Sprintf("   - Werte unter %.2f: Risikogruppe, gezielte Unterstützung empfohlen", opts.Reference.Mean-opts.Bands.Width*opts.Reference.SD), false},
		{"A19", "Hinweis: Diese Skala stammt aus dem PISA-2022-Skalenhandbuch.", false},
	}
	for _, h := range help {
		f.SetCellValue(sheetHelp, h.cell, h.text)
		if h.bold {
			f.SetCellStyle(sheetHelp, h.cell, h.cell, boldStyle)
		}
	}
	f.SetColWidth(sheetHelp, "A", "A", 90)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func strPtr(s string) *string { return &s }
