package survey

import (
	"fmt"
	"strings"

	"github.com/schulkompass/surveykit/internal/scale"
)

// renderAppsScript emits the Google Apps Script that receives form
// submissions and appends them to the Rohdaten sheet, for teachers who host
// the form via Google Sheets instead of the collector endpoint.
func renderAppsScript(sc scale.Scale) string {
	cols := make([]string, 0, len(sc.Items))
	for _, it := range sc.Items {
		cols = append(cols, fmt.Sprintf("%q", it.ID))
	}
	return fmt.Sprintf(`// Google Apps Script für %s
// Empfängt Daten vom HTML-Formular und speichert sie im Tab 'Rohdaten'.

function doPost(e) {
  try {
    const data = JSON.parse(e.postData.contents);
    const ss = SpreadsheetApp.getActiveSpreadsheet();
    const sheet = ss.getSheetByName('Rohdaten');

    const rowData = [
      data.timestamp || new Date().toISOString(),
      data.student_name || 'Unbekannt'
    ];

    const itemCols = [%s];
    itemCols.forEach(col => {
      rowData.push(data[col] || '');
    });

    sheet.appendRow(rowData);

    return ContentService.createTextOutput(JSON.stringify({
      status: 'success',
      message: 'Daten gespeichert'
    })).setMimeType(ContentService.MimeType.JSON);
  } catch (error) {
    return ContentService.createTextOutput(JSON.stringify({
      status: 'error',
      message: error.toString()
    })).setMimeType(ContentService.MimeType.JSON);
  }
}
`, sc.Code, strings.Join(cols, ", "))
}
