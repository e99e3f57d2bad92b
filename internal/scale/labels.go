package scale

import (
	"math"
	"strings"
)

// answerLabelDE maps the common English PISA answer labels to German.
// Unknown labels pass through unchanged.
var answerLabelDE = map[string]string{
	// 4-point agreement
	"Strongly agree":    "Stimme völlig zu",
	"Agree":             "Stimme zu",
	"Disagree":          "Stimme nicht zu",
	"Strongly disagree": "Stimme überhaupt nicht zu",

	// frequency
	"Never or hardly ever": "Nie oder fast nie",
	"Some lessons":         "In einigen Stunden",
	"Most lessons":         "In den meisten Stunden",
	"Every lesson":         "In jeder Stunde",

	"Never":     "Nie",
	"Rarely":    "Selten",
	"Sometimes": "Manchmal",
	"Often":     "Oft",
	"Always":    "Immer",

	"Yes": "Ja",
	"No":  "Nein",

	// confidence
	"Not at all confident": "Überhaupt nicht sicher",
	"Not very confident":   "Nicht sehr sicher",
	"Confident":            "Sicher",
	"Very confident":       "Sehr sicher",
}

// TranslateLabel returns the German answer label for an English PISA label,
// or the input unchanged when no translation exists.
func TranslateLabel(english string) string {
	if english == "" {
		return ""
	}
	if de, ok := answerLabelDE[english]; ok {
		return de
	}
	return english
}

var missingPatterns = []string{
	"SYSTEM MISSING",
	"MISSING",
	"NOT APPLICABLE",
	"VALID SKIP",
	"INVALID",
	"NO RESPONSE",
	"95", "96", "97", "98", "99",
}

// IsMissingValue reports whether a numeric value is one of the SPSS missing
// codes (95-99) rather than a substantive response.
func IsMissingValue(v float64) bool {
	return v >= 95 && v <= 99 && v == math.Trunc(v)
}

// IsMissingCode reports whether a raw value string is one of the PISA/SPSS
// missing codes rather than a substantive response.
func IsMissingCode(value string) bool {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == "" || strings.HasPrefix(v, ".") {
		return true
	}
	for _, p := range missingPatterns {
		if strings.Contains(v, p) {
			return true
		}
	}
	return false
}
