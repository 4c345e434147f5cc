package cellref

import (
	"fmt"
	"strings"
)

// ParseQualified splits a sheet-qualified reference such as
// "Sheet1!$A$1:$B$2" or "'My Sheet'!C5" into its sheet name and range.
func ParseQualified(text string) (string, RangeReference, error) {
	bang := strings.LastIndex(text, "!")
	if bang <= 0 {
		return "", RangeReference{}, fmt.Errorf("%w: %q is not sheet-qualified", ErrCoordinate, text)
	}

	sheet := text[:bang]
	if strings.HasPrefix(sheet, "'") {
		if len(sheet) < 2 || !strings.HasSuffix(sheet, "'") {
			return "", RangeReference{}, fmt.Errorf("%w: unbalanced quotes in %q", ErrCoordinate, text)
		}
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}

	rr, err := ParseRange(text[bang+1:])
	if err != nil {
		return "", RangeReference{}, err
	}
	return sheet, rr, nil
}

// FormatQualified renders sheet!range, quoting the sheet name when needed.
func FormatQualified(sheet string, rr RangeReference) string {
	return QuoteSheetName(sheet) + "!" + rr.String()
}

// QuoteSheetName wraps a sheet name in single quotes when it contains
// anything other than letters, digits, underscores and dots.
func QuoteSheetName(sheet string) string {
	plain := sheet != ""
	for _, c := range sheet {
		if !(c == '_' || c == '.' || (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
			plain = false
			break
		}
	}
	if plain {
		return sheet
	}
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}
