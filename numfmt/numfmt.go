// Package numfmt classifies spreadsheet number-format codes.
//
// The engine does not render numbers. It only needs a stable format code per
// cell and to know whether that code makes a numeric value a date, a time, a
// percentage or a plain number.
package numfmt

import (
	"strings"

	"github.com/xuri/nfp"
)

// Well-known format codes.
const (
	General      = "General"
	Text         = "@"
	Number       = "0"
	Number00     = "0.00"
	Percentage   = "0%"
	Percentage00 = "0.00%"
	DateISO      = "yyyy-mm-dd"
	DateXLSX14   = "mm-dd-yy"
	Time         = "h:mm:ss"
	DateTime     = "yyyy-mm-dd h:mm:ss"
)

// Category is the coarse classification of a format code.
type Category int

const (
	CategoryGeneral Category = iota
	CategoryNumeric
	CategoryPercentage
	CategoryDate
	CategoryTime
	CategoryDateTime
	CategoryText
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryGeneral:
		return "general"
	case CategoryNumeric:
		return "numeric"
	case CategoryPercentage:
		return "percentage"
	case CategoryDate:
		return "date"
	case CategoryTime:
		return "time"
	case CategoryDateTime:
		return "datetime"
	case CategoryText:
		return "text"
	default:
		return "unknown"
	}
}

// IsDateLike reports whether values with this category are calendar or clock serials.
func (c Category) IsDateLike() bool {
	return c == CategoryDate || c == CategoryTime || c == CategoryDateTime
}

// Classify inspects the tokens of the first (positive) section of code.
func Classify(code string) Category {
	if code == "" || strings.EqualFold(code, General) {
		return CategoryGeneral
	}

	ps := nfp.NumberFormatParser()
	sections := ps.Parse(code)
	if len(sections) == 0 {
		return CategoryGeneral
	}

	var hasDate, hasTime, hasAmbiguousM, hasPercent, hasText, hasDigits bool
	for _, token := range sections[0].Items {
		switch token.TType {
		case nfp.TokenTypeDateTimes, nfp.TokenTypeElapsedDateTimes:
			v := strings.ToLower(token.TValue)
			switch {
			case strings.ContainsAny(v, "yd"), strings.HasPrefix(v, "mmm"):
				hasDate = true
			case strings.ContainsAny(v, "hs"), strings.Contains(v, "am/pm"), strings.Contains(v, "a/p"):
				hasTime = true
			case strings.Contains(v, "m"):
				hasAmbiguousM = true
			default:
				hasTime = true
			}
		case nfp.TokenTypePercent:
			hasPercent = true
		case nfp.TokenTypeTextPlaceHolder:
			hasText = true
		case nfp.TokenTypeZeroPlaceHolder, nfp.TokenTypeHashPlaceHolder, nfp.TokenTypeDigitalPlaceHolder:
			hasDigits = true
		case nfp.TokenTypeGeneral:
			// stays general unless something else is present
		}
	}

	// A lone "m" is a month next to dates and a minute next to clock parts.
	if hasAmbiguousM && !hasTime {
		hasDate = true
	}

	switch {
	case hasDate && hasTime:
		return CategoryDateTime
	case hasDate:
		return CategoryDate
	case hasTime:
		return CategoryTime
	case hasPercent:
		return CategoryPercentage
	case hasText && !hasDigits:
		return CategoryText
	case hasDigits:
		return CategoryNumeric
	default:
		return CategoryGeneral
	}
}

// IsDateFormat is shorthand for Classify(code).IsDateLike().
func IsDateFormat(code string) bool {
	return Classify(code).IsDateLike()
}
