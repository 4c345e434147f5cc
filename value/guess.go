package value

import (
	"regexp"
	"strconv"
	"strings"
)

// Format codes attached by GuessType.
const (
	PercentFormat = "0%"
	TimeFormat    = "h:mm:ss"
)

var (
	numericPattern     = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	leadingZeroPattern = regexp.MustCompile(`^[+-]?0\d`)
	timePattern        = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
)

// ParseNumber parses text against the strict numeric grammar: optional sign,
// digits with at most one decimal point, optional exponent with at least one
// digit. Integers with a leading zero such as "0800" are not numbers.
func ParseNumber(text string) (float64, bool) {
	if !numericPattern.MatchString(text) {
		return 0, false
	}
	if leadingZeroPattern.MatchString(text) && !strings.Contains(text, ".") {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseTime parses "H:MM" or "H:MM:SS" into a fractional-day serial.
func ParseTime(text string) (float64, bool) {
	m := timePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds := 0
	if m[3] != "" {
		seconds, _ = strconv.Atoi(m[3])
	}
	if hours > 23 || minutes > 59 || seconds > 59 {
		return 0, false
	}
	return float64(hours)/24 + float64(minutes)/1440 + float64(seconds)/secondsPerDay, true
}

// parsePercent parses the number before a percent sign and scales it by
// 1/100 in the exponent, so "3.14" yields exactly 0.0314.
func parsePercent(text string) (float64, bool) {
	if _, ok := ParseNumber(text); !ok {
		return 0, false
	}
	mantissa, exp := text, 0
	if i := strings.IndexAny(text, "eE"); i >= 0 {
		mantissa = text[:i]
		n, err := strconv.Atoi(text[i+1:])
		if err != nil {
			return 0, false
		}
		exp = n
	}
	f, err := strconv.ParseFloat(mantissa+"e"+strconv.Itoa(exp-2), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// GuessType infers a typed value from raw text. The returned format code is
// empty unless the text implies one (percentage or time).
func GuessType(text string) (Value, string) {
	if prefix, ok := strings.CutSuffix(text, "%"); ok {
		if f, ok := parsePercent(prefix); ok {
			return Number(f), PercentFormat
		}
	}
	if serial, ok := ParseTime(text); ok {
		return Number(serial), TimeFormat
	}
	if f, ok := ParseNumber(text); ok {
		return Number(f), ""
	}
	return String(text), ""
}
