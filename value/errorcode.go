package value

import "fmt"

// ErrorCode is one of the standard spreadsheet error tokens.
type ErrorCode int

const (
	ErrorNull ErrorCode = iota + 1
	ErrorDiv0
	ErrorValue
	ErrorRef
	ErrorName
	ErrorNum
	ErrorNA
	ErrorGettingData
)

var errorCodeText = map[ErrorCode]string{
	ErrorNull:        "#NULL!",
	ErrorDiv0:        "#DIV/0!",
	ErrorValue:       "#VALUE!",
	ErrorRef:         "#REF!",
	ErrorName:        "#NAME?",
	ErrorNum:         "#NUM!",
	ErrorNA:          "#N/A",
	ErrorGettingData: "#GETTING_DATA",
}

// Valid reports whether c is an enumerated code.
func (c ErrorCode) Valid() bool {
	_, ok := errorCodeText[c]
	return ok
}

// String returns the token as written in a worksheet.
func (c ErrorCode) String() string {
	if s, ok := errorCodeText[c]; ok {
		return s
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// ParseErrorCode maps a token such as "#N/A" to its code.
func ParseErrorCode(s string) (ErrorCode, error) {
	for code, text := range errorCodeText {
		if text == s {
			return code, nil
		}
	}
	return 0, fmt.Errorf("%w: %q is not an error code", ErrDataType, s)
}
