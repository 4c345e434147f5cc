package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// ErrDataType is returned when a value is read or assigned with an
// incompatible representation.
var ErrDataType = errors.New("value: data type error")

// Kind identifies the active representation of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindError
	KindFormula
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "numeric"
	case KindString:
		return "string"
	case KindError:
		return "error"
	case KindFormula:
		return "formula"
	default:
		return "unknown"
	}
}

// Value is a single cell value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	code ErrorCode
}

// Null returns the empty value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String returns a string value. The text is kept verbatim.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Formula returns a formula value holding the formula text without a leading '='.
func Formula(text string) Value {
	if len(text) > 0 && text[0] == '=' {
		text = text[1:]
	}
	return Value{kind: KindFormula, str: text}
}

// Error returns an error value. The code must be one of the enumerated codes.
func Error(code ErrorCode) (Value, error) {
	if !code.Valid() {
		return Value{}, fmt.Errorf("%w: unknown error code %d", ErrDataType, int(code))
	}
	return Value{kind: KindError, code: code}, nil
}

// Time returns the numeric serial of t under epoch.
func Time(t time.Time, epoch Epoch) Value {
	return Number(ToSerial(t, epoch))
}

// Kind returns the active representation.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is empty.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, v.mismatch(KindBool)
	}
	return v.b, nil
}

// AsNumber returns the numeric payload.
func (v Value) AsNumber() (float64, error) {
	if v.kind != KindNumber {
		return 0, v.mismatch(KindNumber)
	}
	return v.num, nil
}

// AsString returns the string payload.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch(KindString)
	}
	return v.str, nil
}

// AsError returns the error code payload.
func (v Value) AsError() (ErrorCode, error) {
	if v.kind != KindError {
		return 0, v.mismatch(KindError)
	}
	return v.code, nil
}

// AsFormula returns the formula text.
func (v Value) AsFormula() (string, error) {
	if v.kind != KindFormula {
		return "", v.mismatch(KindFormula)
	}
	return v.str, nil
}

// AsTime interprets a numeric value as a day serial under epoch.
func (v Value) AsTime(epoch Epoch) (time.Time, error) {
	if v.kind != KindNumber {
		return time.Time{}, v.mismatch(KindNumber)
	}
	return FromSerial(v.num, epoch), nil
}

// AsDuration interprets a numeric value as a span of days.
func (v Value) AsDuration() (time.Duration, error) {
	if v.kind != KindNumber {
		return 0, v.mismatch(KindNumber)
	}
	return SerialToDuration(v.num), nil
}

func (v Value) mismatch(want Kind) error {
	return fmt.Errorf("%w: value is %s, not %s", ErrDataType, v.kind, want)
}

// Equal reports whether both values have the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.num == other.num
	case KindString, KindFormula:
		return v.str == other.str
	case KindError:
		return v.code == other.code
	}
	return false
}

// serialTolerance is roughly a millisecond expressed in days.
const serialTolerance = 1e-8

// EqualTime reports whether v is a number whose serial matches t under epoch.
func (v Value) EqualTime(t time.Time, epoch Epoch) bool {
	if v.kind != KindNumber {
		return false
	}
	return math.Abs(v.num-ToSerial(t, epoch)) < serialTolerance
}

// EqualDuration reports whether v is a number matching d as a span of days.
func (v Value) EqualDuration(d time.Duration) bool {
	if v.kind != KindNumber {
		return false
	}
	return math.Abs(v.num-DurationToSerial(d)) < serialTolerance
}

// String returns the display text of the value. Numbers use the shortest
// representation that parses back to the same float.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	case KindNumber:
		return FormatNumber(v.num)
	case KindString:
		return v.str
	case KindError:
		return v.code.String()
	case KindFormula:
		return "=" + v.str
	default:
		return ""
	}
}

// FormatNumber formats f the way it is stored in a worksheet part.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
