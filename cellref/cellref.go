package cellref

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxColumn is the highest column index that can be expressed (ZZZ).
const MaxColumn = 18278

var (
	// ErrCoordinate reports an unparsable or out-of-range reference.
	ErrCoordinate = errors.New("cellref: invalid coordinate")

	// ErrColumnIndex reports a column string or index outside A..ZZZ.
	// It also matches ErrCoordinate.
	ErrColumnIndex = fmt.Errorf("%w: column index out of range", ErrCoordinate)
)

// ColumnIndex converts column letters to a 1-based index.
// A=1, Z=26, AA=27, ZZZ=18278. Letters are case-insensitive.
func ColumnIndex(col string) (int, error) {
	if col == "" || len(col) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrColumnIndex, col)
	}

	result := 0
	for i := 0; i < len(col); i++ {
		c := col[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			return 0, fmt.Errorf("%w: %q", ErrColumnIndex, col)
		}
		result = result*26 + int(c-'A') + 1
	}

	if result > MaxColumn {
		return 0, fmt.Errorf("%w: %q", ErrColumnIndex, col)
	}
	return result, nil
}

// ColumnString converts a 1-based column index to letters.
// 1=A, 26=Z, 27=AA, 18278=ZZZ.
func ColumnString(index int) (string, error) {
	if index < 1 || index > MaxColumn {
		return "", fmt.Errorf("%w: %d", ErrColumnIndex, index)
	}

	var buf [3]byte
	i := len(buf)
	for index > 0 {
		index-- // no zero digit
		i--
		buf[i] = byte('A' + index%26)
		index /= 26
	}
	return string(buf[i:]), nil
}

// CellReference identifies a single cell.
type CellReference struct {
	Column         int // 1-based
	Row            int // 1-based
	ColumnAbsolute bool
	RowAbsolute    bool
}

// New returns a relative reference for the 1-based column and row.
func New(column, row int) (CellReference, error) {
	ref := CellReference{Column: column, Row: row}
	if err := ref.Validate(); err != nil {
		return CellReference{}, err
	}
	return ref, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(text string) CellReference {
	ref, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return ref
}

// Parse parses text of the form [$]Letters[$]Digits.
func Parse(text string) (CellReference, error) {
	var ref CellReference
	s := text

	if strings.HasPrefix(s, "$") {
		ref.ColumnAbsolute = true
		s = s[1:]
	}

	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	if i == 0 {
		return CellReference{}, fmt.Errorf("%w: %q has no column letters", ErrCoordinate, text)
	}

	col, err := ColumnIndex(s[:i])
	if err != nil {
		return CellReference{}, fmt.Errorf("%w: %q", ErrCoordinate, text)
	}
	ref.Column = col
	s = s[i:]

	if strings.HasPrefix(s, "$") {
		ref.RowAbsolute = true
		s = s[1:]
	}
	if s == "" {
		return CellReference{}, fmt.Errorf("%w: %q has no row number", ErrCoordinate, text)
	}
	for j := 0; j < len(s); j++ {
		if s[j] < '0' || s[j] > '9' {
			return CellReference{}, fmt.Errorf("%w: %q", ErrCoordinate, text)
		}
	}

	row, err := strconv.Atoi(s)
	if err != nil || row < 1 {
		return CellReference{}, fmt.Errorf("%w: invalid row in %q", ErrCoordinate, text)
	}
	ref.Row = row

	return ref, nil
}

// Validate reports whether the reference lies inside the addressable grid.
func (r CellReference) Validate() error {
	if r.Column < 1 || r.Column > MaxColumn {
		return fmt.Errorf("%w: column %d", ErrColumnIndex, r.Column)
	}
	if r.Row < 1 {
		return fmt.Errorf("%w: row %d", ErrCoordinate, r.Row)
	}
	return nil
}

// ColumnLetters returns the column part of the reference without markers.
func (r CellReference) ColumnLetters() string {
	s, err := ColumnString(r.Column)
	if err != nil {
		return "?"
	}
	return s
}

// String formats the reference, including any absolute markers.
func (r CellReference) String() string {
	var b strings.Builder
	if r.ColumnAbsolute {
		b.WriteByte('$')
	}
	b.WriteString(r.ColumnLetters())
	if r.RowAbsolute {
		b.WriteByte('$')
	}
	b.WriteString(strconv.Itoa(r.Row))
	return b.String()
}

// Relative strips both absolute markers.
func (r CellReference) Relative() CellReference {
	r.ColumnAbsolute = false
	r.RowAbsolute = false
	return r
}

// Absolute marks both axes absolute.
func (r CellReference) Absolute() CellReference {
	r.ColumnAbsolute = true
	r.RowAbsolute = true
	return r
}

// MakeAbsolute parses text and marks both axes absolute.
func MakeAbsolute(text string) (CellReference, error) {
	ref, err := Parse(text)
	if err != nil {
		return CellReference{}, err
	}
	return ref.Absolute(), nil
}

// Offset shifts the reference by dCol columns and dRow rows. Absolute
// markers are kept as they are.
func (r CellReference) Offset(dCol, dRow int) (CellReference, error) {
	out := r
	out.Column += dCol
	out.Row += dRow
	if err := out.Validate(); err != nil {
		return CellReference{}, fmt.Errorf("offset %s by (%d, %d): %w", r, dCol, dRow, err)
	}
	return out, nil
}

// Equal compares coordinates only; absolute markers are ignored.
func (r CellReference) Equal(o CellReference) bool {
	return r.Column == o.Column && r.Row == o.Row
}

// Less orders references row-major.
func (r CellReference) Less(o CellReference) bool {
	if r.Row != o.Row {
		return r.Row < o.Row
	}
	return r.Column < o.Column
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
