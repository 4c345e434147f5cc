package cellref

import (
	"fmt"
	"strings"
)

// RangeReference is a rectangular block of cells given by two corners.
// Parsing normalizes the corners so TopLeft is never below or right of
// BottomRight.
type RangeReference struct {
	TopLeft     CellReference
	BottomRight CellReference
}

// NewRange builds a range from two corners in any order.
func NewRange(a, b CellReference) RangeReference {
	tl, br := a, b
	if br.Column < tl.Column {
		tl.Column, br.Column = br.Column, tl.Column
		tl.ColumnAbsolute, br.ColumnAbsolute = br.ColumnAbsolute, tl.ColumnAbsolute
	}
	if br.Row < tl.Row {
		tl.Row, br.Row = br.Row, tl.Row
		tl.RowAbsolute, br.RowAbsolute = br.RowAbsolute, tl.RowAbsolute
	}
	return RangeReference{TopLeft: tl, BottomRight: br}
}

// MustParseRange is like ParseRange but panics on error.
func MustParseRange(text string) RangeReference {
	rr, err := ParseRange(text)
	if err != nil {
		panic(err)
	}
	return rr
}

// ParseRange parses "A1:B2" or a single "A1" (a 1x1 range).
func ParseRange(text string) (RangeReference, error) {
	parts := strings.Split(text, ":")
	switch len(parts) {
	case 1:
		ref, err := Parse(parts[0])
		if err != nil {
			return RangeReference{}, err
		}
		return RangeReference{TopLeft: ref, BottomRight: ref}, nil
	case 2:
		a, err := Parse(parts[0])
		if err != nil {
			return RangeReference{}, fmt.Errorf("invalid start cell: %w", err)
		}
		b, err := Parse(parts[1])
		if err != nil {
			return RangeReference{}, fmt.Errorf("invalid end cell: %w", err)
		}
		return NewRange(a, b), nil
	default:
		return RangeReference{}, fmt.Errorf("%w: invalid range %q", ErrCoordinate, text)
	}
}

// MakeAbsoluteRange parses text and marks every axis of both corners absolute.
func MakeAbsoluteRange(text string) (RangeReference, error) {
	rr, err := ParseRange(text)
	if err != nil {
		return RangeReference{}, err
	}
	return rr.Absolute(), nil
}

// String always renders both corners, e.g. "A1:A1".
func (r RangeReference) String() string {
	return r.TopLeft.String() + ":" + r.BottomRight.String()
}

// Absolute marks both corners absolute.
func (r RangeReference) Absolute() RangeReference {
	return RangeReference{TopLeft: r.TopLeft.Absolute(), BottomRight: r.BottomRight.Absolute()}
}

// Relative strips every absolute marker.
func (r RangeReference) Relative() RangeReference {
	return RangeReference{TopLeft: r.TopLeft.Relative(), BottomRight: r.BottomRight.Relative()}
}

// Width is the number of columns covered.
func (r RangeReference) Width() int {
	return r.BottomRight.Column - r.TopLeft.Column + 1
}

// Height is the number of rows covered.
func (r RangeReference) Height() int {
	return r.BottomRight.Row - r.TopLeft.Row + 1
}

// IsSingleCell reports whether the range covers exactly one cell.
func (r RangeReference) IsSingleCell() bool {
	return r.Width() == 1 && r.Height() == 1
}

// Offset translates both corners identically.
func (r RangeReference) Offset(dCol, dRow int) (RangeReference, error) {
	tl, err := r.TopLeft.Offset(dCol, dRow)
	if err != nil {
		return RangeReference{}, err
	}
	br, err := r.BottomRight.Offset(dCol, dRow)
	if err != nil {
		return RangeReference{}, err
	}
	return RangeReference{TopLeft: tl, BottomRight: br}, nil
}

// Contains reports whether ref lies inside the range.
func (r RangeReference) Contains(ref CellReference) bool {
	return ref.Column >= r.TopLeft.Column && ref.Column <= r.BottomRight.Column &&
		ref.Row >= r.TopLeft.Row && ref.Row <= r.BottomRight.Row
}

// Intersects reports whether the two ranges share at least one cell.
func (r RangeReference) Intersects(o RangeReference) bool {
	return r.TopLeft.Column <= o.BottomRight.Column && o.TopLeft.Column <= r.BottomRight.Column &&
		r.TopLeft.Row <= o.BottomRight.Row && o.TopLeft.Row <= r.BottomRight.Row
}

// Equal compares corner coordinates, ignoring absolute markers.
func (r RangeReference) Equal(o RangeReference) bool {
	return r.TopLeft.Equal(o.TopLeft) && r.BottomRight.Equal(o.BottomRight)
}

// Cells lists every reference in the range, row by row.
func (r RangeReference) Cells() [][]CellReference {
	rows := make([][]CellReference, 0, r.Height())
	for row := r.TopLeft.Row; row <= r.BottomRight.Row; row++ {
		line := make([]CellReference, 0, r.Width())
		for col := r.TopLeft.Column; col <= r.BottomRight.Column; col++ {
			line = append(line, CellReference{Column: col, Row: row})
		}
		rows = append(rows, line)
	}
	return rows
}

// Extend grows the range so that it also covers ref.
func (r RangeReference) Extend(ref CellReference) RangeReference {
	out := r
	if ref.Column < out.TopLeft.Column {
		out.TopLeft.Column = ref.Column
	}
	if ref.Row < out.TopLeft.Row {
		out.TopLeft.Row = ref.Row
	}
	if ref.Column > out.BottomRight.Column {
		out.BottomRight.Column = ref.Column
	}
	if ref.Row > out.BottomRight.Row {
		out.BottomRight.Row = ref.Row
	}
	return out
}
