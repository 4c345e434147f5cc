package workbook

import (
	"fmt"
	"strings"

	"github.com/tsawler/xlkit/cellref"
)

// MergeCells records a merged range. The cells inside keep their content.
func (ws *Worksheet) MergeCells(ref string) error {
	rr, err := cellref.ParseRange(strings.ToUpper(ref))
	if err != nil {
		return err
	}
	rr = rr.Relative()
	for _, m := range ws.merges {
		if m.Equal(rr) {
			return nil
		}
	}
	ws.merges = append(ws.merges, rr)
	return nil
}

// UnmergeCells removes a merged range. Unmerging a range that was never
// merged fails with cellref.ErrCoordinate.
func (ws *Worksheet) UnmergeCells(ref string) error {
	rr, err := cellref.ParseRange(strings.ToUpper(ref))
	if err != nil {
		return err
	}
	for i, m := range ws.merges {
		if m.Equal(rr) {
			ws.merges = append(ws.merges[:i], ws.merges[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not merged", cellref.ErrCoordinate, rr)
}

// MergedCells returns the merged ranges in the order they were added.
func (ws *Worksheet) MergedCells() []cellref.RangeReference {
	out := make([]cellref.RangeReference, len(ws.merges))
	copy(out, ws.merges)
	return out
}

// FreezePanes freezes the rows above and the columns left of ref.
// Freezing at A1 unfreezes.
func (ws *Worksheet) FreezePanes(ref string) error {
	r, err := cellref.Parse(ref)
	if err != nil {
		return err
	}
	if r.Column == 1 && r.Row == 1 {
		ws.UnfreezePanes()
		return nil
	}
	ws.frozen = r.Relative()
	return nil
}

// UnfreezePanes removes any frozen pane.
func (ws *Worksheet) UnfreezePanes() {
	ws.frozen = cellref.CellReference{}
}

// FrozenPanes returns the top-left cell of the scrollable pane.
func (ws *Worksheet) FrozenPanes() (cellref.CellReference, bool) {
	return ws.frozen, ws.frozen.Column != 0
}

// SetAutoFilter sets the auto-filter range.
func (ws *Worksheet) SetAutoFilter(ref string) error {
	rr, err := cellref.ParseRange(strings.ToUpper(ref))
	if err != nil {
		return err
	}
	ws.autoFilter = rr.Relative()
	ws.hasFilter = true
	return nil
}

// UnsetAutoFilter removes the auto-filter.
func (ws *Worksheet) UnsetAutoFilter() {
	ws.autoFilter = cellref.RangeReference{}
	ws.hasFilter = false
}

// AutoFilter returns the auto-filter range.
func (ws *Worksheet) AutoFilter() (cellref.RangeReference, bool) {
	return ws.autoFilter, ws.hasFilter
}

// Default cell size in pixels.
const (
	DefaultColumnWidth = 64
	DefaultRowHeight   = 20
)

// PointPos returns the cell containing the point (left, top) in pixels.
func (ws *Worksheet) PointPos(left, top int) cellref.CellReference {
	return cellref.CellReference{
		Column: max(left, 0)/DefaultColumnWidth + 1,
		Row:    max(top, 0)/DefaultRowHeight + 1,
	}
}

// Anchor returns the pixel position of the top-left corner of ref.
func (ws *Worksheet) Anchor(ref cellref.CellReference) (left, top int) {
	return (ref.Column - 1) * DefaultColumnWidth, (ref.Row - 1) * DefaultRowHeight
}
