package workbook

import (
	"fmt"
	"sort"

	"github.com/tiendc/go-deepcopy"

	"github.com/tsawler/xlkit/cellref"
	"github.com/tsawler/xlkit/opc"
)

type cellKey struct {
	col, row int
}

// Worksheet is a grid of cells with its view and print settings.
type Worksheet struct {
	wb    *Workbook
	title string
	cells map[cellKey]*Cell
	rels  []opc.Relationship

	merges     []cellref.RangeReference
	frozen     cellref.CellReference
	autoFilter cellref.RangeReference
	hasFilter  bool

	PageSetup    PageSetup
	PageMargins  PageMargins
	HeaderFooter HeaderFooter
}

func (ws *Worksheet) init() {
	ws.cells = make(map[cellKey]*Cell)
	ws.PageSetup = DefaultPageSetup()
	ws.PageMargins = DefaultPageMargins()
}

// Workbook returns the owning workbook, or nil after removal.
func (ws *Worksheet) Workbook() *Workbook { return ws.wb }

// Title returns the sheet title.
func (ws *Worksheet) Title() string { return ws.title }

// SetTitle renames the sheet. A title used by another sheet is rejected.
func (ws *Worksheet) SetTitle(title string) error {
	if err := ValidateTitle(title); err != nil {
		return err
	}
	if ws.wb != nil && ws.wb.titleTaken(title, ws) {
		return fmt.Errorf("%w: %q is already in use", ErrSheetTitle, title)
	}
	ws.title = title
	return nil
}

// String returns a short description such as `<Worksheet "Sheet1">`.
func (ws *Worksheet) String() string {
	return fmt.Sprintf("<Worksheet %q>", ws.title)
}

// Describe returns a description of c qualified by the sheet title.
func (ws *Worksheet) Describe(c *Cell) string {
	return fmt.Sprintf("<Cell %s.%s>", ws.title, c.ref)
}

// Cell returns the cell at ref, creating it if needed.
func (ws *Worksheet) Cell(ref string) (*Cell, error) {
	r, err := cellref.Parse(ref)
	if err != nil {
		return nil, err
	}
	return ws.CellAt(r.Column, r.Row)
}

// MustCell is like Cell but panics on an invalid reference.
func (ws *Worksheet) MustCell(ref string) *Cell {
	c, err := ws.Cell(ref)
	if err != nil {
		panic(err)
	}
	return c
}

// CellAt returns the cell at the 1-based column and row, creating it if needed.
// A sheet removed from its workbook no longer hands out cells.
func (ws *Worksheet) CellAt(column, row int) (*Cell, error) {
	if ws.wb == nil {
		return nil, fmt.Errorf("%w: %s was removed from its workbook", ErrSheetNotFound, ws)
	}
	r, err := cellref.New(column, row)
	if err != nil {
		return nil, err
	}
	key := cellKey{r.Column, r.Row}
	if c, ok := ws.cells[key]; ok {
		return c, nil
	}
	c := &Cell{ref: r}
	ws.cells[key] = c
	return c, nil
}

// Lookup returns the cell at ref without creating it.
func (ws *Worksheet) Lookup(ref cellref.CellReference) (*Cell, bool) {
	c, ok := ws.cells[cellKey{ref.Column, ref.Row}]
	if !ok || c.IsDefault() {
		return nil, false
	}
	return c, true
}

// Cells returns the non-default cells in row-major order.
func (ws *Worksheet) Cells() []*Cell {
	out := make([]*Cell, 0, len(ws.cells))
	for _, c := range ws.cells {
		if !c.IsDefault() {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ref.Less(out[j].ref) })
	return out
}

// CellCount returns the number of non-default cells.
func (ws *Worksheet) CellCount() int {
	n := 0
	for _, c := range ws.cells {
		if !c.IsDefault() {
			n++
		}
	}
	return n
}

// GarbageCollect removes default cells from storage.
func (ws *Worksheet) GarbageCollect() {
	for key, c := range ws.cells {
		if c.IsDefault() {
			delete(ws.cells, key)
		}
	}
}

// Dimension returns the bounding range of non-default cells, or A1:A1.
func (ws *Worksheet) Dimension() cellref.RangeReference {
	cells := ws.Cells()
	if len(cells) == 0 {
		a1 := cellref.CellReference{Column: 1, Row: 1}
		return cellref.RangeReference{TopLeft: a1, BottomRight: a1}
	}
	rr := cellref.RangeReference{TopLeft: cells[0].ref, BottomRight: cells[0].ref}
	for _, c := range cells[1:] {
		rr = rr.Extend(c.ref)
	}
	return rr
}

// MaxRow returns the last row holding a non-default cell, or 0.
func (ws *Worksheet) MaxRow() int {
	row := 0
	for _, c := range ws.cells {
		if !c.IsDefault() && c.ref.Row > row {
			row = c.ref.Row
		}
	}
	return row
}

// MaxColumn returns the last column holding a non-default cell, or 0.
func (ws *Worksheet) MaxColumn() int {
	col := 0
	for _, c := range ws.cells {
		if !c.IsDefault() && c.ref.Column > col {
			col = c.ref.Column
		}
	}
	return col
}

// Range returns the cells of a range, row by row, creating them as needed.
// Text naming a range defined on this sheet is resolved first.
func (ws *Worksheet) Range(text string) ([][]*Cell, error) {
	rr, err := ws.NamedRange(text)
	if err != nil {
		rr, err = cellref.ParseRange(text)
		if err != nil {
			return nil, err
		}
	}
	return ws.cellsIn(rr)
}

func (ws *Worksheet) cellsIn(rr cellref.RangeReference) ([][]*Cell, error) {
	refs := rr.Cells()
	out := make([][]*Cell, len(refs))
	for i, row := range refs {
		out[i] = make([]*Cell, len(row))
		for j, ref := range row {
			c, err := ws.CellAt(ref.Column, ref.Row)
			if err != nil {
				return nil, err
			}
			out[i][j] = c
		}
	}
	return out, nil
}

// Rows returns every row from A1 to the bottom-right of the dimension.
func (ws *Worksheet) Rows() [][]*Cell {
	dim := ws.Dimension()
	rr := cellref.RangeReference{TopLeft: cellref.CellReference{Column: 1, Row: 1}, BottomRight: dim.BottomRight}
	rows, _ := ws.cellsIn(rr)
	return rows
}

// Columns returns every column from A1 to the bottom-right of the dimension.
func (ws *Worksheet) Columns() [][]*Cell {
	rows := ws.Rows()
	if len(rows) == 0 {
		return nil
	}
	cols := make([][]*Cell, len(rows[0]))
	for j := range cols {
		cols[j] = make([]*Cell, len(rows))
		for i := range rows {
			cols[j][i] = rows[i][j]
		}
	}
	return cols
}

// Relationships returns the sheet's relationships in id order of creation.
func (ws *Worksheet) Relationships() []opc.Relationship {
	out := make([]opc.Relationship, len(ws.rels))
	copy(out, ws.rels)
	return out
}

// AddRelationship appends a relationship, assigning the next free "rIdN"
// when rel.ID is empty. It returns the id used.
func (ws *Worksheet) AddRelationship(rel opc.Relationship) string {
	if rel.ID == "" {
		rel.ID = ws.nextRelID()
	}
	ws.rels = append(ws.rels, rel)
	return rel.ID
}

func (ws *Worksheet) nextRelID() string {
	for n := len(ws.rels) + 1; ; n++ {
		id := fmt.Sprintf("rId%d", n)
		if _, ok := opc.FindByID(ws.rels, id); !ok {
			return id
		}
	}
}

func (ws *Worksheet) clone(wb *Workbook) (*Worksheet, error) {
	out := &Worksheet{
		wb:         wb,
		title:      ws.title,
		cells:      make(map[cellKey]*Cell, len(ws.cells)),
		frozen:     ws.frozen,
		autoFilter: ws.autoFilter,
		hasFilter:  ws.hasFilter,
	}
	for _, pair := range []struct{ dst, src any }{
		{&out.rels, ws.rels},
		{&out.merges, ws.merges},
		{&out.PageSetup, ws.PageSetup},
		{&out.PageMargins, ws.PageMargins},
		{&out.HeaderFooter, ws.HeaderFooter},
	} {
		if err := deepcopy.Copy(pair.dst, pair.src); err != nil {
			return nil, fmt.Errorf("copying sheet %q: %w", ws.title, err)
		}
	}
	for key, c := range ws.cells {
		if !c.IsDefault() {
			out.cells[key] = c.clone()
		}
	}
	return out, nil
}
