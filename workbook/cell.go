package workbook

import (
	"fmt"

	"github.com/tsawler/xlkit/cellref"
	"github.com/tsawler/xlkit/value"
)

// Comment is a note attached to a cell.
type Comment struct {
	Text   string
	Author string
}

// Cell is a single cell of a worksheet.
type Cell struct {
	ref       cellref.CellReference
	value     value.Value
	formula   string
	style     int
	comment   *Comment
	hyperlink string
}

// Reference returns the cell's position. It is always relative.
func (c *Cell) Reference() cellref.CellReference { return c.ref }

// Column returns the 1-based column index.
func (c *Cell) Column() int { return c.ref.Column }

// Row returns the 1-based row index.
func (c *Cell) Row() int { return c.ref.Row }

// Value returns the stored value. For formula cells this is the cached
// result, which may be null.
func (c *Cell) Value() value.Value { return c.value }

// SetValue replaces the value. A formula value moves into the formula slot
// and clears the cached result; any other value removes the formula.
func (c *Cell) SetValue(v value.Value) {
	if text, err := v.AsFormula(); err == nil {
		c.formula = text
		c.value = value.Null()
		return
	}
	c.value = v
	c.formula = ""
}

// DataType returns KindFormula for formula cells and the value's kind otherwise.
func (c *Cell) DataType() value.Kind {
	if c.formula != "" {
		return value.KindFormula
	}
	return c.value.Kind()
}

// Formula returns the formula text without a leading '='.
func (c *Cell) Formula() (string, bool) {
	return c.formula, c.formula != ""
}

// HasFormula reports whether the cell carries a formula.
func (c *Cell) HasFormula() bool { return c.formula != "" }

// SetFormula stores formula text and clears the cached result.
func (c *Cell) SetFormula(text string) {
	c.SetValue(value.Formula(text))
}

// SetFormulaResult stores formula text together with its cached result.
func (c *Cell) SetFormulaResult(text string, cached value.Value) {
	c.SetFormula(text)
	if cached.Kind() != value.KindFormula {
		c.value = cached
	}
}

// ClearFormula drops the formula text and keeps the cached result.
func (c *Cell) ClearFormula() { c.formula = "" }

// Style returns the index of the cell's number format in the workbook style table.
func (c *Cell) Style() int { return c.style }

// SetStyle sets the style index. Index 0 is the default style.
func (c *Cell) SetStyle(index int) { c.style = index }

// Comment returns the cell's comment.
func (c *Cell) Comment() (Comment, bool) {
	if c.comment == nil {
		return Comment{}, false
	}
	return *c.comment, true
}

// HyperlinkID returns the relationship id of the cell's hyperlink, if any.
func (c *Cell) HyperlinkID() string { return c.hyperlink }

// IsDefault reports whether the cell carries no observable content.
func (c *Cell) IsDefault() bool {
	return c.value.IsNull() && c.formula == "" && c.comment == nil && c.hyperlink == "" && c.style == 0
}

// String returns a short description such as "<Cell A1>".
func (c *Cell) String() string {
	return fmt.Sprintf("<Cell %s>", c.ref)
}

func (c *Cell) clone() *Cell {
	out := *c
	if c.comment != nil {
		cm := *c.comment
		out.comment = &cm
	}
	return &out
}
