package xlkit

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/xlkit/numfmt"
	"github.com/tsawler/xlkit/value"
	"github.com/tsawler/xlkit/workbook"
	"github.com/tsawler/xlkit/xlsx"
)

var errNoSource = errors.New("xlkit: no workbook source specified")

// Loader provides a fluent interface for loading workbooks.
// Each configuration method returns a new Loader instance, making it
// safe for concurrent use and allowing method chaining.
type Loader struct {
	// Source (exactly one is set)
	filename string
	data     []byte
	reader   io.ReaderAt
	size     int64

	// Configuration
	options LoadOptions

	// Accumulated error (fail-fast)
	err error
}

// SheetCell is a non-default cell together with the sheet that holds it.
type SheetCell struct {
	Sheet     string
	Reference string
	Value     value.Value
	Formula   string
	Format    string
}

// clone creates a shallow copy of the Loader with a deep copy of options.
func (l *Loader) clone() *Loader {
	return &Loader{
		filename: l.filename,
		data:     l.data,
		reader:   l.reader,
		size:     l.size,
		options:  l.options.clone(),
		err:      l.err,
	}
}

// ============================================================================
// Configuration Methods (return new Loader instance)
// ============================================================================

// DataOnly keeps cached formula results and drops the formulas themselves.
func (l *Loader) DataOnly() *Loader {
	n := l.clone()
	n.options.dataOnly = true
	return n
}

// GuessTypes re-interprets string cells as numbers, percentages, or times
// where their text allows it.
func (l *Loader) GuessTypes() *Loader {
	n := l.clone()
	n.options.guessTypes = true
	return n
}

// Sheets restricts the Cells terminal to the named sheets.
// Multiple calls are cumulative.
func (l *Loader) Sheets(titles ...string) *Loader {
	n := l.clone()
	n.options.sheets = append(n.options.sheets, titles...)
	return n
}

// Logger routes load diagnostics to log.
func (l *Loader) Logger(log logrus.FieldLogger) *Loader {
	n := l.clone()
	n.options.logger = log
	return n
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Workbook loads and returns the whole workbook.
func (l *Loader) Workbook() (*workbook.Workbook, error) {
	if l.err != nil {
		return nil, l.err
	}

	opts := l.options.loadOptions()
	switch {
	case l.data != nil:
		return xlsx.LoadBytes(l.data, opts...)
	case l.reader != nil:
		return xlsx.LoadReader(l.reader, l.size, opts...)
	case l.filename != "":
		return xlsx.Load(l.filename, opts...)
	default:
		return nil, errNoSource
	}
}

// SheetTitles returns the worksheet titles in workbook order.
func (l *Loader) SheetTitles() ([]string, error) {
	wb, err := l.Workbook()
	if err != nil {
		return nil, err
	}
	return wb.SheetTitles(), nil
}

// Sheet returns the worksheet with the given title, or the active
// worksheet when title is empty.
func (l *Loader) Sheet(title string) (*workbook.Worksheet, error) {
	wb, err := l.Workbook()
	if err != nil {
		return nil, err
	}
	if title == "" {
		return wb.Active(), nil
	}
	return wb.SheetByTitle(title)
}

// Rows returns the values of a worksheet as a dense grid from A1 to the
// bottom-right of its dimension. Empty cells are null values.
func (l *Loader) Rows(title string) ([][]value.Value, error) {
	ws, err := l.Sheet(title)
	if err != nil {
		return nil, err
	}
	if ws.CellCount() == 0 {
		return nil, nil
	}

	rows := ws.Rows()
	out := make([][]value.Value, len(rows))
	for i, row := range rows {
		out[i] = make([]value.Value, len(row))
		for j, c := range row {
			out[i][j] = c.Value()
		}
	}
	ws.GarbageCollect()
	return out, nil
}

// Cells returns every non-default cell of the selected sheets in sheet
// order, then row-major order.
func (l *Loader) Cells() ([]SheetCell, error) {
	wb, err := l.Workbook()
	if err != nil {
		return nil, err
	}

	sheets := wb.Sheets()
	if len(l.options.sheets) > 0 {
		sheets = sheets[:0:0]
		for _, title := range l.options.sheets {
			ws, err := wb.SheetByTitle(title)
			if err != nil {
				return nil, fmt.Errorf("selecting sheet: %w", err)
			}
			if !slices.Contains(sheets, ws) {
				sheets = append(sheets, ws)
			}
		}
	}

	var out []SheetCell
	for _, ws := range sheets {
		for _, c := range ws.Cells() {
			sc := SheetCell{
				Sheet:     ws.Title(),
				Reference: c.Reference().String(),
				Value:     c.Value(),
			}
			if f, ok := c.Formula(); ok {
				sc.Formula = f
			}
			if code, ok := wb.Styles().Format(c.Style()); ok && code != numfmt.General {
				sc.Format = code
			}
			out = append(out, sc)
		}
	}
	return out, nil
}
