package workbook

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"

	"github.com/tsawler/xlkit/cellref"
	"github.com/tsawler/xlkit/numfmt"
	"github.com/tsawler/xlkit/value"
)

// Format codes applied by the typed setters.
const (
	DateFormat     = numfmt.DateISO
	DateTimeFormat = numfmt.DateTime
	DurationFormat = "[h]:mm:ss"
)

// NumberFormat returns the format code of the cell at ref.
func (ws *Worksheet) NumberFormat(ref string) (string, error) {
	c, err := ws.Cell(ref)
	if err != nil {
		return "", err
	}
	return ws.formatOf(c), nil
}

func (ws *Worksheet) formatOf(c *Cell) string {
	code, ok := ws.wb.styles.Format(c.style)
	if !ok {
		return numfmt.General
	}
	return code
}

// SetNumberFormat assigns a format code to the cell at ref.
func (ws *Worksheet) SetNumberFormat(ref, code string) error {
	c, err := ws.Cell(ref)
	if err != nil {
		return err
	}
	c.style = ws.wb.styles.Intern(code)
	return nil
}

// IsDate reports whether the cell holds a number under a date or time format.
func (ws *Worksheet) IsDate(ref string) bool {
	c, err := ws.Cell(ref)
	if err != nil {
		return false
	}
	return ws.isDate(c)
}

func (ws *Worksheet) isDate(c *Cell) bool {
	return c.value.Kind() == value.KindNumber && ws.wb.styles.Category(c.style).IsDateLike()
}

// TimeValue converts the cell's numeric value with the workbook epoch.
func (ws *Worksheet) TimeValue(ref string) (time.Time, error) {
	c, err := ws.Cell(ref)
	if err != nil {
		return time.Time{}, err
	}
	return c.value.AsTime(ws.wb.epoch)
}

// SetText assigns text. With GuessTypes enabled the text is inferred as a
// number, percentage or time first. A date format left from an earlier
// value is dropped when the new value is not a date.
func (ws *Worksheet) SetText(ref, text string) error {
	c, err := ws.Cell(ref)
	if err != nil {
		return err
	}
	ws.setText(c, text)
	return nil
}

func (ws *Worksheet) setText(c *Cell, text string) {
	if !ws.wb.GuessTypes {
		c.SetValue(value.String(text))
		ws.dropDateFormat(c)
		return
	}
	v, code := value.GuessType(text)
	c.SetValue(v)
	if code != "" {
		c.style = ws.wb.styles.Intern(code)
		return
	}
	ws.dropDateFormat(c)
}

func (ws *Worksheet) dropDateFormat(c *Cell) {
	if ws.wb.styles.Category(c.style).IsDateLike() {
		c.style = 0
	}
}

// SetTime stores t as a serial under the workbook epoch with a date format,
// or a date-time format when t has a clock part.
func (ws *Worksheet) SetTime(ref string, t time.Time) error {
	c, err := ws.Cell(ref)
	if err != nil {
		return err
	}
	ws.setTime(c, t)
	return nil
}

func (ws *Worksheet) setTime(c *Cell, t time.Time) {
	c.SetValue(value.Time(t, ws.wb.epoch))
	h, m, s := t.Clock()
	if h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0 {
		c.style = ws.wb.styles.Intern(DateFormat)
	} else {
		c.style = ws.wb.styles.Intern(DateTimeFormat)
	}
}

// SetDuration stores d as a fractional number of days with an elapsed-time format.
func (ws *Worksheet) SetDuration(ref string, d time.Duration) error {
	c, err := ws.Cell(ref)
	if err != nil {
		return err
	}
	c.SetValue(value.Number(value.DurationToSerial(d)))
	c.style = ws.wb.styles.Intern(DurationFormat)
	return nil
}

// SetError stores an error value given as its token, such as "#N/A".
func (ws *Worksheet) SetError(ref, token string) error {
	code, err := value.ParseErrorCode(token)
	if err != nil {
		return err
	}
	c, err := ws.Cell(ref)
	if err != nil {
		return err
	}
	v, err := value.Error(code)
	if err != nil {
		return err
	}
	c.SetValue(v)
	return nil
}

// Set assigns a Go value to the cell at ref. Supported types are nil, bool,
// integers, floats, string (through SetText), time.Time, time.Duration and
// value.Value.
func (ws *Worksheet) Set(ref string, v any) error {
	c, err := ws.Cell(ref)
	if err != nil {
		return err
	}
	return ws.set(c, v)
}

func (ws *Worksheet) set(c *Cell, v any) error {
	switch x := v.(type) {
	case nil:
		c.SetValue(value.Null())
	case value.Value:
		c.SetValue(x)
	case bool:
		c.SetValue(value.Bool(x))
	case string:
		ws.setText(c, x)
	case time.Time:
		ws.setTime(c, x)
	case time.Duration:
		c.SetValue(value.Number(value.DurationToSerial(x)))
		c.style = ws.wb.styles.Intern(DurationFormat)
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			c.SetValue(value.Number(float64(rv.Int())))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			c.SetValue(value.Number(float64(rv.Uint())))
		case reflect.Float32, reflect.Float64:
			f := rv.Float()
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("%w: %v is not a finite number", value.ErrDataType, f)
			}
			c.SetValue(value.Number(f))
		default:
			return fmt.Errorf("%w: cannot store %T", value.ErrDataType, v)
		}
	}
	return nil
}

// Append writes values into the row after the last non-default row,
// starting at column A.
func (ws *Worksheet) Append(values []any) error {
	row := ws.MaxRow() + 1
	for i, v := range values {
		c, err := ws.CellAt(i+1, row)
		if err != nil {
			return err
		}
		if err := ws.set(c, v); err != nil {
			return err
		}
	}
	return nil
}

// AppendMap writes values keyed by column letters into the next row.
func (ws *Worksheet) AppendMap(values map[string]any) error {
	row := ws.MaxRow() + 1
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		col, err := cellref.ColumnIndex(k)
		if err != nil {
			return err
		}
		c, err := ws.CellAt(col, row)
		if err != nil {
			return err
		}
		if err := ws.set(c, values[k]); err != nil {
			return err
		}
	}
	return nil
}

// AppendIndexed writes values keyed by 0-based column index into the next row.
func (ws *Worksheet) AppendIndexed(values map[int]any) error {
	row := ws.MaxRow() + 1
	keys := make([]int, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		c, err := ws.CellAt(k+1, row)
		if err != nil {
			return err
		}
		if err := ws.set(c, values[k]); err != nil {
			return err
		}
	}
	return nil
}
