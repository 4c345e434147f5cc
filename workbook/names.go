package workbook

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tsawler/xlkit/cellref"
)

// NamedRange binds a workbook-level name to a range of one worksheet.
type NamedRange struct {
	Name      string
	Worksheet *Worksheet
	Range     cellref.RangeReference
}

var namePattern = regexp.MustCompile(`^[A-Za-z_\\][A-Za-z0-9_.\\]*$`)

// ValidateName rejects names that are malformed or read as cell references.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q is not a valid name", ErrNamedRange, name)
	}
	if _, err := cellref.Parse(name); err == nil {
		return fmt.Errorf("%w: %q is a cell reference", ErrNamedRange, name)
	}
	return nil
}

// CreateNamedRange defines or redefines name as ref on ws.
func (wb *Workbook) CreateNamedRange(name string, ws *Worksheet, ref string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if wb.Index(ws) < 0 {
		return fmt.Errorf("%w: worksheet is not part of this workbook", ErrNamedRange)
	}
	rr, err := cellref.ParseRange(ref)
	if err != nil {
		return err
	}

	nr := NamedRange{Name: name, Worksheet: ws, Range: rr}
	for i := range wb.names {
		if strings.EqualFold(wb.names[i].Name, name) {
			wb.names[i] = nr
			return nil
		}
	}
	wb.names = append(wb.names, nr)
	return nil
}

// NamedRange returns the definition of name.
func (wb *Workbook) NamedRange(name string) (NamedRange, error) {
	for _, nr := range wb.names {
		if strings.EqualFold(nr.Name, name) {
			return nr, nil
		}
	}
	return NamedRange{}, fmt.Errorf("%w: %q is not defined", ErrNamedRange, name)
}

// HasNamedRange reports whether name is defined.
func (wb *Workbook) HasNamedRange(name string) bool {
	_, err := wb.NamedRange(name)
	return err == nil
}

// NamedRanges returns all definitions in creation order.
func (wb *Workbook) NamedRanges() []NamedRange {
	out := make([]NamedRange, len(wb.names))
	copy(out, wb.names)
	return out
}

// RemoveNamedRange deletes name.
func (wb *Workbook) RemoveNamedRange(name string) error {
	for i, nr := range wb.names {
		if strings.EqualFold(nr.Name, name) {
			wb.names = append(wb.names[:i], wb.names[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not defined", ErrNamedRange, name)
}

// NamedRange resolves name to a range of this sheet. A name defined on
// another sheet is an error.
func (ws *Worksheet) NamedRange(name string) (cellref.RangeReference, error) {
	if ws.wb == nil {
		return cellref.RangeReference{}, fmt.Errorf("%w: sheet has no workbook", ErrNamedRange)
	}
	nr, err := ws.wb.NamedRange(name)
	if err != nil {
		return cellref.RangeReference{}, err
	}
	if nr.Worksheet != ws {
		return cellref.RangeReference{}, fmt.Errorf("%w: %q is defined on %s", ErrNamedRange, name, nr.Worksheet)
	}
	return nr.Range, nil
}
