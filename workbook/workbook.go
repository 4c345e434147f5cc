package workbook

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tsawler/xlkit/value"
)

// MaxTitleLength is the longest sheet title in characters.
const MaxTitleLength = 31

const forbiddenTitleChars = `[]*:?/\`

// Properties are the package's core document properties.
type Properties struct {
	Title          string
	Subject        string
	Creator        string
	Keywords       []string
	Description    string
	LastModifiedBy string
	Created        time.Time
	Modified       time.Time
}

// Workbook is a spreadsheet document.
type Workbook struct {
	sheets  []*Worksheet
	active  int
	epoch   value.Epoch
	styles  *Styles
	strings *SharedStrings
	names   []NamedRange

	// GuessTypes makes text assignments infer numbers, percentages and times.
	GuessTypes bool

	Properties Properties
}

// New returns a workbook with one empty sheet titled "Sheet1".
func New() *Workbook {
	wb := NewEmpty()
	ws := &Worksheet{wb: wb, title: "Sheet1"}
	ws.init()
	wb.sheets = append(wb.sheets, ws)
	return wb
}

// NewEmpty returns a workbook without sheets. Loaders populate it.
func NewEmpty() *Workbook {
	return &Workbook{
		epoch:   value.Windows1900,
		styles:  newStyles(),
		strings: NewSharedStrings(nil),
	}
}

// Epoch returns the calendar origin of date serials.
func (wb *Workbook) Epoch() value.Epoch { return wb.epoch }

// SetEpoch changes the calendar origin. Stored serials are not rewritten.
func (wb *Workbook) SetEpoch(e value.Epoch) { wb.epoch = e }

// Styles returns the number-format table.
func (wb *Workbook) Styles() *Styles { return wb.styles }

// SharedStrings returns the shared-string table read from the package.
// Saving appends new strings after the existing ones.
func (wb *Workbook) SharedStrings() *SharedStrings { return wb.strings }

// SetSharedStrings replaces the shared-string table.
func (wb *Workbook) SetSharedStrings(s *SharedStrings) { wb.strings = s }

// Sheets returns the worksheets in order.
func (wb *Workbook) Sheets() []*Worksheet {
	out := make([]*Worksheet, len(wb.sheets))
	copy(out, wb.sheets)
	return out
}

// SheetCount returns the number of worksheets.
func (wb *Workbook) SheetCount() int { return len(wb.sheets) }

// SheetTitles returns the worksheet titles in order.
func (wb *Workbook) SheetTitles() []string {
	titles := make([]string, len(wb.sheets))
	for i, ws := range wb.sheets {
		titles[i] = ws.title
	}
	return titles
}

// Sheet returns the worksheet at index (0-based).
func (wb *Workbook) Sheet(index int) (*Worksheet, error) {
	if index < 0 || index >= len(wb.sheets) {
		return nil, fmt.Errorf("%w: index %d out of range (0-%d)", ErrSheetNotFound, index, len(wb.sheets)-1)
	}
	return wb.sheets[index], nil
}

// SheetByTitle returns the worksheet with the given title, ignoring case.
func (wb *Workbook) SheetByTitle(title string) (*Worksheet, error) {
	for _, ws := range wb.sheets {
		if strings.EqualFold(ws.title, title) {
			return ws, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, title)
}

// Index returns the position of ws, or -1.
func (wb *Workbook) Index(ws *Worksheet) int {
	for i, s := range wb.sheets {
		if s == ws {
			return i
		}
	}
	return -1
}

// Active returns the active worksheet, or nil for an empty workbook.
func (wb *Workbook) Active() *Worksheet {
	if len(wb.sheets) == 0 {
		return nil
	}
	return wb.sheets[wb.active]
}

// ActiveIndex returns the position of the active worksheet.
func (wb *Workbook) ActiveIndex() int { return wb.active }

// SetActive selects the active worksheet by index.
func (wb *Workbook) SetActive(index int) error {
	if index < 0 || index >= len(wb.sheets) {
		return fmt.Errorf("%w: index %d out of range", ErrSheetNotFound, index)
	}
	wb.active = index
	return nil
}

// CreateSheet appends a worksheet. An empty title becomes "Sheet<N>"; a
// title already in use gets the lowest free numeric suffix.
func (wb *Workbook) CreateSheet(title string) (*Worksheet, error) {
	if title == "" {
		title = "Sheet" + strconv.Itoa(len(wb.sheets)+1)
	}
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	title, err := wb.UniqueSheetName(title)
	if err != nil {
		return nil, err
	}

	ws := &Worksheet{wb: wb, title: title}
	ws.init()
	wb.sheets = append(wb.sheets, ws)
	return ws, nil
}

// RemoveSheet deletes ws and the named ranges defined on it.
func (wb *Workbook) RemoveSheet(ws *Worksheet) error {
	i := wb.Index(ws)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrSheetNotFound, ws.title)
	}
	wb.sheets = append(wb.sheets[:i], wb.sheets[i+1:]...)

	kept := wb.names[:0]
	for _, nr := range wb.names {
		if nr.Worksheet != ws {
			kept = append(kept, nr)
		}
	}
	wb.names = kept

	if wb.active >= len(wb.sheets) {
		wb.active = max(len(wb.sheets)-1, 0)
	}
	ws.wb = nil
	return nil
}

// ValidateTitle checks length and forbidden characters.
func ValidateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: empty title", ErrSheetTitle)
	}
	if n := utf8.RuneCountInString(title); n > MaxTitleLength {
		return fmt.Errorf("%w: %q has %d characters, maximum is %d", ErrSheetTitle, title, n, MaxTitleLength)
	}
	if i := strings.IndexAny(title, forbiddenTitleChars); i >= 0 {
		return fmt.Errorf("%w: %q contains %q", ErrSheetTitle, title, title[i])
	}
	return nil
}

func (wb *Workbook) titleTaken(title string, except *Worksheet) bool {
	for _, ws := range wb.sheets {
		if ws != except && strings.EqualFold(ws.title, title) {
			return true
		}
	}
	return false
}

// UniqueSheetName returns title, or title with the lowest numeric suffix
// that no sheet uses.
func (wb *Workbook) UniqueSheetName(title string) (string, error) {
	return wb.uniqueTitle(title, nil)
}

func (wb *Workbook) uniqueTitle(title string, except *Worksheet) (string, error) {
	if !wb.titleTaken(title, except) {
		return title, nil
	}
	for n := 1; ; n++ {
		candidate := title + strconv.Itoa(n)
		if err := ValidateTitle(candidate); err != nil {
			return "", err
		}
		if !wb.titleTaken(candidate, except) {
			return candidate, nil
		}
	}
}
