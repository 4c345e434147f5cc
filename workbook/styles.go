package workbook

import (
	"github.com/tsawler/xlkit/numfmt"
)

// Styles is the workbook's table of number-format codes. A cell's style
// index selects one entry; index 0 is always General.
type Styles struct {
	codes []string
	index map[string]int
}

func newStyles() *Styles {
	return &Styles{
		codes: []string{numfmt.General},
		index: map[string]int{numfmt.General: 0},
	}
}

// Intern returns the index of code, adding it if needed. The empty code is General.
func (s *Styles) Intern(code string) int {
	if code == "" {
		return 0
	}
	if i, ok := s.index[code]; ok {
		return i
	}
	s.codes = append(s.codes, code)
	s.index[code] = len(s.codes) - 1
	return len(s.codes) - 1
}

// Format returns the code at index.
func (s *Styles) Format(index int) (string, bool) {
	if index < 0 || index >= len(s.codes) {
		return "", false
	}
	return s.codes[index], true
}

// Category classifies the code at index. Unknown indices are General.
func (s *Styles) Category(index int) numfmt.Category {
	code, ok := s.Format(index)
	if !ok {
		return numfmt.CategoryGeneral
	}
	return numfmt.Classify(code)
}

// Len returns the number of entries.
func (s *Styles) Len() int { return len(s.codes) }

// Codes returns the codes in index order.
func (s *Styles) Codes() []string {
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}

func (s *Styles) clone() *Styles {
	out := newStyles()
	for _, code := range s.codes[1:] {
		out.Intern(code)
	}
	return out
}
