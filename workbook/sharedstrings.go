package workbook

// SharedStrings is a deduplicated string pool referenced by index.
type SharedStrings struct {
	list  []string
	index map[string]int
}

// NewSharedStrings returns a table seeded with list. Duplicates keep their
// first index for lookups but stay addressable by position.
func NewSharedStrings(list []string) *SharedStrings {
	s := &SharedStrings{index: make(map[string]int, len(list))}
	for _, text := range list {
		s.list = append(s.list, text)
		if _, ok := s.index[text]; !ok {
			s.index[text] = len(s.list) - 1
		}
	}
	return s
}

// Add returns the index of text, appending it if needed.
func (s *SharedStrings) Add(text string) int {
	if i, ok := s.index[text]; ok {
		return i
	}
	s.list = append(s.list, text)
	s.index[text] = len(s.list) - 1
	return len(s.list) - 1
}

// Get returns the string at index.
func (s *SharedStrings) Get(index int) (string, bool) {
	if index < 0 || index >= len(s.list) {
		return "", false
	}
	return s.list[index], true
}

// Len returns the number of entries.
func (s *SharedStrings) Len() int { return len(s.list) }

// Strings returns the entries in index order.
func (s *SharedStrings) Strings() []string {
	out := make([]string, len(s.list))
	copy(out, s.list)
	return out
}
