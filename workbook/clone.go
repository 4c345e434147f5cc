package workbook

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// Clone returns an independent copy of the workbook. Default cells are not
// copied.
func (wb *Workbook) Clone() (*Workbook, error) {
	out := &Workbook{
		active:     wb.active,
		epoch:      wb.epoch,
		styles:     wb.styles.clone(),
		strings:    NewSharedStrings(wb.strings.list),
		GuessTypes: wb.GuessTypes,
		Properties: wb.Properties,
	}
	out.Properties.Keywords = nil
	if err := deepcopy.Copy(&out.Properties.Keywords, wb.Properties.Keywords); err != nil {
		return nil, fmt.Errorf("copying properties: %w", err)
	}

	bySource := make(map[*Worksheet]*Worksheet, len(wb.sheets))
	for _, ws := range wb.sheets {
		c, err := ws.clone(out)
		if err != nil {
			return nil, err
		}
		bySource[ws] = c
		out.sheets = append(out.sheets, c)
	}
	for _, nr := range wb.names {
		nr.Worksheet = bySource[nr.Worksheet]
		out.names = append(out.names, nr)
	}
	return out, nil
}
