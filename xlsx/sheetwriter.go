package xlsx

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/tsawler/xlkit/cellref"
	"github.com/tsawler/xlkit/value"
	"github.com/tsawler/xlkit/workbook"
)

type worksheetOut struct {
	XMLName       xml.Name         `xml:"worksheet"`
	Xmlns         string           `xml:"xmlns,attr"`
	XmlnsR        string           `xml:"xmlns:r,attr"`
	SheetPr       sheetPrOut       `xml:"sheetPr"`
	Dimension     refOut           `xml:"dimension"`
	SheetViews    sheetViewsOut    `xml:"sheetViews"`
	SheetFormatPr sheetFormatPrOut `xml:"sheetFormatPr"`
	SheetData     sheetDataOut     `xml:"sheetData"`
	AutoFilter    *refOut          `xml:"autoFilter"`
	MergeCells    *mergeCellsOut   `xml:"mergeCells"`
	Hyperlinks    *hyperlinksOut   `xml:"hyperlinks"`
	PrintOptions  *printOptionsOut `xml:"printOptions"`
	PageMargins   pageMarginsOut   `xml:"pageMargins"`
	PageSetup     *pageSetupOut    `xml:"pageSetup"`
	HeaderFooter  *headerFooterOut `xml:"headerFooter"`
}

type sheetPrOut struct {
	OutlinePr struct {
		SummaryBelow string `xml:"summaryBelow,attr"`
		SummaryRight string `xml:"summaryRight,attr"`
	} `xml:"outlinePr"`
	PageSetUpPr *pageSetUpPrOut `xml:"pageSetUpPr"`
}

type pageSetUpPrOut struct {
	FitToPage string `xml:"fitToPage,attr"`
}

type refOut struct {
	Ref string `xml:"ref,attr"`
}

type sheetViewsOut struct {
	SheetView struct {
		WorkbookViewID int            `xml:"workbookViewId,attr"`
		Pane           *paneOut       `xml:"pane"`
		Selection      []selectionOut `xml:"selection"`
	} `xml:"sheetView"`
}

type paneOut struct {
	XSplit      int    `xml:"xSplit,attr,omitempty"`
	YSplit      int    `xml:"ySplit,attr,omitempty"`
	TopLeftCell string `xml:"topLeftCell,attr"`
	ActivePane  string `xml:"activePane,attr"`
	State       string `xml:"state,attr"`
}

type selectionOut struct {
	Pane       string `xml:"pane,attr,omitempty"`
	ActiveCell string `xml:"activeCell,attr,omitempty"`
	Sqref      string `xml:"sqref,attr,omitempty"`
}

type sheetFormatPrOut struct {
	BaseColWidth     int `xml:"baseColWidth,attr"`
	DefaultRowHeight int `xml:"defaultRowHeight,attr"`
}

type sheetDataOut struct {
	Row []rowOut `xml:"row"`
}

type rowOut struct {
	R     int       `xml:"r,attr"`
	Spans string    `xml:"spans,attr"`
	C     []cellOut `xml:"c"`
}

type cellOut struct {
	R string  `xml:"r,attr"`
	S int     `xml:"s,attr,omitempty"`
	T string  `xml:"t,attr,omitempty"`
	F *string `xml:"f"`
	V *string `xml:"v"`
}

type mergeCellsOut struct {
	Count     int      `xml:"count,attr"`
	MergeCell []refOut `xml:"mergeCell"`
}

type hyperlinksOut struct {
	Hyperlink []hyperlinkOut `xml:"hyperlink"`
}

type hyperlinkOut struct {
	Ref string `xml:"ref,attr"`
	RID string `xml:"r:id,attr"`
}

type printOptionsOut struct {
	HorizontalCentered string `xml:"horizontalCentered,attr,omitempty"`
	VerticalCentered   string `xml:"verticalCentered,attr,omitempty"`
}

type pageMarginsOut struct {
	Left   float64 `xml:"left,attr"`
	Right  float64 `xml:"right,attr"`
	Top    float64 `xml:"top,attr"`
	Bottom float64 `xml:"bottom,attr"`
	Header float64 `xml:"header,attr"`
	Footer float64 `xml:"footer,attr"`
}

type pageSetupOut struct {
	Orientation string `xml:"orientation,attr,omitempty"`
	PaperSize   int    `xml:"paperSize,attr,omitempty"`
	FitToHeight *int   `xml:"fitToHeight,attr"`
	FitToWidth  *int   `xml:"fitToWidth,attr"`
	Scale       int    `xml:"scale,attr,omitempty"`
}

type headerFooterOut struct {
	OddHeader string `xml:"oddHeader,omitempty"`
	OddFooter string `xml:"oddFooter,omitempty"`
}

// WriteWorksheet serializes ws. String cells are stored as indices into the
// shared-string table; sst is not modified and the returned table holds it
// followed by any strings added for this sheet. Cell style attributes are the
// workbook style indices.
func WriteWorksheet(ws *workbook.Worksheet, sst []string) (string, []string, error) {
	w := sheetWriter{sst: append([]string(nil), sst...)}
	w.index = make(map[string]int, len(w.sst))
	for i, s := range w.sst {
		if _, ok := w.index[s]; !ok {
			w.index[s] = i
		}
	}

	out, err := w.build(ws)
	if err != nil {
		return "", nil, err
	}
	data, err := xml.Marshal(out)
	if err != nil {
		return "", nil, fmt.Errorf("encoding worksheet %q: %w", ws.Title(), err)
	}
	return xml.Header + string(data), w.sst, nil
}

type sheetWriter struct {
	sst   []string
	index map[string]int
}

func (w *sheetWriter) intern(s string) int {
	if i, ok := w.index[s]; ok {
		return i
	}
	w.sst = append(w.sst, s)
	w.index[s] = len(w.sst) - 1
	return len(w.sst) - 1
}

func (w *sheetWriter) build(ws *workbook.Worksheet) (*worksheetOut, error) {
	out := &worksheetOut{
		Xmlns:         nsSpreadsheetML,
		XmlnsR:        nsRelationships,
		Dimension:     refOut{Ref: ws.Dimension().String()},
		SheetFormatPr: sheetFormatPrOut{BaseColWidth: 10, DefaultRowHeight: 15},
	}
	out.SheetPr.OutlinePr.SummaryBelow = "1"
	out.SheetPr.OutlinePr.SummaryRight = "1"
	if ws.PageSetup.FitToPage {
		out.SheetPr.PageSetUpPr = &pageSetUpPrOut{FitToPage: "1"}
	}
	out.SheetViews.SheetView.Pane, out.SheetViews.SheetView.Selection = sheetView(ws)

	var links []hyperlinkOut
	for _, c := range ws.Cells() {
		co, err := w.cell(c)
		if err != nil {
			return nil, fmt.Errorf("worksheet %q: %w", ws.Title(), err)
		}
		rows := out.SheetData.Row
		if n := len(rows); n == 0 || rows[n-1].R != c.Row() {
			out.SheetData.Row = append(rows, rowOut{R: c.Row()})
		}
		last := &out.SheetData.Row[len(out.SheetData.Row)-1]
		last.C = append(last.C, co)
		if id := c.HyperlinkID(); id != "" {
			links = append(links, hyperlinkOut{Ref: co.R, RID: id})
		}
	}
	for i := range out.SheetData.Row {
		row := &out.SheetData.Row[i]
		first := cellref.MustParse(row.C[0].R).Column
		last := cellref.MustParse(row.C[len(row.C)-1].R).Column
		row.Spans = fmt.Sprintf("%d:%d", first, last)
	}

	if filter, ok := ws.AutoFilter(); ok {
		out.AutoFilter = &refOut{Ref: filter.String()}
	}
	if merges := ws.MergedCells(); len(merges) > 0 {
		mc := &mergeCellsOut{Count: len(merges)}
		for _, m := range merges {
			mc.MergeCell = append(mc.MergeCell, refOut{Ref: m.String()})
		}
		out.MergeCells = mc
	}
	if len(links) > 0 {
		out.Hyperlinks = &hyperlinksOut{Hyperlink: links}
	}

	ps := ws.PageSetup
	if ps.HorizontalCentered || ps.VerticalCentered {
		out.PrintOptions = &printOptionsOut{
			HorizontalCentered: flag(ps.HorizontalCentered),
			VerticalCentered:   flag(ps.VerticalCentered),
		}
	}
	out.PageMargins = pageMarginsOut(ws.PageMargins)
	if !ps.IsDefault() {
		setup := &pageSetupOut{Orientation: ps.Orientation.String(), PaperSize: ps.PaperSize}
		if ps.FitToPage {
			h, wd := ps.FitToHeight, ps.FitToWidth
			setup.FitToHeight, setup.FitToWidth = &h, &wd
		}
		if ps.Scale != 0 && ps.Scale != 100 {
			setup.Scale = ps.Scale
		}
		out.PageSetup = setup
	}
	if !ws.HeaderFooter.IsEmpty() {
		out.HeaderFooter = &headerFooterOut{
			OddHeader: EncodeHeaderFooter(ws.HeaderFooter.Header),
			OddFooter: EncodeHeaderFooter(ws.HeaderFooter.Footer),
		}
	}
	return out, nil
}

func sheetView(ws *workbook.Worksheet) (*paneOut, []selectionOut) {
	top, ok := ws.FrozenPanes()
	if !ok {
		return nil, []selectionOut{{ActiveCell: "A1", Sqref: "A1"}}
	}
	ref := top.Relative().String()
	pane := &paneOut{
		XSplit:      top.Column - 1,
		YSplit:      top.Row - 1,
		TopLeftCell: ref,
		State:       "frozen",
	}
	switch {
	case pane.XSplit > 0 && pane.YSplit > 0:
		pane.ActivePane = "bottomRight"
		return pane, []selectionOut{
			{Pane: "topRight"},
			{Pane: "bottomLeft"},
			{Pane: "bottomRight", ActiveCell: ref, Sqref: ref},
		}
	case pane.YSplit > 0:
		pane.ActivePane = "bottomLeft"
	default:
		pane.ActivePane = "topRight"
	}
	return pane, []selectionOut{{Pane: pane.ActivePane, ActiveCell: ref, Sqref: ref}}
}

func (w *sheetWriter) cell(c *workbook.Cell) (cellOut, error) {
	out := cellOut{R: c.Reference().Relative().String(), S: c.Style()}
	v := c.Value()
	text, isFormula := c.Formula()
	if isFormula {
		out.F = &text
	}

	var raw string
	switch v.Kind() {
	case value.KindNull:
		return out, nil
	case value.KindNumber:
		f, _ := v.AsNumber()
		out.T, raw = "n", value.FormatNumber(f)
	case value.KindString:
		s, _ := v.AsString()
		if isFormula {
			out.T, raw = "str", s
		} else {
			out.T, raw = "s", strconv.Itoa(w.intern(s))
		}
	case value.KindBool:
		b, _ := v.AsBool()
		out.T, raw = "b", "0"
		if b {
			raw = "1"
		}
	case value.KindError:
		code, _ := v.AsError()
		out.T, raw = "e", code.String()
	default:
		return out, fmt.Errorf("%w: cell %s holds a %s value", value.ErrDataType, out.R, v.Kind())
	}
	out.V = &raw
	return out, nil
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return ""
}
