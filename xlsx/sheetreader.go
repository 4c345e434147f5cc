package xlsx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tsawler/xlkit/cellref"
	"github.com/tsawler/xlkit/internal/formula"
	"github.com/tsawler/xlkit/internal/xmlutil"
	"github.com/tsawler/xlkit/opc"
	"github.com/tsawler/xlkit/value"
	"github.com/tsawler/xlkit/workbook"
)

// ReadWorksheet creates a sheet titled title in wb and fills it from the
// worksheet part in r. Cell formats are looked up in styles by the cell's
// style attribute.
func ReadWorksheet(r io.Reader, wb *workbook.Workbook, title string, sst, styles []string, opts ...LoadOption) (*workbook.Worksheet, error) {
	ws, err := wb.CreateSheet(title)
	if err != nil {
		return nil, err
	}
	if err := FastParse(ws, r, sst, styles, 0, opts...); err != nil {
		_ = wb.RemoveSheet(ws)
		return nil, err
	}
	return ws, nil
}

// FastParse streams a worksheet part into ws in document order. The style
// attribute of each cell is offset by baseStyle before it indexes styles.
func FastParse(ws *workbook.Worksheet, r io.Reader, sst, styles []string, baseStyle int, opts ...LoadOption) error {
	if ws.Workbook() == nil {
		return fmt.Errorf("worksheet %q is detached from its workbook", ws.Title())
	}
	p := &sheetParser{
		ws:       ws,
		sst:      sst,
		styles:   styles,
		base:     baseStyle,
		cfg:      newLoadConfig(opts),
		shared:   make(map[string]*sharedFormula),
		explicit: make(map[cellref.CellReference]bool),
	}
	return p.parse(r)
}

type sharedFormula struct {
	origin cellref.CellReference
	text   string
	span   cellref.RangeReference
}

type sheetParser struct {
	ws     *workbook.Worksheet
	sst    []string
	styles []string
	base   int
	cfg    loadConfig

	shared      map[string]*sharedFormula
	sharedOrder []string
	explicit    map[cellref.CellReference]bool
	hyperlinks  []hyperlinkXML

	row, col int
	cells    int
}

func malformed(err error) error {
	return fmt.Errorf("%w: %w", opc.ErrPartParse, err)
}

func (p *sheetParser) parse(r io.Reader) error {
	dec := xmlutil.NewDecoder(r)
	sawRoot := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return malformed(err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !sawRoot {
			if se.Name.Local != "worksheet" {
				return malformed(fmt.Errorf("unexpected root element <%s>", se.Name.Local))
			}
			sawRoot = true
			continue
		}
		if err := p.element(dec, se); err != nil {
			return err
		}
	}
	if !sawRoot {
		return malformed(errors.New("no worksheet element"))
	}

	p.propagateShared()
	p.linkCells()
	p.cfg.logger.Debugf("Parsed worksheet %q: %d cells", p.ws.Title(), p.cells)
	return nil
}

func (p *sheetParser) element(dec *xml.Decoder, se xml.StartElement) error {
	decode := func(v any) error {
		if err := dec.DecodeElement(v, &se); err != nil {
			return malformed(err)
		}
		return nil
	}

	switch se.Name.Local {
	case "sheetPr":
		var x sheetPrXML
		if err := decode(&x); err != nil {
			return err
		}
		if x.PageSetUpPr != nil && parseBool(x.PageSetUpPr.FitToPage) {
			p.ws.PageSetup.FitToPage = true
		}
	case "sheetView":
		var x sheetViewXML
		if err := decode(&x); err != nil {
			return err
		}
		p.pane(x.Pane)
	case "row":
		var x rowXML
		if err := decode(&x); err != nil {
			return err
		}
		return p.readRow(x)
	case "autoFilter":
		var x refXML
		if err := decode(&x); err != nil {
			return err
		}
		if x.Ref != "" {
			if err := p.ws.SetAutoFilter(x.Ref); err != nil {
				return malformed(err)
			}
		}
	case "mergeCell":
		var x refXML
		if err := decode(&x); err != nil {
			return err
		}
		if err := p.ws.MergeCells(x.Ref); err != nil {
			return malformed(err)
		}
	case "hyperlink":
		var x hyperlinkXML
		if err := decode(&x); err != nil {
			return err
		}
		p.hyperlinks = append(p.hyperlinks, x)
	case "printOptions":
		var x printOptionsXML
		if err := decode(&x); err != nil {
			return err
		}
		p.ws.PageSetup.HorizontalCentered = parseBool(x.HorizontalCentered)
		p.ws.PageSetup.VerticalCentered = parseBool(x.VerticalCentered)
	case "pageMargins":
		var x pageMarginsXML
		if err := decode(&x); err != nil {
			return err
		}
		p.ws.PageMargins = workbook.PageMargins(x)
	case "pageSetup":
		var x pageSetupXML
		if err := decode(&x); err != nil {
			return err
		}
		p.pageSetup(x)
	case "headerFooter":
		var x headerFooterXML
		if err := decode(&x); err != nil {
			return err
		}
		p.ws.HeaderFooter.Header = DecodeHeaderFooter(x.OddHeader)
		p.ws.HeaderFooter.Footer = DecodeHeaderFooter(x.OddFooter)
	}
	return nil
}

func (p *sheetParser) pane(x *paneXML) {
	if x == nil || !strings.HasPrefix(x.State, "frozen") {
		return
	}
	ref := x.TopLeftCell
	if ref == "" {
		split, err := cellref.New(int(x.XSplit)+1, int(x.YSplit)+1)
		if err != nil {
			return
		}
		ref = split.String()
	}
	if err := p.ws.FreezePanes(ref); err != nil {
		p.cfg.logger.Debugf("Ignoring pane at %q: %v", ref, err)
	}
}

func (p *sheetParser) pageSetup(x pageSetupXML) {
	ps := &p.ws.PageSetup
	ps.Orientation = workbook.ParseOrientation(x.Orientation)
	ps.PaperSize = x.PaperSize
	if x.FitToHeight != nil {
		ps.FitToHeight = *x.FitToHeight
	}
	if x.FitToWidth != nil {
		ps.FitToWidth = *x.FitToWidth
	}
	if x.Scale > 0 {
		ps.Scale = x.Scale
	}
}

func (p *sheetParser) readRow(x rowXML) error {
	if x.R > 0 {
		p.row = x.R
	} else {
		p.row++
	}
	p.col = 0
	for _, c := range x.Cells {
		ref, err := p.position(c.R)
		if err != nil {
			return malformed(err)
		}
		if err := p.readCell(ref, c); err != nil {
			return err
		}
	}
	return nil
}

// position resolves a cell's reference; cells without one follow the
// previous cell of the row.
func (p *sheetParser) position(r string) (cellref.CellReference, error) {
	if r == "" {
		p.col++
		return cellref.CellReference{Column: p.col, Row: p.row}, nil
	}
	ref, err := cellref.Parse(r)
	if err != nil {
		return ref, err
	}
	ref = ref.Relative()
	p.col, p.row = ref.Column, ref.Row
	return ref, nil
}

func (p *sheetParser) readCell(ref cellref.CellReference, c cellXML) error {
	if c.V == nil && c.F == nil && c.Is == nil && c.S == 0 {
		return nil
	}
	cell, err := p.ws.CellAt(ref.Column, ref.Row)
	if err != nil {
		return malformed(err)
	}
	styles := p.ws.Workbook().Styles()

	if c.S != 0 || p.base != 0 {
		idx := c.S + p.base
		if idx < 0 || idx >= len(p.styles) {
			return fmt.Errorf("%w: style %d of cell %s is not defined", value.ErrDataType, idx, ref)
		}
		cell.SetStyle(styles.Intern(p.styles[idx]))
	}

	v, code, err := p.cellValue(ref, c)
	if err != nil {
		return err
	}
	if code != "" {
		cell.SetStyle(styles.Intern(code))
	}

	text := ""
	if c.F != nil && !p.cfg.dataOnly {
		p.explicit[ref] = true
		text = p.formulaText(ref, c.F)
	}
	if text != "" {
		cell.SetFormulaResult(text, v)
	} else {
		cell.SetValue(v)
	}
	p.cells++
	return nil
}

// cellValue decodes the cached or literal value. The returned format code is
// non-empty when the value implies one.
func (p *sheetParser) cellValue(ref cellref.CellReference, c cellXML) (value.Value, string, error) {
	raw := ""
	if c.V != nil {
		raw = *c.V
	}

	switch c.T {
	case "s":
		if c.V == nil {
			return value.Null(), "", nil
		}
		idx, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return value.Value{}, "", malformed(fmt.Errorf("cell %s: shared string index %q: %w", ref, raw, err))
		}
		if idx < 0 || idx >= len(p.sst) {
			return value.Value{}, "", fmt.Errorf("%w: shared string %d of cell %s is not defined", value.ErrDataType, idx, ref)
		}
		return p.text(p.sst[idx])
	case "b":
		return value.Bool(raw == "1" || raw == "true"), "", nil
	case "e":
		code, err := value.ParseErrorCode(raw)
		if err != nil {
			return value.String(raw), "", nil
		}
		v, err := value.Error(code)
		return v, "", err
	case "str":
		return value.String(raw), "", nil
	case "inlineStr":
		if c.Is == nil {
			return p.text(raw)
		}
		return p.text(richText(*c.Is))
	case "d":
		t, ok := parseISODate(raw)
		if !ok {
			return value.String(raw), "", nil
		}
		v := value.Time(t, p.ws.Workbook().Epoch())
		h, m, s := t.Clock()
		if h == 0 && m == 0 && s == 0 {
			return v, workbook.DateFormat, nil
		}
		return v, workbook.DateTimeFormat, nil
	case "", "n":
		if c.V == nil || raw == "" {
			return value.Null(), "", nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return value.String(raw), "", nil
		}
		return value.Number(f), "", nil
	default:
		return value.String(raw), "", nil
	}
}

func (p *sheetParser) text(s string) (value.Value, string, error) {
	if p.cfg.guessTypes {
		v, code := value.GuessType(s)
		return v, code, nil
	}
	return value.String(s), "", nil
}

func (p *sheetParser) formulaText(ref cellref.CellReference, f *formulaXML) string {
	if f.T != "shared" || f.Si == "" {
		return f.Text
	}
	if f.Ref != "" && f.Text != "" {
		span, err := cellref.ParseRange(f.Ref)
		if err != nil {
			p.cfg.logger.Debugf("Shared formula %s at %s has a bad range %q", f.Si, ref, f.Ref)
			return f.Text
		}
		if _, seen := p.shared[f.Si]; !seen {
			p.sharedOrder = append(p.sharedOrder, f.Si)
		}
		p.shared[f.Si] = &sharedFormula{origin: ref, text: f.Text, span: span.Relative()}
		return f.Text
	}
	if f.Text != "" {
		return f.Text
	}
	sf, ok := p.shared[f.Si]
	if !ok {
		p.cfg.logger.Debugf("Cell %s refers to unknown shared formula %s", ref, f.Si)
		return ""
	}
	return p.shift(sf, ref)
}

func (p *sheetParser) shift(sf *sharedFormula, ref cellref.CellReference) string {
	text, ok := formula.Shift(sf.text, ref.Column-sf.origin.Column, ref.Row-sf.origin.Row)
	if !ok {
		p.cfg.logger.Debugf("Shared formula at %s copied to %s without translation", sf.origin, ref)
	}
	return text
}

// propagateShared gives every cell of a shared range that carries no formula
// of its own the translated master formula.
func (p *sheetParser) propagateShared() {
	for _, si := range p.sharedOrder {
		sf := p.shared[si]
		for _, row := range sf.span.Cells() {
			for _, ref := range row {
				if p.explicit[ref] {
					continue
				}
				cell, err := p.ws.CellAt(ref.Column, ref.Row)
				if err != nil {
					continue
				}
				cell.SetFormulaResult(p.shift(sf, ref), cell.Value())
				p.explicit[ref] = true
			}
		}
	}
}

func (p *sheetParser) linkCells() {
	for _, h := range p.hyperlinks {
		if h.RID == "" {
			continue
		}
		span, err := cellref.ParseRange(h.Ref)
		if err != nil {
			p.cfg.logger.Debugf("Ignoring hyperlink at %q: %v", h.Ref, err)
			continue
		}
		if err := p.ws.LinkCell(span.TopLeft.Relative().String(), h.RID); err != nil {
			p.cfg.logger.Debugf("Ignoring hyperlink at %q: %v", h.Ref, err)
		}
	}
}

func richText(si siXML) string {
	if si.T != nil && len(si.R) == 0 {
		return decodeEscapes(*si.T)
	}
	var b strings.Builder
	if si.T != nil {
		b.WriteString(*si.T)
	}
	for _, run := range si.R {
		b.WriteString(run.T)
	}
	return decodeEscapes(b.String())
}

// decodeEscapes expands _xHHHH_ character escapes.
func decodeEscapes(s string) string {
	if !strings.Contains(s, "_x") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '_' && i+6 < len(s) && s[i+1] == 'x' && s[i+6] == '_' {
			if n, err := strconv.ParseUint(s[i+2:i+6], 16, 16); err == nil {
				b.WriteRune(rune(n))
				i += 6
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseISODate(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseBool(s string) bool {
	return s == "1" || s == "true"
}
