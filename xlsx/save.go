package xlsx

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/tsawler/xlkit/archive"
	"github.com/tsawler/xlkit/cellref"
	"github.com/tsawler/xlkit/opc"
	"github.com/tsawler/xlkit/value"
	"github.com/tsawler/xlkit/workbook"
)

// Part names written by Save.
const (
	workbookPartName = "xl/workbook.xml"
	stylesPartName   = "xl/styles.xml"
	sstPartName      = "xl/sharedStrings.xml"
	corePartName     = "docProps/core.xml"
)

type workbookOut struct {
	XMLName    xml.Name `xml:"workbook"`
	Xmlns      string   `xml:"xmlns,attr"`
	XmlnsR     string   `xml:"xmlns:r,attr"`
	WorkbookPr struct {
		Date1904 string `xml:"date1904,attr,omitempty"`
	} `xml:"workbookPr"`
	BookViews struct {
		WorkbookView struct {
			ActiveTab int `xml:"activeTab,attr,omitempty"`
		} `xml:"workbookView"`
	} `xml:"bookViews"`
	Sheets struct {
		Sheet []sheetOut `xml:"sheet"`
	} `xml:"sheets"`
	DefinedNames *struct {
		DefinedName []definedNameOut `xml:"definedName"`
	} `xml:"definedNames"`
}

type sheetOut struct {
	Name    string `xml:"name,attr"`
	SheetID int    `xml:"sheetId,attr"`
	RID     string `xml:"r:id,attr"`
}

type definedNameOut struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type corePropertiesOut struct {
	XMLName        xml.Name `xml:"cp:coreProperties"`
	XmlnsCP        string   `xml:"xmlns:cp,attr"`
	XmlnsDC        string   `xml:"xmlns:dc,attr"`
	XmlnsDCTerms   string   `xml:"xmlns:dcterms,attr"`
	XmlnsXSI       string   `xml:"xmlns:xsi,attr"`
	Title          string   `xml:"dc:title,omitempty"`
	Subject        string   `xml:"dc:subject,omitempty"`
	Creator        string   `xml:"dc:creator,omitempty"`
	Keywords       string   `xml:"cp:keywords,omitempty"`
	Description    string   `xml:"dc:description,omitempty"`
	LastModifiedBy string   `xml:"cp:lastModifiedBy,omitempty"`
	Created        *w3cDate `xml:"dcterms:created"`
	Modified       *w3cDate `xml:"dcterms:modified"`
}

type w3cDate struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

func newW3CDate(t time.Time) *w3cDate {
	if t.IsZero() {
		return nil
	}
	return &w3cDate{Type: "dcterms:W3CDTF", Value: t.UTC().Format(time.RFC3339)}
}

// SaveFile writes wb to path, replacing any existing file.
func SaveFile(wb *workbook.Workbook, path string, opts ...SaveOption) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Save(wb, f, opts...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Save writes wb as a workbook package.
func Save(wb *workbook.Workbook, w io.Writer, opts ...SaveOption) error {
	cfg := newSaveConfig(opts)
	if wb.SheetCount() == 0 {
		return fmt.Errorf("%w: a workbook needs at least one worksheet", workbook.ErrSheetNotFound)
	}

	aw := archive.NewWriter(w, cfg.level)
	s := &saver{wb: wb, aw: aw, cfg: cfg}
	if err := s.run(); err != nil {
		aw.Close()
		return err
	}
	return aw.Close()
}

type saver struct {
	wb  *workbook.Workbook
	aw  *archive.Writer
	cfg saveConfig
}

func (s *saver) run() error {
	ct := &opc.ContentTypes{}
	ct.AddDefault("rels", opc.MediaRelationships)
	ct.AddDefault("xml", opc.MediaXML)
	ct.AddOverride(workbookPartName, opc.MediaWorkbook)

	var wbRels []opc.Relationship
	sst := s.wb.SharedStrings().Strings()
	for i, ws := range s.wb.Sheets() {
		part := fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1)
		text, next, err := WriteWorksheet(ws, sst)
		if err != nil {
			return err
		}
		sst = next
		if err := s.aw.WritePart(part, []byte(text)); err != nil {
			return err
		}
		if rels := ws.Relationships(); len(rels) > 0 {
			if err := s.writeRels(part, rels); err != nil {
				return err
			}
		}
		ct.AddOverride(part, opc.MediaWorksheet)
		wbRels = append(wbRels, opc.Relationship{
			ID:     fmt.Sprintf("rId%d", i+1),
			Type:   opc.RelWorksheet,
			Target: strings.TrimPrefix(part, "xl/"),
		})
		s.cfg.logger.Debugf("Wrote worksheet %q to %s", ws.Title(), part)
	}

	n := len(wbRels)
	wbRels = append(wbRels,
		opc.Relationship{ID: fmt.Sprintf("rId%d", n+1), Type: opc.RelStyles, Target: "styles.xml"},
		opc.Relationship{ID: fmt.Sprintf("rId%d", n+2), Type: opc.RelSharedStrings, Target: "sharedStrings.xml"},
	)

	styles, err := marshalStyles(s.wb.Styles().Codes())
	if err != nil {
		return err
	}
	if err := s.aw.WritePart(stylesPartName, styles); err != nil {
		return err
	}
	ct.AddOverride(stylesPartName, opc.MediaStyles)

	strs, err := marshalSharedStrings(sst)
	if err != nil {
		return err
	}
	if err := s.aw.WritePart(sstPartName, strs); err != nil {
		return err
	}
	ct.AddOverride(sstPartName, opc.MediaSharedStrings)

	if err := s.writeWorkbook(); err != nil {
		return err
	}
	if err := s.writeRels(workbookPartName, wbRels); err != nil {
		return err
	}

	core, err := s.coreProperties()
	if err != nil {
		return err
	}
	if err := s.aw.WritePart(corePartName, core); err != nil {
		return err
	}
	ct.AddOverride(corePartName, opc.MediaCoreProperties)

	if err := s.writeRels("", []opc.Relationship{
		{ID: "rId1", Type: opc.RelOfficeDocument, Target: workbookPartName},
		{ID: "rId2", Type: opc.RelCoreProperties, Target: corePartName},
	}); err != nil {
		return err
	}

	data, err := ct.Marshal()
	if err != nil {
		return err
	}
	return s.aw.WritePart(opc.ContentTypesPart, data)
}

func (s *saver) writeRels(owner string, rels []opc.Relationship) error {
	data, err := opc.MarshalRelationships(rels)
	if err != nil {
		return err
	}
	return s.aw.WritePart(opc.RelsPartFor(owner), data)
}

func (s *saver) writeWorkbook() error {
	out := workbookOut{Xmlns: nsSpreadsheetML, XmlnsR: nsRelationships}
	if s.wb.Epoch() == value.Mac1904 {
		out.WorkbookPr.Date1904 = "1"
	}
	out.BookViews.WorkbookView.ActiveTab = s.wb.ActiveIndex()
	for i, ws := range s.wb.Sheets() {
		out.Sheets.Sheet = append(out.Sheets.Sheet, sheetOut{
			Name:    ws.Title(),
			SheetID: i + 1,
			RID:     fmt.Sprintf("rId%d", i+1),
		})
	}
	if names := s.wb.NamedRanges(); len(names) > 0 {
		out.DefinedNames = &struct {
			DefinedName []definedNameOut `xml:"definedName"`
		}{}
		for _, nr := range names {
			out.DefinedNames.DefinedName = append(out.DefinedNames.DefinedName, definedNameOut{
				Name:  nr.Name,
				Value: cellref.FormatQualified(nr.Worksheet.Title(), nr.Range.Absolute()),
			})
		}
	}

	data, err := xml.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding workbook: %w", err)
	}
	return s.aw.WritePart(workbookPartName, append([]byte(xml.Header), data...))
}

func (s *saver) coreProperties() ([]byte, error) {
	p := s.wb.Properties
	out := corePropertiesOut{
		XmlnsCP:        nsCoreProps,
		XmlnsDC:        nsDC,
		XmlnsDCTerms:   nsDCTerms,
		XmlnsXSI:       nsXSI,
		Title:          p.Title,
		Subject:        p.Subject,
		Creator:        p.Creator,
		Keywords:       strings.Join(p.Keywords, ", "),
		Description:    p.Description,
		LastModifiedBy: p.LastModifiedBy,
		Created:        newW3CDate(p.Created),
		Modified:       newW3CDate(p.Modified),
	}
	data, err := xml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding core properties: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}
