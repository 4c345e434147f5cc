package opc

import (
	"encoding/xml"
	"fmt"

	"github.com/tsawler/xlkit/archive"
	"github.com/tsawler/xlkit/internal/xmlutil"
)

// DefaultWorkbookPart is used when the package relationships do not name one.
const DefaultWorkbookPart = "xl/workbook.xml"

// SheetEntry is one sheet declaration of the workbook part.
type SheetEntry struct {
	RelID   string
	Name    string
	SheetID int
	State   string
}

// WorksheetPart maps a sheet name to its physical part.
type WorksheetPart struct {
	Part string
	Name string
}

type workbookSheetsXML struct {
	XMLName xml.Name `xml:"workbook"`
	Sheets  struct {
		Sheet []struct {
			Name    string `xml:"name,attr"`
			SheetID int    `xml:"sheetId,attr"`
			State   string `xml:"state,attr"`
			RID     string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
			// Strict documents use a different relationships namespace.
			StrictRID string `xml:"http://purl.oclc.org/ooxml/officeDocument/relationships id,attr"`
		} `xml:"sheet"`
	} `xml:"sheets"`
}

// WorkbookPart returns the part named by the package's officeDocument relationship.
func WorkbookPart(a *archive.Archive) (string, error) {
	rels, err := ReadRelationships(a, "")
	if err != nil {
		return "", err
	}
	if rel, ok := FindByType(rels, RelOfficeDocument); ok {
		return ResolveTarget("", rel.Target), nil
	}
	return DefaultWorkbookPart, nil
}

// ParseSheets decodes the sheet list of a workbook part in document order.
func ParseSheets(part string, data []byte) ([]SheetEntry, error) {
	var wx workbookSheetsXML
	if err := xmlutil.Unmarshal(data, &wx); err != nil {
		return nil, NewPartError(part, err)
	}

	entries := make([]SheetEntry, 0, len(wx.Sheets.Sheet))
	for _, s := range wx.Sheets.Sheet {
		rid := s.RID
		if rid == "" {
			rid = s.StrictRID
		}
		entries = append(entries, SheetEntry{RelID: rid, Name: s.Name, SheetID: s.SheetID, State: s.State})
	}
	return entries, nil
}

// ReadSheets parses the workbook part's sheet list in document order.
func ReadSheets(a *archive.Archive) ([]SheetEntry, error) {
	part, err := WorkbookPart(a)
	if err != nil {
		return nil, err
	}
	data, err := a.ReadPart(part)
	if err != nil {
		return nil, NewPartError(part, err)
	}
	return ParseSheets(part, data)
}

// DetectWorksheets joins the workbook's sheet list with its relationships.
// The result follows the workbook's declaration order. Chartsheets and
// other non-worksheet targets are skipped.
func DetectWorksheets(a *archive.Archive) ([]WorksheetPart, error) {
	workbook, err := WorkbookPart(a)
	if err != nil {
		return nil, err
	}
	data, err := a.ReadPart(workbook)
	if err != nil {
		return nil, NewPartError(workbook, err)
	}
	sheets, err := ParseSheets(workbook, data)
	if err != nil {
		return nil, err
	}
	rels, err := ReadRelationships(a, workbook)
	if err != nil {
		return nil, err
	}

	parts := make([]WorksheetPart, 0, len(sheets))
	for _, s := range sheets {
		rel, ok := FindByID(rels, s.RelID)
		if !ok {
			return nil, NewPartError(workbook, fmt.Errorf("sheet %q references unknown relationship %q", s.Name, s.RelID))
		}
		if rel.Type != RelWorksheet {
			continue
		}
		parts = append(parts, WorksheetPart{Part: ResolveTarget(workbook, rel.Target), Name: s.Name})
	}
	return parts, nil
}
