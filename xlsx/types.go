// Package xlsx reads and writes workbook packages.
package xlsx

import "encoding/xml"

// XML namespaces used in workbook packages.
const (
	nsSpreadsheetML = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsCoreProps     = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC            = "http://purl.org/dc/elements/1.1/"
	nsDCTerms       = "http://purl.org/dc/terms/"
	nsXSI           = "http://www.w3.org/2001/XMLSchema-instance"
)

// workbookXML represents the xl/workbook.xml file structure.
type workbookXML struct {
	XMLName      xml.Name         `xml:"workbook"`
	WorkbookPr   *workbookPrXML   `xml:"workbookPr"`
	BookViews    *bookViewsXML    `xml:"bookViews"`
	DefinedNames *definedNamesXML `xml:"definedNames"`
}

type workbookPrXML struct {
	Date1904 string `xml:"date1904,attr"`
}

type bookViewsXML struct {
	WorkbookView []struct {
		ActiveTab int `xml:"activeTab,attr"`
	} `xml:"workbookView"`
}

type definedNamesXML struct {
	DefinedName []definedNameXML `xml:"definedName"`
}

type definedNameXML struct {
	Name         string `xml:"name,attr"`
	LocalSheetID *int   `xml:"localSheetId,attr"`
	Hidden       string `xml:"hidden,attr"`
	Value        string `xml:",chardata"`
}

// Worksheet children decoded one element at a time.

type sheetPrXML struct {
	PageSetUpPr *struct {
		FitToPage string `xml:"fitToPage,attr"`
	} `xml:"pageSetUpPr"`
}

type sheetViewXML struct {
	Pane *paneXML `xml:"pane"`
}

type paneXML struct {
	XSplit      float64 `xml:"xSplit,attr"`
	YSplit      float64 `xml:"ySplit,attr"`
	TopLeftCell string  `xml:"topLeftCell,attr"`
	State       string  `xml:"state,attr"`
}

type rowXML struct {
	R     int       `xml:"r,attr"` // Row number (1-indexed)
	Cells []cellXML `xml:"c"`
}

type cellXML struct {
	R  string        `xml:"r,attr"` // Cell reference (e.g., "A1")
	T  string        `xml:"t,attr"` // Type: s, n, b, e, str, inlineStr, d
	S  int           `xml:"s,attr"` // Style index
	V  *string       `xml:"v"`      // Value
	F  *formulaXML   `xml:"f"`      // Formula (optional)
	Is *inlineStrXML `xml:"is"`     // Inline string (optional)
}

type formulaXML struct {
	Text string `xml:",chardata"`
	T    string `xml:"t,attr"`
	Ref  string `xml:"ref,attr"`
	Si   string `xml:"si,attr"`
}

type inlineStrXML = siXML

type refXML struct {
	Ref string `xml:"ref,attr"`
}

type hyperlinkXML struct {
	Ref      string `xml:"ref,attr"`
	RID      string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	Location string `xml:"location,attr"`
}

type printOptionsXML struct {
	HorizontalCentered string `xml:"horizontalCentered,attr"`
	VerticalCentered   string `xml:"verticalCentered,attr"`
}

type pageMarginsXML struct {
	Left   float64 `xml:"left,attr"`
	Right  float64 `xml:"right,attr"`
	Top    float64 `xml:"top,attr"`
	Bottom float64 `xml:"bottom,attr"`
	Header float64 `xml:"header,attr"`
	Footer float64 `xml:"footer,attr"`
}

type pageSetupXML struct {
	Orientation string `xml:"orientation,attr"`
	PaperSize   int    `xml:"paperSize,attr"`
	FitToHeight *int   `xml:"fitToHeight,attr"`
	FitToWidth  *int   `xml:"fitToWidth,attr"`
	Scale       int    `xml:"scale,attr"`
}

type headerFooterXML struct {
	OddHeader string `xml:"oddHeader"`
	OddFooter string `xml:"oddFooter"`
}

// sharedStringsXML represents the xl/sharedStrings.xml file structure.
type sharedStringsXML struct {
	XMLName xml.Name `xml:"sst"`
	Count   int      `xml:"count,attr"`
	Unique  int      `xml:"uniqueCount,attr"`
	SI      []siXML  `xml:"si"`
}

type siXML struct {
	T *string `xml:"t"` // Simple text
	R []rXML  `xml:"r"` // Rich text runs
}

type rXML struct {
	T string `xml:"t"` // Text in run
}

// stylesXML represents the xl/styles.xml file structure.
type stylesXML struct {
	XMLName xml.Name    `xml:"styleSheet"`
	NumFmts *numFmtsXML `xml:"numFmts"`
	CellXfs *cellXfsXML `xml:"cellXfs"`
}

type numFmtsXML struct {
	NumFmt []numFmtXML `xml:"numFmt"`
}

type numFmtXML struct {
	NumFmtID   int    `xml:"numFmtId,attr"`
	FormatCode string `xml:"formatCode,attr"`
}

type cellXfsXML struct {
	Xf []xfXML `xml:"xf"`
}

type xfXML struct {
	NumFmtID int `xml:"numFmtId,attr"`
}

// commentsXML represents a comments part.
type commentsXML struct {
	XMLName xml.Name `xml:"comments"`
	Authors struct {
		Author []string `xml:"author"`
	} `xml:"authors"`
	CommentList struct {
		Comment []struct {
			Ref      string `xml:"ref,attr"`
			AuthorID int    `xml:"authorId,attr"`
			Text     siXML  `xml:"text"`
		} `xml:"comment"`
	} `xml:"commentList"`
}

// corePropertiesXML represents docProps/core.xml.
type corePropertiesXML struct {
	XMLName     xml.Name `xml:"coreProperties"`
	Title       string   `xml:"title"`
	Subject     string   `xml:"subject"`
	Creator     string   `xml:"creator"`
	Keywords    string   `xml:"keywords"`
	Description string   `xml:"description"`
	LastModBy   string   `xml:"lastModifiedBy"`
	Created     string   `xml:"created"`
	Modified    string   `xml:"modified"`
}
