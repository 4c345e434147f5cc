package xlsx

import (
	"encoding/xml"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/xlkit/internal/xmlutil"
	"github.com/tsawler/xlkit/numfmt"
	"github.com/tsawler/xlkit/opc"
)

// parseStyles returns the number-format code of every cell format in order.
func parseStyles(part string, data []byte, log logrus.FieldLogger) ([]string, error) {
	var sx stylesXML
	if err := xmlutil.Unmarshal(data, &sx); err != nil {
		return nil, opc.NewPartError(part, err)
	}

	custom := make(map[int]string)
	if sx.NumFmts != nil {
		for _, nf := range sx.NumFmts.NumFmt {
			custom[nf.NumFmtID] = nf.FormatCode
		}
	}
	if sx.CellXfs == nil || len(sx.CellXfs.Xf) == 0 {
		return []string{numfmt.General}, nil
	}

	codes := make([]string, len(sx.CellXfs.Xf))
	for i, xf := range sx.CellXfs.Xf {
		if code, ok := custom[xf.NumFmtID]; ok {
			codes[i] = code
			continue
		}
		code, ok := numfmt.Builtin(xf.NumFmtID)
		if !ok {
			log.Debugf("Cell format %d uses unknown number format %d", i, xf.NumFmtID)
			code = numfmt.General
		}
		codes[i] = code
	}
	return codes, nil
}

type styleSheetOut struct {
	XMLName xml.Name    `xml:"styleSheet"`
	Xmlns   string      `xml:"xmlns,attr"`
	NumFmts *numFmtsOut `xml:"numFmts"`
	Fonts   struct {
		Count int     `xml:"count,attr"`
		Font  fontOut `xml:"font"`
	} `xml:"fonts"`
	Fills struct {
		Count int       `xml:"count,attr"`
		Fill  []fillOut `xml:"fill"`
	} `xml:"fills"`
	Borders struct {
		Count  int       `xml:"count,attr"`
		Border borderOut `xml:"border"`
	} `xml:"borders"`
	CellStyleXfs xfsOut `xml:"cellStyleXfs"`
	CellXfs      xfsOut `xml:"cellXfs"`
	CellStyles   struct {
		Count     int          `xml:"count,attr"`
		CellStyle cellStyleOut `xml:"cellStyle"`
	} `xml:"cellStyles"`
}

type numFmtsOut struct {
	Count  int         `xml:"count,attr"`
	NumFmt []numFmtXML `xml:"numFmt"`
}

type valOut struct {
	Val string `xml:"val,attr"`
}

type fontOut struct {
	Sz     valOut `xml:"sz"`
	Name   valOut `xml:"name"`
	Family valOut `xml:"family"`
}

type fillOut struct {
	PatternFill struct {
		PatternType string `xml:"patternType,attr"`
	} `xml:"patternFill"`
}

type borderOut struct {
	Left     struct{} `xml:"left"`
	Right    struct{} `xml:"right"`
	Top      struct{} `xml:"top"`
	Bottom   struct{} `xml:"bottom"`
	Diagonal struct{} `xml:"diagonal"`
}

type xfsOut struct {
	Count int     `xml:"count,attr"`
	Xf    []xfOut `xml:"xf"`
}

type xfOut struct {
	NumFmtID          int    `xml:"numFmtId,attr"`
	FontID            int    `xml:"fontId,attr"`
	FillID            int    `xml:"fillId,attr"`
	BorderID          int    `xml:"borderId,attr"`
	XfID              *int   `xml:"xfId,attr"`
	ApplyNumberFormat string `xml:"applyNumberFormat,attr,omitempty"`
}

type cellStyleOut struct {
	Name      string `xml:"name,attr"`
	XfID      int    `xml:"xfId,attr"`
	BuiltinID int    `xml:"builtinId,attr"`
}

// marshalStyles writes one cell format per code, in order, so that a cell's
// style index is its cellXfs index.
func marshalStyles(codes []string) ([]byte, error) {
	out := styleSheetOut{Xmlns: nsSpreadsheetML}
	out.Fonts.Count = 1
	out.Fonts.Font.Sz.Val = "11"
	out.Fonts.Font.Name.Val = "Calibri"
	out.Fonts.Font.Family.Val = "2"
	out.Fills.Count = 2
	out.Fills.Fill = make([]fillOut, 2)
	out.Fills.Fill[0].PatternFill.PatternType = "none"
	out.Fills.Fill[1].PatternFill.PatternType = "gray125"
	out.Borders.Count = 1
	out.CellStyleXfs.Count = 1
	out.CellStyleXfs.Xf = []xfOut{{}}
	out.CellStyles.Count = 1
	out.CellStyles.CellStyle.Name = "Normal"

	next := numfmt.FirstCustomID
	assigned := make(map[string]int)
	for _, code := range codes {
		id, ok := numfmt.BuiltinID(code)
		if !ok {
			if id, ok = assigned[code]; !ok {
				id = next
				next++
				assigned[code] = id
				if out.NumFmts == nil {
					out.NumFmts = &numFmtsOut{}
				}
				out.NumFmts.NumFmt = append(out.NumFmts.NumFmt, numFmtXML{NumFmtID: id, FormatCode: code})
			}
		}
		zero := 0
		xf := xfOut{NumFmtID: id, XfID: &zero}
		if id != 0 {
			xf.ApplyNumberFormat = "1"
		}
		out.CellXfs.Xf = append(out.CellXfs.Xf, xf)
	}
	out.CellXfs.Count = len(out.CellXfs.Xf)
	if out.NumFmts != nil {
		out.NumFmts.Count = len(out.NumFmts.NumFmt)
	}

	data, err := xml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding styles: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}
