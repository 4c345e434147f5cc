package xlsx

import (
	"encoding/xml"
	"fmt"
	"strings"
	"unicode"

	"github.com/tsawler/xlkit/internal/xmlutil"
	"github.com/tsawler/xlkit/opc"
)

// parseSharedStrings decodes the shared-string table. Rich text runs are
// concatenated.
func parseSharedStrings(part string, data []byte) ([]string, error) {
	var sst sharedStringsXML
	if err := xmlutil.Unmarshal(data, &sst); err != nil {
		return nil, opc.NewPartError(part, err)
	}

	out := make([]string, len(sst.SI))
	for i, si := range sst.SI {
		out[i] = richText(si)
	}
	return out, nil
}

type sstOut struct {
	XMLName xml.Name `xml:"sst"`
	Xmlns   string   `xml:"xmlns,attr"`
	Count   int      `xml:"count,attr"`
	Unique  int      `xml:"uniqueCount,attr"`
	SI      []siOut  `xml:"si"`
}

type siOut struct {
	T struct {
		Space string `xml:"xml:space,attr,omitempty"`
		Text  string `xml:",chardata"`
	} `xml:"t"`
}

func marshalSharedStrings(list []string) ([]byte, error) {
	out := sstOut{Xmlns: nsSpreadsheetML, Count: len(list), Unique: len(list)}
	out.SI = make([]siOut, len(list))
	for i, s := range list {
		out.SI[i].T.Text = encodeEscapes(s)
		if needsPreserve(s) {
			out.SI[i].T.Space = "preserve"
		}
	}
	data, err := xml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding shared strings: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

func needsPreserve(s string) bool {
	if s == "" {
		return false
	}
	return unicode.IsSpace(rune(s[0])) || unicode.IsSpace(rune(s[len(s)-1])) || strings.ContainsAny(s, "\n\t")
}

// encodeEscapes writes characters XML cannot carry as _xHHHH_ escapes. An
// underscore that would read as an escape is itself escaped.
func encodeEscapes(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r < 0x20 && r != '\t' && r != '\n' && r != '\r':
			fmt.Fprintf(&b, "_x%04X_", r)
		case r == '_' && looksEscaped(s[i:]):
			b.WriteString("_x005F_")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func looksEscaped(s string) bool {
	if len(s) < 7 || s[1] != 'x' || s[6] != '_' {
		return false
	}
	for _, c := range s[2:6] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}
