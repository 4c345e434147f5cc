package xlsx

import (
	"strconv"
	"strings"

	"github.com/tsawler/xlkit/workbook"
)

// Defaults written for a header/footer slot without a font or color.
const (
	DefaultHeaderFont  = "Calibri,Regular"
	DefaultHeaderColor = "000000"
)

// newlineCode replaces line breaks inside header/footer text.
const newlineCode = "_x000D_"

// fieldCodes maps the bracketed field names used in slot text to their
// two-character codes.
var fieldCodes = []struct{ field, code string }{
	{"&[Date]", "&D"},
	{"&[Time]", "&T"},
	{"&[Page]", "&P"},
	{"&[Pages]", "&N"},
	{"&[Path]", "&Z"},
	{"&[File]", "&F"},
	{"&[Tab]", "&A"},
}

// EncodeHeaderFooter renders a header or footer as a field-code string.
// Slots with empty text are skipped.
func EncodeHeaderFooter(s workbook.HeaderFooterSection) string {
	var b strings.Builder
	for _, slot := range []struct {
		marker string
		text   workbook.HeaderFooterText
	}{
		{"&L", s.Left},
		{"&C", s.Center},
		{"&R", s.Right},
	} {
		if slot.text.Text == "" {
			continue
		}
		b.WriteString(slot.marker)
		font := slot.text.Font
		if font == "" {
			font = DefaultHeaderFont
		}
		b.WriteString(`&"` + font + `"`)
		if slot.text.Size > 0 {
			b.WriteString("&" + strconv.Itoa(slot.text.Size))
		}
		color := slot.text.Color
		if color == "" {
			color = DefaultHeaderColor
		}
		b.WriteString("&K" + color)
		b.WriteString(encodeSlotText(slot.text.Text))
	}
	return b.String()
}

func encodeSlotText(text string) string {
	var b strings.Builder
	for i := 0; i < len(text); {
		switch text[i] {
		case '&':
			if code, n := matchField(text[i:]); n > 0 {
				b.WriteString(code)
				i += n
				continue
			}
			b.WriteString("&&")
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			b.WriteString(newlineCode)
		case '\n':
			b.WriteString(newlineCode)
		default:
			b.WriteByte(text[i])
		}
		i++
	}
	return b.String()
}

func matchField(s string) (string, int) {
	for _, f := range fieldCodes {
		if strings.HasPrefix(s, f.field) {
			return f.code, len(f.field)
		}
	}
	return "", 0
}

// DecodeHeaderFooter parses a field-code string back into its three slots.
// Formatting codes other than font, size and color are dropped. Text before
// any position marker belongs to the center slot.
func DecodeHeaderFooter(s string) workbook.HeaderFooterSection {
	var out workbook.HeaderFooterSection
	slot := &out.Center
	var text strings.Builder
	flush := func() {
		slot.Text += text.String()
		text.Reset()
	}

	s = strings.ReplaceAll(s, newlineCode, "\n")
	for i := 0; i < len(s); i++ {
		if s[i] != '&' || i+1 == len(s) {
			text.WriteByte(s[i])
			continue
		}
		i++
		switch c := s[i]; {
		case c == '&':
			text.WriteByte('&')
		case c == 'L' || c == 'C' || c == 'R':
			flush()
			switch c {
			case 'L':
				slot = &out.Left
			case 'C':
				slot = &out.Center
			default:
				slot = &out.Right
			}
		case c == '"':
			end := strings.IndexByte(s[i+1:], '"')
			if end < 0 {
				text.WriteString(s[i+1:])
				i = len(s)
				continue
			}
			slot.Font = s[i+1 : i+1+end]
			i += end + 1
		case c == 'K':
			n := min(6, len(s)-i-1)
			slot.Color = s[i+1 : i+1+n]
			i += n
		case c >= '0' && c <= '9':
			j := i
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			slot.Size, _ = strconv.Atoi(s[i:j])
			i = j - 1
		default:
			if field := fieldName(c); field != "" {
				text.WriteString(field)
			}
		}
	}
	flush()

	for _, t := range []*workbook.HeaderFooterText{&out.Left, &out.Center, &out.Right} {
		if t.Font == DefaultHeaderFont {
			t.Font = ""
		}
		if t.Color == DefaultHeaderColor {
			t.Color = ""
		}
	}
	return out
}

func fieldName(code byte) string {
	for _, f := range fieldCodes {
		if f.code[1] == code {
			return f.field
		}
	}
	return ""
}
