package xmlutil

import (
	"testing"
	"unicode/utf16"
)

type greeting struct {
	Text string `xml:"text,attr"`
}

func TestUnmarshal(t *testing.T) {
	utf16le := func(s string) []byte {
		out := []byte{0xFF, 0xFE}
		for _, u := range utf16.Encode([]rune(s)) {
			out = append(out, byte(u), byte(u>>8))
		}
		return out
	}

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"plain", []byte(`<g text="héllo"/>`), "héllo"},
		{"utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, []byte(`<?xml version="1.0" encoding="UTF-8"?><g text="héllo"/>`)...), "héllo"},
		{"latin-1", []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><g text=\"h\xe9llo\"/>"), "héllo"},
		{"utf-16 bom", utf16le(`<?xml version="1.0" encoding="UTF-16"?><g text="héllo"/>`), "héllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g greeting
			if err := Unmarshal(tt.data, &g); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if g.Text != tt.want {
				t.Errorf("Text = %q, want %q", g.Text, tt.want)
			}
		})
	}
}
