// Package xmlutil builds XML decoders tolerant of byte-order marks and
// non-UTF-8 declarations found in parts written by older producers.
package xmlutil

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewDecoder returns a decoder that strips a UTF-8 BOM, transcodes UTF-16
// input with a BOM, and resolves other declared encodings by label.
func NewDecoder(r io.Reader) *xml.Decoder {
	r = transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	d := xml.NewDecoder(r)
	d.CharsetReader = charsetReader
	return d
}

// charsetReader passes UTF-16 through: BOMOverride has already turned it into UTF-8.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	if strings.HasPrefix(strings.ToLower(label), "utf-16") {
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}

// Unmarshal decodes data into v with NewDecoder.
func Unmarshal(data []byte, v any) error {
	return NewDecoder(bytes.NewReader(data)).Decode(v)
}
