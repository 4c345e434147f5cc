package archive

import (
	"fmt"
	"io"
	"strings"

	"github.com/richardlehane/mscfb"
	"github.com/richardlehane/msoleps"
)

// Legacy describes a compound file found where a package was expected.
type Legacy struct {
	// Encrypted is set for password-protected Open XML packages.
	Encrypted bool
	// Workbook is set when a binary workbook stream is present.
	Workbook bool
	// Title is the document title from the summary information, if any.
	Title string
}

// String describes the file for error messages.
func (l Legacy) String() string {
	kind := "compound file"
	switch {
	case l.Encrypted:
		kind = "encrypted package"
	case l.Workbook:
		kind = "legacy binary workbook"
	}
	if l.Title != "" {
		return fmt.Sprintf("%s %q is not supported", kind, l.Title)
	}
	return kind + " is not supported"
}

// ProbeCompoundFile walks the streams of a compound file.
func ProbeCompoundFile(r io.ReaderAt) (Legacy, error) {
	var legacy Legacy

	doc, err := mscfb.New(r)
	if err != nil {
		return legacy, fmt.Errorf("%w: reading compound file: %v", ErrInvalidFile, err)
	}

	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		name := strings.TrimLeft(entry.Name, "\x05")
		switch name {
		case "EncryptionInfo", "EncryptedPackage":
			legacy.Encrypted = true
		case "Workbook", "Book":
			legacy.Workbook = true
		case "SummaryInformation":
			if !msoleps.IsMSOLEPS(entry.Initial) {
				continue
			}
			props := msoleps.New()
			if err := props.Reset(doc); err != nil {
				continue
			}
			for _, prop := range props.Property {
				if prop.Name == "Title" {
					legacy.Title = strings.TrimSpace(prop.String())
				}
			}
		}
	}
	return legacy, nil
}
