// Package format provides spreadsheet file format detection for the xlkit library.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Format represents a spreadsheet container format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// XLSX indicates an Office Open XML workbook (.xlsx).
	XLSX
	// XLSM indicates a macro-enabled Office Open XML workbook (.xlsm).
	XLSM
	// XLTX indicates an Office Open XML template (.xltx).
	XLTX
	// XLSB indicates a binary workbook (.xlsb). It is recognized but not supported.
	XLSB
	// XLS indicates a legacy compound-file workbook (.xls). It is recognized but not supported.
	XLS
	// ZIP indicates a ZIP archive that is not a recognizable workbook.
	ZIP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case XLSX:
		return "XLSX"
	case XLSM:
		return "XLSM"
	case XLTX:
		return "XLTX"
	case XLSB:
		return "XLSB"
	case XLS:
		return "XLS"
	case ZIP:
		return "ZIP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case XLSX:
		return ".xlsx"
	case XLSM:
		return ".xlsm"
	case XLTX:
		return ".xltx"
	case XLSB:
		return ".xlsb"
	case XLS:
		return ".xls"
	case ZIP:
		return ".zip"
	default:
		return ""
	}
}

// Supported reports whether the package reader can load this format.
func (f Format) Supported() bool {
	return f == XLSX || f == XLSM || f == XLTX
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return XLSX
	case ".xlsm":
		return XLSM
	case ".xltx":
		return XLTX
	case ".xlsb":
		return XLSB
	case ".xls":
		return XLS
	case ".zip":
		return ZIP
	default:
		return Unknown
	}
}

var (
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	// Empty archives start directly with the end-of-central-directory record.
	emptyZipMagic = []byte{0x50, 0x4B, 0x05, 0x06}
	cfbMagic      = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// IsZIP reports whether data starts with a ZIP signature.
func IsZIP(data []byte) bool {
	return bytes.HasPrefix(data, zipMagic) || bytes.HasPrefix(data, emptyZipMagic)
}

// IsCompoundFile reports whether data starts with the compound-file signature
// used by legacy workbooks and encrypted packages.
func IsCompoundFile(data []byte) bool {
	return bytes.HasPrefix(data, cfbMagic)
}

// DetectFromMagic checks file magic bytes to determine format.
// A ZIP signature alone yields ZIP; use DetectFromReader to look inside.
func DetectFromMagic(data []byte) Format {
	switch {
	case IsCompoundFile(data):
		return XLS
	case IsZIP(data):
		return ZIP
	default:
		return Unknown
	}
}

// DetectFromReader inspects the content to determine format.
// ZIP archives are opened to tell the Open XML flavours from the binary one.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 8)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if IsCompoundFile(magic) {
		return XLS, nil
	}
	if bytes.HasPrefix(magic, zipMagic) {
		return detectZIPFormat(r, size)
	}
	if bytes.HasPrefix(magic, emptyZipMagic) {
		return ZIP, nil
	}
	return Unknown, nil
}

// detectZIPFormat inspects a ZIP archive's part names and content types.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	var contentTypes string
	var hasWorkbookXML, hasWorkbookBin bool
	for _, f := range zr.File {
		switch f.Name {
		case "[Content_Types].xml":
			rc, err := f.Open()
			if err == nil {
				data, _ := io.ReadAll(io.LimitReader(rc, 64*1024))
				rc.Close()
				contentTypes = string(data)
			}
		case "xl/workbook.xml":
			hasWorkbookXML = true
		case "xl/workbook.bin":
			hasWorkbookBin = true
		}
	}

	switch {
	case hasWorkbookBin || strings.Contains(contentTypes, "sheet.binary.macroEnabled.main"):
		return XLSB, nil
	case strings.Contains(contentTypes, "sheet.macroEnabled.main"):
		return XLSM, nil
	case strings.Contains(contentTypes, "spreadsheetml.template.main"):
		return XLTX, nil
	case hasWorkbookXML || strings.Contains(contentTypes, "spreadsheetml.sheet.main"):
		return XLSX, nil
	default:
		return ZIP, nil
	}
}
