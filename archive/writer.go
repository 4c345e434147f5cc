package archive

import (
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// fixedModTime keeps saved packages byte-identical across runs.
var fixedModTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Writer packages parts into a ZIP archive.
type Writer struct {
	zw    *zip.Writer
	names map[string]bool
}

// NewWriter returns a Writer compressing with the given flate level.
func NewWriter(w io.Writer, level int) *Writer {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})
	return &Writer{zw: zw, names: make(map[string]bool)}
}

// WritePart adds a deflated part. Writing the same name twice is an error.
func (w *Writer) WritePart(name string, data []byte) error {
	name = normalize(name)
	if w.names[name] {
		return fmt.Errorf("archive: duplicate part %s", name)
	}
	w.names[name] = true

	fw, err := w.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: fixedModTime,
	})
	if err != nil {
		return fmt.Errorf("creating part %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("writing part %s: %w", name, err)
	}
	return nil
}

// Close finishes the central directory.
func (w *Writer) Close() error {
	return w.zw.Close()
}
