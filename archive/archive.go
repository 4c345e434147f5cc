package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/tsawler/xlkit/format"
)

// ErrInvalidFile is returned when a byte stream cannot be opened as a package.
var ErrInvalidFile = errors.New("archive: invalid file")

// ErrPartNotFound is returned when a requested part does not exist.
var ErrPartNotFound = errors.New("archive: part not found")

// Archive is an opened package.
type Archive struct {
	zr    *zip.Reader
	data  []byte
	names []string
	parts map[string]*zip.File

	// Repaired is set when trailing bytes had to be cut from the central directory.
	Repaired bool
}

// Open indexes the package held in data.
func Open(data []byte) (*Archive, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidFile)
	}
	if format.IsCompoundFile(data) {
		legacy, err := ProbeCompoundFile(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidFile, legacy)
	}
	if !format.IsZIP(data) {
		return nil, fmt.Errorf("%w: not a ZIP archive", ErrInvalidFile)
	}

	a := &Archive{}
	if NeedsRepair(data) {
		data = RepairCentralDirectory(data)
		a.Repaired = true
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: indexing archive: %v", ErrInvalidFile, err)
	}

	a.zr = zr
	a.data = data
	a.parts = make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		name := normalize(f.Name)
		if _, dup := a.parts[name]; dup {
			continue
		}
		a.parts[name] = f
		a.names = append(a.names, name)
	}
	return a, nil
}

// OpenFile reads and indexes the package at path.
func OpenFile(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return Open(data)
}

// OpenReader copies size bytes from r and indexes them.
func OpenReader(r io.ReaderAt, size int64) (*Archive, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrInvalidFile, size)
	}
	data := make([]byte, size)
	n, err := r.ReadAt(data, 0)
	if err != nil && !(errors.Is(err, io.EOF) && int64(n) == size) {
		return nil, fmt.Errorf("reading archive: %w", err)
	}
	return Open(data)
}

// normalize strips the leading slash used by part names in content types
// and relationship targets.
func normalize(name string) string {
	return strings.TrimPrefix(name, "/")
}

// Parts returns the part names in archive order.
func (a *Archive) Parts() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Has reports whether the named part exists.
func (a *Archive) Has(name string) bool {
	_, ok := a.parts[normalize(name)]
	return ok
}

// Bytes returns the (possibly repaired) package bytes.
func (a *Archive) Bytes() []byte {
	return a.data
}

// OpenPart opens a part for streaming.
func (a *Archive) OpenPart(name string) (io.ReadCloser, error) {
	f, ok := a.parts[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrInvalidFile, name, err)
	}
	return rc, nil
}

// ReadPart returns the full content of a part.
func (a *Archive) ReadPart(name string) ([]byte, error) {
	rc, err := a.OpenPart(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidFile, name, err)
	}
	return data, nil
}
