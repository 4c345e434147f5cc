// Package xlkit provides a fluent API for loading, inspecting, and saving
// spreadsheet workbooks.
//
// Basic usage:
//
//	wb, err := xlkit.Open("report.xlsx").Workbook()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(wb.SheetTitles())
//
// With options:
//
//	rows, err := xlkit.Open("report.xlsx").
//	    DataOnly().
//	    GuessTypes().
//	    Rows("Summary")
//
// For finer control the lower-level xlsx and workbook packages are also available.
package xlkit

import (
	"io"

	"github.com/tsawler/xlkit/workbook"
	"github.com/tsawler/xlkit/xlsx"
)

// Open returns a Loader for the workbook file at filename.
// Nothing is read until a terminal operation such as Workbook() is called.
//
// Example:
//
//	wb, err := xlkit.Open("book.xlsx").Workbook()
func Open(filename string) *Loader {
	l := &Loader{
		filename: filename,
		options:  defaultOptions(),
	}
	if filename == "" {
		l.err = errNoSource
	}
	return l
}

// FromBytes returns a Loader reading an in-memory workbook package.
func FromBytes(data []byte) *Loader {
	return &Loader{
		data:    data,
		options: defaultOptions(),
	}
}

// FromReader returns a Loader reading size bytes from r.
// The caller keeps ownership of r.
func FromReader(r io.ReaderAt, size int64) *Loader {
	l := &Loader{
		reader:  r,
		size:    size,
		options: defaultOptions(),
	}
	if r == nil {
		l.err = errNoSource
	}
	return l
}

// New returns an empty workbook holding a single sheet named Sheet1.
func New() *workbook.Workbook {
	return workbook.New()
}

// Save writes wb to path as an xlsx package.
//
// Example:
//
//	wb := xlkit.New()
//	wb.Active().Set("A1", "hello")
//	err := xlkit.Save(wb, "hello.xlsx")
func Save(wb *workbook.Workbook, path string) error {
	return xlsx.SaveFile(wb, path)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	titles := xlkit.Must(xlkit.Open("book.xlsx").SheetTitles())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
