// Package workbook implements the in-memory spreadsheet document model.
//
// A Workbook owns an ordered list of Worksheets, and each Worksheet owns a
// sparse table of Cells keyed by reference. Cells are created on first
// access. A cell holding a null value, no formula, no comment, no hyperlink
// and the default style is logically absent: it is skipped by iteration and
// serialization, and GarbageCollect removes it from storage.
//
// Cells keep no reference to their worksheet. Operations that need the
// workbook's epoch, style table or relationship list live on Worksheet.
//
// The model is not safe for concurrent mutation. Use Workbook.Clone to hand
// a snapshot to another goroutine.
package workbook
