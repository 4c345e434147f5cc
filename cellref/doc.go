// Package cellref converts between spreadsheet column letters and indices and
// parses A1-style cell and range references.
//
// Columns are 1-based and limited to the three-letter ceiling ZZZ (18278).
// Rows are 1-based. Either axis of a reference may carry an absolute ($)
// marker; markers are preserved through parsing, formatting and offsets.
//
//	ref, err := cellref.Parse("$B$15")
//	next, err := ref.Offset(1, 2) // $C$17
//
// A [RangeReference] is an ordered pair of corners. Single-cell text such as
// "C5" parses as the 1x1 range C5:C5.
package cellref
