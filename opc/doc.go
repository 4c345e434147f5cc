// Package opc resolves the part graph of a workbook package.
//
// It reads the content-type declarations, the relationship parts that link
// parts to each other, and the workbook's sheet list, and joins them into an
// ordered list of worksheet parts. Order always follows declarations in the
// XML, never the order of entries in the archive.
package opc
