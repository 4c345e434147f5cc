// Package value implements the cell value model.
//
// A Value is a closed tagged union over null, boolean, number, string, error
// and formula. Accessors for a representation other than the active one fail
// with ErrDataType instead of coercing.
//
// The package also converts between calendar times and day serials for both
// workbook epochs, and infers a typed value from raw text with GuessType.
package value
