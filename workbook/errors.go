package workbook

import "errors"

var (
	// ErrSheetTitle is returned for a title that is empty, too long, contains
	// a forbidden character, or collides with another sheet.
	ErrSheetTitle = errors.New("workbook: invalid sheet title")

	// ErrSheetNotFound is returned when a sheet lookup fails.
	ErrSheetNotFound = errors.New("workbook: sheet not found")

	// ErrNamedRange is returned for an undefined or misplaced named range.
	ErrNamedRange = errors.New("workbook: named range error")
)
