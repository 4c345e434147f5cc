package opc

import (
	"errors"
	"fmt"
)

// ErrPartParse is returned when a required part is malformed.
var ErrPartParse = errors.New("opc: malformed part")

// PartError records which part failed to parse.
type PartError struct {
	Part string
	Err  error
}

// Error implements the error interface.
func (e *PartError) Error() string {
	return fmt.Sprintf("part %s: %v", e.Part, e.Err)
}

// Unwrap returns the underlying error.
func (e *PartError) Unwrap() error {
	return e.Err
}

// NewPartError wraps err so that it matches both *PartError and ErrPartParse.
func NewPartError(part string, err error) error {
	if errors.Is(err, ErrPartParse) {
		return &PartError{Part: part, Err: err}
	}
	return &PartError{Part: part, Err: fmt.Errorf("%w: %w", ErrPartParse, err)}
}
