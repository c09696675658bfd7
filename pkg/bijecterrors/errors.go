// Package bijecterrors provides errors used by generated bijection code.
package bijecterrors

import (
	"errors"
	"fmt"
)

// ErrUnmatched reports that a generated conversion function fell through
// every arm of its dispatch. A well-formed bijection covers every value of
// its input type, so reaching this error means the clause list was not total
// for the converted value.
var ErrUnmatched = errors.New("unmatched value")

// Unmatched builds the error a generated conversion function panics with when
// no clause matches the input. typeName is the declared input type and v is
// the offending value.
func Unmatched(typeName string, v any) error {
	return fmt.Errorf("bijectgen: converting %s: %v: %w", typeName, v, ErrUnmatched)
}
