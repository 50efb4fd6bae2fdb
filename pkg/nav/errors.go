package nav

import (
	"errors"
	"fmt"
)

// Sentinel errors for pattern compilation and registration.
var (
	// ErrDuplicateParam is returned when a pattern declares the same
	// parameter name in more than one segment.
	ErrDuplicateParam = errors.New("nav: duplicate pattern parameter")

	// ErrPatternSyntax is returned when a pattern is malformed: it does
	// not start with "/", declares an empty parameter name, or places a
	// wildcard anywhere but the final segment.
	ErrPatternSyntax = errors.New("nav: invalid pattern syntax")

	// ErrNilHandler is returned when a route is registered without a
	// handler.
	ErrNilHandler = errors.New("nav: nil route handler")
)

// PatternError wraps a compilation error with the offending pattern.
type PatternError struct {
	Pattern string
	Err     error
}

// Error returns the error message with the pattern attached.
func (e *PatternError) Error() string {
	return fmt.Sprintf("nav: pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// HandlerPanic wraps a panic recovered from a route handler. It is
// reported through Result.Err with StatusFault after the platform has
// degraded to a full navigation.
type HandlerPanic struct {
	Pattern string
	Value   any
}

// Error returns the panic message with the route pattern attached.
func (e *HandlerPanic) Error() string {
	return fmt.Sprintf("nav: handler panic on %q: %v", e.Pattern, e.Value)
}
