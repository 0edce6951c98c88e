package schemalens

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the inference engine.
var (
	// ErrUnsupportedKind is returned when a format adapter emits an event
	// the engine does not model: an enum, a newtype struct, a non-string
	// map key, or an optional at the schema root that the adapter did not
	// unwrap.
	ErrUnsupportedKind = errors.New("unsupported kind")
	// ErrIntegerTooLarge is returned when a u128 event does not fit into
	// a signed 128-bit integer.
	ErrIntegerTooLarge = errors.New("integer too large")
	// ErrFormatError is returned when a format adapter fails mid-document.
	// The schema being built is left consistent but possibly under-populated.
	ErrFormatError = errors.New("format error")
)

// invariantf panics with a formatted message. It marks conditions that are
// programming errors rather than recoverable failures: an aggregator
// attached to the wrong Schema variant, a Union holding a nested Union, or
// similar violations of the data model's internal invariants.
func invariantf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
