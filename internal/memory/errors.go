package memory

import "errors"

// Sentinel errors for the memory package. Check with errors.Is:
//
//	errors.Is(err, memory.ErrValidation)
var (
	// ErrValidation marks malformed numeric input (accuracy out of range,
	// negative response time). Never retried; no state is mutated.
	ErrValidation = errors.New("memory: invalid input")
	// ErrInvariant marks a computed state outside its legal range. This is a
	// programming-error assertion, not a recoverable condition.
	ErrInvariant = errors.New("memory: invariant violation")
)
