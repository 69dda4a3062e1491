package engine

import "errors"

// Sentinel errors wrapped by ConfigError and InputError. Callers compare
// against these with errors.Is.
var (
	ErrUnknownOption  = errors.New("unknown settings option")
	ErrFrozenWrite     = errors.New("settings already frozen")
	ErrRangeInvalid    = errors.New("settings range invalid")
	ErrNonMonotonic    = errors.New("replay times are not non-decreasing")
	ErrColumnMismatch  = errors.New("map and replay column counts differ")
	ErrEmptyMap        = errors.New("map has no aimpoints")
	ErrTypeMismatch    = errors.New("settings option value has the wrong type")
)
