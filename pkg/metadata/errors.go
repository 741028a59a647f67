package metadata

import "errors"

var (
	// ErrMissingField indicates a builder required a field absent from the table.
	ErrMissingField = errors.New("metadata: required field is missing")
	// ErrUnitMismatch indicates a field's declared unit cannot be resolved
	// to the dimension the consuming operation expects.
	ErrUnitMismatch = errors.New("metadata: unit does not match expected dimension")
)
