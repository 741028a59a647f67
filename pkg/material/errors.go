package material

import "errors"

var (
	// ErrMaterialConflict indicates a re-registration under an existing name
	// with different properties.
	ErrMaterialConflict = errors.New("material: conflicting registration")
	// ErrMassFraction indicates component mass fractions that do not sum to one.
	ErrMassFraction = errors.New("material: mass fractions must sum to 1")
)
