package solid

import "errors"

// ErrInvalidProfile indicates a polycone z-plane list that is not strictly
// monotonic or has fewer than two planes.
var ErrInvalidProfile = errors.New("solid: invalid revolution profile")
