package scene

import "errors"

var (
	// ErrDuplicateName indicates two logical volumes registered under the
	// same name within one session.
	ErrDuplicateName = errors.New("scene: duplicate logical volume name")
	// ErrCyclicPlacement indicates a placement that would make a volume an
	// ancestor of itself.
	ErrCyclicPlacement = errors.New("scene: placement would create a cycle")
)
