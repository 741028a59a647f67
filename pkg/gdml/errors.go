package gdml

import "errors"

var (
	// ErrUnknownTemplate indicates a template identifier with no embedded
	// template text.
	ErrUnknownTemplate = errors.New("gdml: unknown template")
	// ErrTemplateParse indicates a substituted geometry description that
	// could not be parsed into a well-formed scene graph.
	ErrTemplateParse = errors.New("gdml: cannot parse geometry description")
)
