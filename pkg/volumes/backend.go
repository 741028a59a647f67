package volumes

import (
	"errors"
	"math"

	"github.com/chazu/hadesgeom/pkg/metadata"
)

// ErrUnsupportedBackend indicates a component kind that has no
// implementation for the requested backend. The caller may retry with the
// other selector.
var ErrUnsupportedBackend = errors.New("volumes: unsupported backend")

// Backend selects the construction path for a component build.
type Backend int

const (
	// BackendTemplate substitutes metadata into an embedded geometry
	// description and parses the result. The most feature-complete path.
	BackendTemplate Backend = iota

	// BackendProcedural constructs the graph with direct solid, material
	// and scene calls, no intermediate text.
	BackendProcedural
)

func (b Backend) String() string {
	switch b {
	case BackendTemplate:
		return "template"
	case BackendProcedural:
		return "procedural"
	default:
		return "unknown"
	}
}

const twoPi = 2 * math.Pi

// dims reads canonical-millimeter fields from a metadata table, remembering
// the first failure so builder call sites stay flat. Fields may carry their
// own unit suffix; bare fields follow the documented millimeter schema.
type dims struct {
	t   metadata.Table
	err error
}

func (d *dims) mm(path string) float64 {
	if d.err != nil {
		return 0
	}
	v, err := d.t.LengthIn(path, metadata.Millimeter)
	if err != nil {
		d.err = err
	}
	return v
}
