package volumes

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/chazu/hadesgeom/pkg/gdml"
	"github.com/chazu/hadesgeom/pkg/logging"
	"github.com/chazu/hadesgeom/pkg/material"
	"github.com/chazu/hadesgeom/pkg/metadata"
	"github.com/chazu/hadesgeom/pkg/scene"
	"github.com/chazu/hadesgeom/pkg/solid"
)

// Wrap constructs the mylar detector wrap: an outer tube with the inner
// tube carved out, leaving a thin shell closed at the top.
//
// Metadata schema:
//
//	outer:
//	    height_in_mm: 100
//	    radius_in_mm: 50
//	inner:
//	    height_in_mm: 99
//	    radius_in_mm: 49
func Wrap(meta metadata.Table, backend Backend) (*scene.LogicalVolume, error) {
	d := dims{t: meta}
	outerH := d.mm("outer.height_in_mm")
	outerR := d.mm("outer.radius_in_mm")
	innerH := d.mm("inner.height_in_mm")
	innerR := d.mm("inner.radius_in_mm")
	if d.err != nil {
		return nil, d.err
	}
	innerOffset := -(outerH - innerH) / 2

	var lv *scene.LogicalVolume
	switch backend {
	case BackendTemplate:
		g, err := gdml.Build("wrap", map[string]float64{
			"wrap_outer_height_in_mm": outerH,
			"wrap_outer_radius_in_mm": outerR,
			"wrap_inner_height_in_mm": innerH,
			"wrap_inner_radius_in_mm": innerR,
			"wrap_inner_offset_in_mm": innerOffset,
		})
		if err != nil {
			return nil, err
		}
		lv = g.Root

	case BackendProcedural:
		sess := scene.NewSession()
		mylar, err := material.Mylar(sess.Materials)
		if err != nil {
			return nil, err
		}
		outer := solid.NewTube("wrap_outer", 0, outerR, outerH/2, 0, twoPi)
		inner := solid.NewTube("wrap_inner", 0, innerR, innerH/2, 0, twoPi)
		shell := solid.NewSubtraction("wrap", outer, inner, solid.Translate(0, 0, innerOffset))
		lv, err = sess.NewLogicalVolume("wrap", shell, mylar)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: wrap with backend %d", ErrUnsupportedBackend, backend)
	}

	logging.Debug("constructed wrap",
		zap.String("backend", backend.String()),
		zap.Float64("outer_height_mm", outerH),
		zap.Float64("outer_radius_mm", outerR))
	return lv, nil
}
