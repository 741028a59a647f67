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

// BottomPlate constructs the aluminium bottom plate with its front cavity
// cut out.
//
// Metadata schema (all fields in mm):
//
//	width: 100
//	depth: 200
//	height: 300
//	cavity:
//	    width: 100
//	    depth: 200
//	    height: 200
func BottomPlate(meta metadata.Table, backend Backend) (*scene.LogicalVolume, error) {
	d := dims{t: meta}
	width := d.mm("width")
	depth := d.mm("depth")
	height := d.mm("height")
	cavW := d.mm("cavity.width")
	cavD := d.mm("cavity.depth")
	cavH := d.mm("cavity.height")
	if d.err != nil {
		return nil, d.err
	}
	cavityOffset := depth / 2

	var lv *scene.LogicalVolume
	switch backend {
	case BackendTemplate:
		g, err := gdml.Build("bottom_plate", map[string]float64{
			"bottom_plate_width_in_mm":         width,
			"bottom_plate_depth_in_mm":         depth,
			"bottom_plate_height_in_mm":        height,
			"bottom_plate_cavity_width_in_mm":  cavW,
			"bottom_plate_cavity_depth_in_mm":  cavD,
			"bottom_plate_cavity_height_in_mm": cavH,
			"bottom_plate_cavity_offset_in_mm": cavityOffset,
		})
		if err != nil {
			return nil, err
		}
		lv = g.Root

	case BackendProcedural:
		sess := scene.NewSession()
		al, err := material.PureAluminium(sess.Materials)
		if err != nil {
			return nil, err
		}
		body := solid.NewBox("bottom_plate_body", width/2, depth/2, height/2)
		cavity := solid.NewBox("bottom_plate_cavity", cavW/2, cavD/2, cavH/2)
		plate := solid.NewSubtraction("bottom_plate", body, cavity, solid.Translate(0, cavityOffset, 0))
		lv, err = sess.NewLogicalVolume("bottom_plate", plate, al)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: bottom plate with backend %d", ErrUnsupportedBackend, backend)
	}

	logging.Debug("constructed bottom plate",
		zap.String("backend", backend.String()),
		zap.Float64("width_mm", width))
	return lv, nil
}

// ThPlate constructs the lead collimation plate for the Th source: an
// annulus whose bore lets the beam through.
//
// Metadata schema (all fields in mm):
//
//	plates:
//	    height: 10
//	    width: 100
//	    cavity_width: 20
func ThPlate(meta metadata.Table, backend Backend) (*scene.LogicalVolume, error) {
	d := dims{t: meta}
	height := d.mm("plates.height")
	radius := d.mm("plates.width") / 2
	cavityRadius := d.mm("plates.cavity_width") / 2
	if d.err != nil {
		return nil, d.err
	}

	var lv *scene.LogicalVolume
	switch backend {
	case BackendTemplate:
		g, err := gdml.Build("th_plate", map[string]float64{
			"th_plate_radius_in_mm":        radius,
			"th_plate_cavity_radius_in_mm": cavityRadius,
			"th_plate_height_in_mm":        height,
		})
		if err != nil {
			return nil, err
		}
		lv = g.Root

	case BackendProcedural:
		sess := scene.NewSession()
		pb, err := material.PureLead(sess.Materials)
		if err != nil {
			return nil, err
		}
		annulus := solid.NewTube("th_plate", cavityRadius, radius, height/2, 0, twoPi)
		lv, err = sess.NewLogicalVolume("th_plate", annulus, pb)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: th plate with backend %d", ErrUnsupportedBackend, backend)
	}

	logging.Debug("constructed th plate",
		zap.String("backend", backend.String()),
		zap.Float64("radius_mm", radius))
	return lv, nil
}
