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

// Holder constructs the detector holder for the given detector type,
// "bege" or "icpc". The ICPC holder has a table-driven multi-plane profile
// available only through the template backend.
//
// Metadata schema:
//
//	cylinder:
//	    inner:
//	        height_in_mm: 100
//	        radius_in_mm: 100
//	    outer:
//	        height_in_mm: 104
//	        radius_in_mm: 104
//	bottom_cyl:          # icpc only
//	    inner: {height_in_mm: ..., radius_in_mm: ...}
//	    outer: {height_in_mm: ..., radius_in_mm: ...}
//	rings:
//	    position_top_ring_in_mm: 20
//	    position_bottom_ring_in_mm: 30   # icpc only
//	    radius_in_mm: 150
//	    height_in_mm: 10
func Holder(meta metadata.Table, detType string, backend Backend) (*scene.LogicalVolume, error) {
	switch detType {
	case "bege":
		return begeHolder(meta, backend)
	case "icpc":
		return icpcHolder(meta, backend)
	default:
		return nil, fmt.Errorf("%w: holder for detector type %q", ErrUnsupportedBackend, detType)
	}
}

func begeHolder(meta metadata.Table, backend Backend) (*scene.LogicalVolume, error) {
	d := dims{t: meta}
	outerH := d.mm("cylinder.outer.height_in_mm")
	outerR := d.mm("cylinder.outer.radius_in_mm")
	innerH := d.mm("cylinder.inner.height_in_mm")
	innerR := d.mm("cylinder.inner.radius_in_mm")
	maxR := d.mm("rings.radius_in_mm")
	ringH := d.mm("rings.height_in_mm")
	posTopRing := d.mm("rings.position_top_ring_in_mm")
	if d.err != nil {
		return nil, d.err
	}
	boreOffset := -(outerH - innerH) / 2
	ringOffset := posTopRing + ringH/2 - outerH/2

	var lv *scene.LogicalVolume
	switch backend {
	case BackendTemplate:
		g, err := gdml.Build("holder_bege", map[string]float64{
			"holder_outer_radius_in_mm": outerR,
			"holder_outer_height_in_mm": outerH,
			"holder_inner_radius_in_mm": innerR,
			"holder_inner_height_in_mm": innerH,
			"holder_bore_offset_in_mm":  boreOffset,
			"holder_ring_radius_in_mm":  maxR,
			"holder_ring_height_in_mm":  ringH,
			"holder_ring_offset_in_mm":  ringOffset,
		})
		if err != nil {
			return nil, err
		}
		lv = g.Root

	case BackendProcedural:
		sess := scene.NewSession()
		alloy, err := material.EnAw2011T8(sess.Materials)
		if err != nil {
			return nil, err
		}
		body := solid.NewTube("holder_body", 0, outerR, outerH/2, 0, twoPi)
		bore := solid.NewTube("holder_bore", 0, innerR, innerH/2, 0, twoPi)
		shell := solid.NewSubtraction("holder_shell", body, bore, solid.Translate(0, 0, boreOffset))
		ring := solid.NewTube("holder_ring", outerR, maxR, ringH/2, 0, twoPi)
		ringed := solid.NewUnion("bege_holder", shell, ring, solid.Translate(0, 0, ringOffset))
		lv, err = sess.NewLogicalVolume("bege_holder", ringed, alloy)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: bege holder with backend %d", ErrUnsupportedBackend, backend)
	}

	logging.Debug("constructed bege holder",
		zap.String("backend", backend.String()),
		zap.Float64("outer_height_mm", outerH))
	return lv, nil
}

func icpcHolder(meta metadata.Table, backend Backend) (*scene.LogicalVolume, error) {
	if backend != BackendTemplate {
		return nil, fmt.Errorf("%w: icpc holder with %s backend", ErrUnsupportedBackend, backend)
	}

	d := dims{t: meta}
	outerH := d.mm("cylinder.outer.height_in_mm")
	outerR := d.mm("cylinder.outer.radius_in_mm")
	innerH := d.mm("cylinder.inner.height_in_mm")
	innerR := d.mm("cylinder.inner.radius_in_mm")
	bcOuterH := d.mm("bottom_cyl.outer.height_in_mm")
	bcOuterR := d.mm("bottom_cyl.outer.radius_in_mm")
	bcInnerH := d.mm("bottom_cyl.inner.height_in_mm")
	bcInnerR := d.mm("bottom_cyl.inner.radius_in_mm")
	maxR := d.mm("rings.radius_in_mm")
	ringH := d.mm("rings.height_in_mm")
	posTopRing := d.mm("rings.position_top_ring_in_mm")
	posBottomRing := d.mm("rings.position_bottom_ring_in_mm")
	if d.err != nil {
		return nil, d.err
	}

	g, err := gdml.Build("holder_icpc", map[string]float64{
		"icpc_outer_radius_in_mm":            outerR,
		"icpc_inner_radius_in_mm":            innerR,
		"icpc_outer_bottom_cyl_radius_in_mm": bcOuterR,
		"icpc_inner_bottom_cyl_radius_in_mm": bcInnerR,
		"icpc_end_bottom_cyl_inner_in_mm":    innerH + bcInnerH,
		"icpc_end_bottom_cyl_outer_in_mm":    outerH + bcOuterH,
		"icpc_max_radius_in_mm":              maxR,
		"icpc_ring_height_in_mm":             ringH,
		"icpc_top_ring_offset_in_mm":         posTopRing + ringH/2,
		"icpc_bottom_ring_offset_in_mm":      posBottomRing + ringH/2,
	})
	if err != nil {
		return nil, err
	}

	logging.Debug("constructed icpc holder",
		zap.Float64("outer_height_mm", outerH),
		zap.Float64("max_radius_mm", maxR))
	return g.Root, nil
}
