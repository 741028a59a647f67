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

// LeadCastle constructs the lead shielding castle for the given measurement
// table. Table 1 is the classic castle (base, cavity, top and front slabs);
// table 2 adds a copper plate inside the cavity and exists only through the
// template backend.
//
// Metadata schema (all fields in mm): sub-tables "base", "inner_cavity",
// "cavity", "top", "front" and "copper_plate", each carrying width, depth
// and height. Table 1 reads base, inner_cavity, cavity, top and front;
// table 2 reads base, inner_cavity, top and copper_plate.
func LeadCastle(meta metadata.Table, tableNum int, backend Backend) (*scene.LogicalVolume, error) {
	switch tableNum {
	case 1:
		return leadCastleTable1(meta, backend)
	case 2:
		return leadCastleTable2(meta, backend)
	default:
		return nil, fmt.Errorf("%w: lead castle table %d", ErrUnsupportedBackend, tableNum)
	}
}

// box reads one width/depth/height sub-table.
func (d *dims) box(part string) (w, dp, h float64) {
	return d.mm(part + ".width"), d.mm(part + ".depth"), d.mm(part + ".height")
}

func leadCastleTable1(meta metadata.Table, backend Backend) (*scene.LogicalVolume, error) {
	d := dims{t: meta}
	baseW, baseD, baseH := d.box("base")
	icW, icD, icH := d.box("inner_cavity")
	cavW, cavD, cavH := d.box("cavity")
	topW, topD, topH := d.box("top")
	frontW, frontD, frontH := d.box("front")
	if d.err != nil {
		return nil, d.err
	}

	// Slab offsets relative to the base center. The 0.01 mm overlaps keep
	// the union faces from being exactly coplanar.
	cavityOffsetY := icD/2 + (baseD-icD)/4
	cavityOffsetZ := (icH - cavH) / 2
	topOffsetZ := -(baseH+topH)/2 - 0.01
	frontOffsetY := (baseD+frontD)/2 - 0.01
	frontOffsetZ := (baseH - frontH) / 2

	var lv *scene.LogicalVolume
	switch backend {
	case BackendTemplate:
		g, err := gdml.Build("lead_castle_table1", map[string]float64{
			"castle_base_width_in_mm":          baseW,
			"castle_base_depth_in_mm":          baseD,
			"castle_base_height_in_mm":         baseH,
			"castle_inner_cavity_width_in_mm":  icW,
			"castle_inner_cavity_depth_in_mm":  icD,
			"castle_inner_cavity_height_in_mm": icH,
			"castle_cavity_width_in_mm":        cavW,
			"castle_cavity_depth_in_mm":        cavD,
			"castle_cavity_height_in_mm":       cavH,
			"castle_top_width_in_mm":           topW,
			"castle_top_depth_in_mm":           topD,
			"castle_top_height_in_mm":          topH,
			"castle_front_width_in_mm":         frontW,
			"castle_front_depth_in_mm":         frontD,
			"castle_front_height_in_mm":        frontH,
			"castle_cavity_offset_y_in_mm":     cavityOffsetY,
			"castle_cavity_offset_z_in_mm":     cavityOffsetZ,
			"castle_top_offset_z_in_mm":        topOffsetZ,
			"castle_front_offset_y_in_mm":      frontOffsetY,
			"castle_front_offset_z_in_mm":      frontOffsetZ,
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
		base := solid.NewBox("castle_base", baseW/2, baseD/2, baseH/2)
		innerCavity := solid.NewBox("castle_inner_cavity", icW/2, icD/2, icH/2)
		cavity := solid.NewBox("castle_cavity", cavW/2, cavD/2, cavH/2)
		top := solid.NewBox("castle_top", topW/2, topD/2, topH/2)
		front := solid.NewBox("castle_front", frontW/2, frontD/2, frontH/2)

		totalCavity := solid.NewUnion("castle_total_cavity", innerCavity, cavity,
			solid.Translate(0, cavityOffsetY, cavityOffsetZ))
		baseCavity := solid.NewSubtraction("castle_base_cavity", base, totalCavity, solid.Identity)
		topBase := solid.NewUnion("castle_top_base", baseCavity, top,
			solid.Translate(0, 0, topOffsetZ))
		castle := solid.NewUnion("lead_castle", topBase, front,
			solid.Translate(0, frontOffsetY, frontOffsetZ))

		lv, err = sess.NewLogicalVolume("lead_castle", castle, pb)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: lead castle table 1 with backend %d", ErrUnsupportedBackend, backend)
	}

	logging.Debug("constructed lead castle",
		zap.Int("table", 1),
		zap.String("backend", backend.String()),
		zap.Float64("base_width_mm", baseW))
	return lv, nil
}

func leadCastleTable2(meta metadata.Table, backend Backend) (*scene.LogicalVolume, error) {
	if backend != BackendTemplate {
		return nil, fmt.Errorf("%w: lead castle table 2 with %s backend", ErrUnsupportedBackend, backend)
	}

	d := dims{t: meta}
	baseW, baseD, baseH := d.box("base")
	icW, icD, icH := d.box("inner_cavity")
	topW, topD, topH := d.box("top")
	plateW, plateD, plateH := d.box("copper_plate")
	if d.err != nil {
		return nil, d.err
	}

	g, err := gdml.Build("lead_castle_table2", map[string]float64{
		"castle_base_width_in_mm":          baseW,
		"castle_base_depth_in_mm":          baseD,
		"castle_base_height_in_mm":         baseH,
		"castle_inner_cavity_width_in_mm":  icW,
		"castle_inner_cavity_depth_in_mm":  icD,
		"castle_inner_cavity_height_in_mm": icH,
		"castle_top_width_in_mm":           topW,
		"castle_top_depth_in_mm":           topD,
		"castle_top_height_in_mm":          topH,
		"copper_plate_width_in_mm":         plateW,
		"copper_plate_depth_in_mm":         plateD,
		"copper_plate_height_in_mm":        plateH,
		"castle_top_offset_z_in_mm":        -(baseH+topH)/2 - 0.01,
		// Plate rests on the cavity floor.
		"copper_plate_offset_z_in_mm": -(icH - plateH) / 2,
	})
	if err != nil {
		return nil, err
	}

	logging.Debug("constructed lead castle",
		zap.Int("table", 2),
		zap.Float64("base_width_mm", baseW))
	return g.Root, nil
}
