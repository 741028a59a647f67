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

// cryostatDims are the derived cryostat measures shared by the cryostat
// body and the vacuum cavity that fills its hollow.
type cryostatDims struct {
	height       float64
	radius       float64
	cavityRadius float64
	cavityHeight float64
	cavityOffset float64
}

// Metadata schema (all fields in mm):
//
//	width: 200
//	thickness: 2
//	height: 200
//	position_cavity_from_top: 10
//	position_cavity_from_bottom: 20
func readCryostatDims(meta metadata.Table) (cryostatDims, error) {
	d := dims{t: meta}
	width := d.mm("width")
	thickness := d.mm("thickness")
	height := d.mm("height")
	posTop := d.mm("position_cavity_from_top")
	posBottom := d.mm("position_cavity_from_bottom")
	if d.err != nil {
		return cryostatDims{}, d.err
	}
	return cryostatDims{
		height:       height,
		radius:       width / 2,
		cavityRadius: (width - 2*thickness) / 2,
		cavityHeight: height - posTop - posBottom,
		cavityOffset: (posBottom - posTop) / 2,
	}, nil
}

// Cryostat constructs the aluminium-alloy cryostat: a full cylinder with
// the vacuum hollow carved out between the top and bottom walls.
func Cryostat(meta metadata.Table, backend Backend) (*scene.LogicalVolume, error) {
	cd, err := readCryostatDims(meta)
	if err != nil {
		return nil, err
	}

	var lv *scene.LogicalVolume
	switch backend {
	case BackendTemplate:
		g, err := gdml.Build("cryostat", map[string]float64{
			"cryostat_radius_in_mm":        cd.radius,
			"cryostat_height_in_mm":        cd.height,
			"cryostat_cavity_radius_in_mm": cd.cavityRadius,
			"cryostat_cavity_height_in_mm": cd.cavityHeight,
			"cryostat_cavity_offset_in_mm": cd.cavityOffset,
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
		body := solid.NewTube("cryostat_body", 0, cd.radius, cd.height/2, 0, twoPi)
		cavity := solid.NewTube("cryostat_cavity", 0, cd.cavityRadius, cd.cavityHeight/2, 0, twoPi)
		hollowed := solid.NewSubtraction("cryostat", body, cavity, solid.Translate(0, 0, cd.cavityOffset))
		lv, err = sess.NewLogicalVolume("cryostat", hollowed, alloy)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: cryostat with backend %d", ErrUnsupportedBackend, backend)
	}

	logging.Debug("constructed cryostat",
		zap.String("backend", backend.String()),
		zap.Float64("height_mm", cd.height),
		zap.Float64("radius_mm", cd.radius))
	return lv, nil
}

// VacuumCavity constructs the vacuum volume filling the cryostat hollow.
// It takes the same metadata as Cryostat and exists only procedurally.
func VacuumCavity(meta metadata.Table, backend Backend) (*scene.LogicalVolume, error) {
	if backend != BackendProcedural {
		return nil, fmt.Errorf("%w: vacuum cavity with %s backend", ErrUnsupportedBackend, backend)
	}
	cd, err := readCryostatDims(meta)
	if err != nil {
		return nil, err
	}

	sess := scene.NewSession()
	vac, err := material.Vacuum(sess.Materials)
	if err != nil {
		return nil, err
	}
	profile, err := solid.NewPolycone("vacuum_cavity", []solid.ZPlane{
		{Z: 0, InnerR: 0, OuterR: cd.cavityRadius},
		{Z: cd.cavityHeight, InnerR: 0, OuterR: cd.cavityRadius},
	}, 0, twoPi)
	if err != nil {
		return nil, err
	}
	lv, err := sess.NewLogicalVolume("cavity", profile, vac)
	if err != nil {
		return nil, err
	}

	logging.Debug("constructed vacuum cavity",
		zap.Float64("radius_mm", cd.cavityRadius),
		zap.Float64("height_mm", cd.cavityHeight))
	return lv, nil
}
