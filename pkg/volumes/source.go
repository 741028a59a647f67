package volumes

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/chazu/hadesgeom/pkg/gdml"
	"github.com/chazu/hadesgeom/pkg/logging"
	"github.com/chazu/hadesgeom/pkg/metadata"
	"github.com/chazu/hadesgeom/pkg/scene"
)

// Source constructs a calibration source of the given type: one of
// "am_collimated", "am", "ba", "co" or "th". Source geometries are
// table-driven and exist only through the template backend.
//
// Metadata schema (all fields in mm):
//
//	height: 3
//	width: 5
//	foil:                    # ba, co
//	    height: 1
//	    width: 20
//	al_ring:                 # ba, co
//	    height: 3
//	    width_max: 25
//	    width_min: 20
//	capsule:                 # am, am_collimated, th
//	    width: 10
//	    depth: 10
//	    height: 5
//	collimator:              # am_collimated
//	    width: 40
//	    depth: 40
//	    height: 60
//	    beam_width: 5
//	    beam_height: 30
//	    window: 2
//	epoxy:                   # th
//	    height: 4
//	    width: 8
func Source(sourceType string, meta metadata.Table, backend Backend) (*scene.LogicalVolume, error) {
	if backend != BackendTemplate {
		return nil, fmt.Errorf("%w: source %q with %s backend", ErrUnsupportedBackend, sourceType, backend)
	}

	repl, err := sourceReplacements(sourceType, meta)
	if err != nil {
		return nil, err
	}
	g, err := gdml.Build("source_"+sourceType, repl)
	if err != nil {
		return nil, err
	}

	logging.Debug("constructed source", zap.String("type", sourceType))
	return g.Root, nil
}

func sourceReplacements(sourceType string, meta metadata.Table) (map[string]float64, error) {
	d := dims{t: meta}
	height := d.mm("height")
	radius := d.mm("width") / 2

	var repl map[string]float64
	switch sourceType {
	case "am_collimated":
		capsuleR := d.mm("capsule.width") / 2
		capsuleH := d.mm("capsule.height")
		colW, colD, colH := d.box("collimator")
		beamW := d.mm("collimator.beam_width")
		beamH := d.mm("collimator.beam_height")
		window := d.mm("collimator.window")
		repl = map[string]float64{
			"source_radius_in_mm":          radius,
			"source_height_in_mm":          height,
			"source_capsule_radius_in_mm":  capsuleR,
			"source_capsule_height_in_mm":  capsuleH,
			"collimator_width_in_mm":       colW,
			"collimator_depth_in_mm":       colD,
			"collimator_height_in_mm":      colH,
			"collimator_beam_width_in_mm":  beamW,
			"collimator_beam_height_in_mm": beamH,
			// Beam channel at the bottom, capsule recessed by the window
			// below the top face, active pellet at the capsule bottom.
			"collimator_beam_offset_in_mm": -(colH - beamH) / 2,
			"source_capsule_offset_in_mm":  (colH-capsuleH)/2 - window,
			"source_active_offset_in_mm":   -(capsuleH - height) / 2,
		}

	case "am":
		capW, capD, capH := d.box("capsule")
		repl = map[string]float64{
			"source_radius_in_mm":         radius,
			"source_height_in_mm":         height,
			"source_capsule_width_in_mm":  capW,
			"source_capsule_depth_in_mm":  capD,
			"source_capsule_height_in_mm": capH,
			"source_active_offset_in_mm":  (capH - height) / 2,
		}

	case "ba", "co":
		foilH := d.mm("foil.height")
		foilR := d.mm("foil.width") / 2
		ringH := d.mm("al_ring.height")
		ringRMax := d.mm("al_ring.width_max") / 2
		ringRMin := d.mm("al_ring.width_min") / 2
		repl = map[string]float64{
			"source_radius_in_mm":            radius,
			"source_height_in_mm":            height,
			"source_foil_radius_in_mm":       foilR,
			"source_foil_height_in_mm":       foilH,
			"source_foil_offset_in_mm":       ringH / 2,
			"source_alring_height_in_mm":     ringH,
			"source_alring_radius_max_in_mm": ringRMax,
			"source_alring_radius_min_in_mm": ringRMin,
		}

	case "th":
		capsuleR := d.mm("capsule.width") / 2
		capsuleH := d.mm("capsule.height")
		epoxyR := d.mm("epoxy.width") / 2
		epoxyH := d.mm("epoxy.height")
		repl = map[string]float64{
			"source_radius_in_mm":         radius,
			"source_height_in_mm":         height,
			"source_capsule_radius_in_mm": capsuleR,
			"source_capsule_height_in_mm": capsuleH,
			"source_epoxy_radius_in_mm":   epoxyR,
			"source_epoxy_height_in_mm":   epoxyH,
			"source_epoxy_offset_in_mm":   -(capsuleH - epoxyH) / 2,
		}

	default:
		return nil, fmt.Errorf("%w: %q", gdml.ErrUnknownTemplate, "source_"+sourceType)
	}

	if d.err != nil {
		return nil, d.err
	}
	return repl, nil
}
