package volumes

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/chazu/hadesgeom/pkg/gdml"
	"github.com/chazu/hadesgeom/pkg/logging"
	"github.com/chazu/hadesgeom/pkg/metadata"
	"github.com/chazu/hadesgeom/pkg/scene"
)

// SourceHolder constructs the holder for a calibration source. The holder
// variant depends on the source type and, for the Th source, on the
// measurement type ("lat" or "top"). Holder geometries exist only through
// the template backend.
//
// Metadata schema (all fields in mm):
//
//	source:
//	    top_plate_height: 10
//	    top_plate_width: 10
//	    top_plate_depth: 10    # am only
//	    top_height: 2
//	    top_inner_width: 2
//	    cavity_height: 5       # th lat only
//	    height: 20             # th lat only
//	outer_width: 100
//	inner_width: 10
//	cavity:
//	    width: 30              # th lat only
func SourceHolder(sourceType, measType string, meta metadata.Table, backend Backend) (*scene.LogicalVolume, error) {
	if backend != BackendTemplate {
		return nil, fmt.Errorf("%w: source holder for %q with %s backend", ErrUnsupportedBackend, sourceType, backend)
	}

	d := dims{t: meta}
	innerR := d.mm("inner_width") / 2
	outerR := d.mm("outer_width") / 2

	var (
		template string
		repl     map[string]float64
	)
	switch {
	case sourceType == "th" && measType == "lat":
		height := d.mm("source.height")
		cavityH := d.mm("source.cavity_height")
		cavityR := d.mm("cavity.width") / 2
		template = "source_holder_th_lat"
		repl = map[string]float64{
			"holder_inner_radius_in_mm":  innerR,
			"holder_outer_radius_in_mm":  outerR,
			"holder_height_in_mm":        height,
			"holder_cavity_radius_in_mm": cavityR,
			"holder_cavity_height_in_mm": cavityH,
			// Cavity opens at the top face.
			"holder_cavity_offset_in_mm": (height - cavityH) / 2,
		}

	case sourceType == "am":
		tubeH := d.mm("source.top_height")
		plateW := d.mm("source.top_plate_width")
		plateD := d.mm("source.top_plate_depth")
		plateH := d.mm("source.top_plate_height")
		template = "source_holder_am"
		repl = map[string]float64{
			"holder_inner_radius_in_mm":     innerR,
			"holder_outer_radius_in_mm":     outerR,
			"holder_tube_height_in_mm":      tubeH,
			"holder_top_plate_width_in_mm":  plateW,
			"holder_top_plate_depth_in_mm":  plateD,
			"holder_top_plate_height_in_mm": plateH,
			"holder_top_offset_in_mm":       (tubeH + plateH) / 2,
		}

	case sourceType == "am_collimated" || sourceType == "ba" || sourceType == "co" || sourceType == "th":
		tubeH := d.mm("source.top_height")
		plateR := d.mm("source.top_plate_width") / 2
		topInnerR := d.mm("source.top_inner_width") / 2
		plateH := d.mm("source.top_plate_height")
		template = "source_holder"
		repl = map[string]float64{
			"holder_inner_radius_in_mm":     innerR,
			"holder_outer_radius_in_mm":     outerR,
			"holder_tube_height_in_mm":      tubeH,
			"holder_top_plate_radius_in_mm": plateR,
			"holder_top_inner_radius_in_mm": topInnerR,
			"holder_top_plate_height_in_mm": plateH,
			"holder_top_offset_in_mm":       (tubeH + plateH) / 2,
		}

	default:
		return nil, fmt.Errorf("%w: source holder for source type %q", ErrUnsupportedBackend, sourceType)
	}
	if d.err != nil {
		return nil, d.err
	}

	g, err := gdml.Build(template, repl)
	if err != nil {
		return nil, err
	}

	logging.Debug("constructed source holder",
		zap.String("source_type", sourceType),
		zap.String("template", template))
	return g.Root, nil
}
