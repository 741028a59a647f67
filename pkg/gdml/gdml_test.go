package gdml_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/chazu/hadesgeom/pkg/compare"
	"github.com/chazu/hadesgeom/pkg/gdml"
	"github.com/chazu/hadesgeom/pkg/solid"
)

func wrapReplacements() map[string]float64 {
	return map[string]float64{
		"wrap_outer_height_in_mm": 100,
		"wrap_outer_radius_in_mm": 50,
		"wrap_inner_height_in_mm": 99,
		"wrap_inner_radius_in_mm": 49,
		"wrap_inner_offset_in_mm": -0.5,
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := gdml.Render("no_such_component", nil); !errors.Is(err, gdml.ErrUnknownTemplate) {
		t.Errorf("got %v, want ErrUnknownTemplate", err)
	}
}

func TestRenderSubstitutesAllTokens(t *testing.T) {
	text, err := gdml.Render("wrap", wrapReplacements())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for token := range wrapReplacements() {
		if strings.Contains(text, token) {
			t.Errorf("token %q left unsubstituted", token)
		}
	}
	if !strings.Contains(text, `rmax="49"`) {
		t.Error("substituted value 49 not found in rendered text")
	}
	if !strings.Contains(text, `z="-0.5"`) {
		t.Error("negative offset not substituted at full precision")
	}
}

func TestRenderLongestTokenFirst(t *testing.T) {
	// wrap_inner_radius_in_mm contains no other token, but
	// wrap_inner_height_in_mm and wrap_inner_offset_in_mm share the
	// wrap_inner prefix; substitution must never clobber a longer token
	// with a shorter one's value.
	text, err := gdml.Render("wrap", wrapReplacements())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(text, "_in_mm") {
		t.Errorf("unsubstituted token fragment remains:\n%s", text)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not xml", "plainly not a geometry description"},
		{"leftover token", `<gdml><solids lunit="mm"><tube name="t" rmin="0" rmax="some_token_in_mm" z="1" startphi="0" deltaphi="1"/></solids><structure/><setup><world ref="t"/></setup></gdml>`},
		{"undefined solid ref", `<gdml><materials/><solids lunit="mm"/><structure><volume name="v"><materialref ref="m"/><solidref ref="nope"/></volume></structure><setup><world ref="v"/></setup></gdml>`},
		{"undefined world", `<gdml><materials/><solids lunit="mm"/><structure/><setup><world ref="v"/></setup></gdml>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := gdml.Parse(tt.text); !errors.Is(err, gdml.ErrTemplateParse) {
				t.Errorf("got %v, want ErrTemplateParse", err)
			}
		})
	}
}

func TestBuildWrap(t *testing.T) {
	g, err := gdml.Build("wrap", wrapReplacements())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	lv := g.Root
	if lv.Name != "wrap" {
		t.Errorf("root volume = %q, want wrap", lv.Name)
	}
	if lv.Material == nil || lv.Material.Name != "Mylar" {
		t.Errorf("material = %v, want Mylar", lv.Material)
	}

	sub, ok := lv.Solid.(*solid.Boolean)
	if !ok || sub.Op != solid.OpSubtraction {
		t.Fatalf("root solid = %T, want subtraction", lv.Solid)
	}
	outer, ok := sub.First.(*solid.Tube)
	if !ok {
		t.Fatalf("first operand = %T, want tube", sub.First)
	}
	// Tube heights in the description are full lengths; the model stores
	// half-heights.
	if outer.OuterR != 50 || outer.HalfZ != 50 {
		t.Errorf("outer tube = (r %v, halfZ %v), want (50, 50)", outer.OuterR, outer.HalfZ)
	}
	inner, ok := sub.Second.(*solid.Tube)
	if !ok {
		t.Fatalf("second operand = %T, want tube", sub.Second)
	}
	if inner.OuterR != 49 || inner.HalfZ != 49.5 {
		t.Errorf("inner tube = (r %v, halfZ %v), want (49, 49.5)", inner.OuterR, inner.HalfZ)
	}
	if inner.DeltaPhi != 2*math.Pi {
		t.Errorf("deltaPhi = %v, want 2pi", inner.DeltaPhi)
	}
	if sub.Transform.Translation.Z != -0.5 {
		t.Errorf("subtraction offset = %v, want -0.5", sub.Transform.Translation.Z)
	}
}

func TestParseUnits(t *testing.T) {
	text := `<gdml>
  <materials>
    <element name="Lead" symbol="Pb" Z="82" mass="207.2"/>
    <material name="G4_Pb" density="11.35"><fraction ref="Pb" n="1"/></material>
  </materials>
  <solids lunit="cm" aunit="deg">
    <tube name="t" rmin="0" rmax="5" z="10" startphi="0" deltaphi="360"/>
  </solids>
  <structure>
    <volume name="v"><materialref ref="G4_Pb"/><solidref ref="t"/></volume>
  </structure>
  <setup><world ref="v"/></setup>
</gdml>`
	g, err := gdml.Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tube, ok := g.Root.Solid.(*solid.Tube)
	if !ok {
		t.Fatalf("solid = %T, want tube", g.Root.Solid)
	}
	if tube.OuterR != 50 {
		t.Errorf("outer radius = %v mm, want 50", tube.OuterR)
	}
	if tube.HalfZ != 50 {
		t.Errorf("half height = %v mm, want 50", tube.HalfZ)
	}
	if math.Abs(tube.DeltaPhi-2*math.Pi) > 1e-12 {
		t.Errorf("deltaPhi = %v rad, want 2pi", tube.DeltaPhi)
	}
}

func TestParseDaughterVolumes(t *testing.T) {
	g, err := gdml.Build("lead_castle_table2", map[string]float64{
		"castle_base_width_in_mm":          700,
		"castle_base_depth_in_mm":          600,
		"castle_base_height_in_mm":         500,
		"castle_inner_cavity_width_in_mm":  400,
		"castle_inner_cavity_depth_in_mm":  350,
		"castle_inner_cavity_height_in_mm": 300,
		"castle_top_width_in_mm":           700,
		"castle_top_depth_in_mm":           600,
		"castle_top_height_in_mm":          100,
		"copper_plate_width_in_mm":         200,
		"copper_plate_depth_in_mm":         200,
		"copper_plate_height_in_mm":        10,
		"castle_top_offset_z_in_mm":        -300.01,
		"copper_plate_offset_z_in_mm":      -145,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.Root.Name != "lead_castle" {
		t.Errorf("root = %q, want lead_castle", g.Root.Name)
	}
	if len(g.Root.Daughters) != 1 {
		t.Fatalf("daughter count = %d, want 1", len(g.Root.Daughters))
	}
	d := g.Root.Daughters[0]
	if d.Volume.Name != "copper_plate" {
		t.Errorf("daughter = %q, want copper_plate", d.Volume.Name)
	}
	if d.CopyNumber != 1 {
		t.Errorf("copy number = %d, want 1", d.CopyNumber)
	}
	if d.Transform.Translation.Z != -145 {
		t.Errorf("daughter offset = %v, want -145", d.Transform.Translation.Z)
	}
	if d.Volume.Material.Name != "G4_Cu" {
		t.Errorf("daughter material = %q, want G4_Cu", d.Volume.Material.Name)
	}
}

func TestBuildDeterminism(t *testing.T) {
	a, err := gdml.Build("wrap", wrapReplacements())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, err := gdml.Build("wrap", wrapReplacements())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if r := compare.Graphs(a, b, compare.DefaultTolerance()); !r.Equivalent() {
		t.Errorf("two builds of the same template must be equivalent, got %v", r)
	}
}
