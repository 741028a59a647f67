package material_test

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/hadesgeom/pkg/material"
)

func TestMassFractionInvariant(t *testing.T) {
	tests := []struct {
		name      string
		fractions []float64
		wantErr   bool
	}{
		{"sum 0.9", []float64{0.45, 0.45}, true},
		{"sum 1.1", []float64{0.55, 0.55}, true},
		{"sum 1.0", []float64{0.6, 0.4}, false},
		{"sum 1.0 + 1e-7", []float64{0.6, 0.4 + 1e-7}, false},
		{"sum 1.0 - 1e-7", []float64{0.6, 0.4 - 1e-7}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := material.NewRegistry()
			h, err := r.RegisterElement(material.Hydrogen)
			if err != nil {
				t.Fatalf("RegisterElement(H): %v", err)
			}
			c, err := r.RegisterElement(material.Carbon)
			if err != nil {
				t.Fatalf("RegisterElement(C): %v", err)
			}
			_, err = r.RegisterMaterial("test", 1.0, []material.Component{
				{Element: h, Fraction: tt.fractions[0]},
				{Element: c, Fraction: tt.fractions[1]},
			})
			if tt.wantErr {
				if !errors.Is(err, material.ErrMassFraction) {
					t.Errorf("got %v, want ErrMassFraction", err)
				}
			} else if err != nil {
				t.Errorf("got %v, want success", err)
			}
		})
	}
}

func TestRegisterElementIdempotent(t *testing.T) {
	r := material.NewRegistry()
	first, err := r.RegisterElement(material.Lead)
	if err != nil {
		t.Fatalf("RegisterElement: %v", err)
	}
	second, err := r.RegisterElement(material.Lead)
	if err != nil {
		t.Fatalf("re-RegisterElement: %v", err)
	}
	if first != second {
		t.Error("re-registering an identical element must return the existing instance")
	}
}

func TestRegisterElementConflict(t *testing.T) {
	r := material.NewRegistry()
	if _, err := r.RegisterElement(material.Lead); err != nil {
		t.Fatalf("RegisterElement: %v", err)
	}
	changed := material.Lead
	changed.AtomicMass = 207.3
	if _, err := r.RegisterElement(changed); !errors.Is(err, material.ErrMaterialConflict) {
		t.Errorf("got %v, want ErrMaterialConflict", err)
	}
}

func TestRegisterMaterialIdempotentAndConflict(t *testing.T) {
	r := material.NewRegistry()
	first, err := material.PureLead(r)
	if err != nil {
		t.Fatalf("PureLead: %v", err)
	}
	second, err := material.PureLead(r)
	if err != nil {
		t.Fatalf("re-PureLead: %v", err)
	}
	if first != second {
		t.Error("re-registering an identical material must return the existing instance")
	}

	pb := r.Element("Pb")
	_, err = r.RegisterMaterial("G4_Pb", 10.0, []material.Component{{Element: pb, Fraction: 1.0}})
	if !errors.Is(err, material.ErrMaterialConflict) {
		t.Errorf("same name, different density: got %v, want ErrMaterialConflict", err)
	}
}

func TestStockMaterials(t *testing.T) {
	type ctor func(*material.Registry) (*material.Material, error)
	tests := []struct {
		name    string
		ctor    ctor
		density float64
		symbols []string
	}{
		{"HD1000", material.HD1000, 0.93, []string{"H", "C"}},
		{"Mylar", material.Mylar, 1.4, []string{"C", "H", "O"}},
		{"EN_AW-2011T8", material.EnAw2011T8, 2.84, []string{"Al", "Cu", "Pb", "Bi"}},
		{"Al", material.PureAluminium, 2.7, []string{"Al"}},
		{"G4_Pb", material.PureLead, 11.35, []string{"Pb"}},
		{"G4_Cu", material.PureCopper, 8.96, []string{"Cu"}},
		{"G4_Galactic", material.Vacuum, 1e-25, []string{"H"}},
		{"Epoxy", material.Epoxy, 1.2, []string{"C", "H", "O"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := material.NewRegistry()
			m, err := tt.ctor(r)
			if err != nil {
				t.Fatalf("constructor: %v", err)
			}
			if m.Name != tt.name {
				t.Errorf("name = %q, want %q", m.Name, tt.name)
			}
			if m.Density != tt.density {
				t.Errorf("density = %v, want %v", m.Density, tt.density)
			}
			if len(m.Components) != len(tt.symbols) {
				t.Fatalf("component count = %d, want %d", len(m.Components), len(tt.symbols))
			}
			sum := 0.0
			for i, c := range m.Components {
				if c.Element.Symbol != tt.symbols[i] {
					t.Errorf("component %d = %q, want %q", i, c.Element.Symbol, tt.symbols[i])
				}
				sum += c.Fraction
			}
			if math.Abs(sum-1.0) > material.FractionTolerance {
				t.Errorf("fractions sum to %v", sum)
			}
		})
	}
}

func TestStockMaterialsShareSession(t *testing.T) {
	// All stock constructors must coexist in one registry without element
	// conflicts, since world assembly registers them together.
	r := material.NewRegistry()
	ctors := []func(*material.Registry) (*material.Material, error){
		material.HD1000, material.Mylar, material.EnAw2011T8,
		material.PureAluminium, material.PureLead, material.PureCopper,
		material.Vacuum, material.Epoxy,
	}
	for _, ctor := range ctors {
		if _, err := ctor(r); err != nil {
			t.Fatalf("stock constructor failed in shared registry: %v", err)
		}
	}
}
