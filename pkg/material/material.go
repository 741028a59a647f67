package material

import (
	"fmt"
	"math"
)

// FractionTolerance is how far component mass fractions may deviate from
// summing to exactly one.
const FractionTolerance = 1e-6

// Element is a chemical element. Identity is the symbol; an Element is
// immutable once registered.
type Element struct {
	Name       string
	Symbol     string
	AtomicNum  int
	AtomicMass float64
}

// Component is one (element, mass-fraction) entry of a composite material.
type Component struct {
	Element  *Element
	Fraction float64
}

// Material is a named composite with an ordered component list. It is
// immutable after construction and looked up by name within one Registry.
type Material struct {
	Name       string
	Density    float64 // g/cm3
	Components []Component
}

// Registry holds the elements and materials of one construction session.
// Two sessions never share instances, even for identically named materials.
type Registry struct {
	elements  map[string]*Element
	materials map[string]*Material
}

// NewRegistry creates an empty session-scoped registry.
func NewRegistry() *Registry {
	return &Registry{
		elements:  make(map[string]*Element),
		materials: make(map[string]*Material),
	}
}

// RegisterElement registers an element, keyed by symbol. Re-registering with
// identical properties is idempotent and returns the existing instance;
// re-registering with different properties fails with ErrMaterialConflict.
func (r *Registry) RegisterElement(spec Element) (*Element, error) {
	if prev, ok := r.elements[spec.Symbol]; ok {
		if prev.Name != spec.Name || prev.AtomicNum != spec.AtomicNum || prev.AtomicMass != spec.AtomicMass {
			return nil, fmt.Errorf("%w: element %q already registered with different properties", ErrMaterialConflict, spec.Symbol)
		}
		return prev, nil
	}
	el := spec
	r.elements[spec.Symbol] = &el
	return &el, nil
}

// RegisterMaterial registers a composite material. The component fractions
// must sum to 1 within FractionTolerance. Re-registering an identical
// material returns the existing instance.
func (r *Registry) RegisterMaterial(name string, density float64, components []Component) (*Material, error) {
	sum := 0.0
	for _, c := range components {
		sum += c.Fraction
	}
	if math.Abs(sum-1.0) > FractionTolerance {
		return nil, fmt.Errorf("%w: %q fractions sum to %v", ErrMassFraction, name, sum)
	}
	if prev, ok := r.materials[name]; ok {
		if !sameMaterial(prev, density, components) {
			return nil, fmt.Errorf("%w: material %q already registered with different properties", ErrMaterialConflict, name)
		}
		return prev, nil
	}
	m := &Material{
		Name:       name,
		Density:    density,
		Components: append([]Component(nil), components...),
	}
	r.materials[name] = m
	return m, nil
}

// Material returns the registered material with the given name, or nil.
func (r *Registry) Material(name string) *Material {
	return r.materials[name]
}

// Element returns the registered element with the given symbol, or nil.
func (r *Registry) Element(symbol string) *Element {
	return r.elements[symbol]
}

func sameMaterial(m *Material, density float64, components []Component) bool {
	if m.Density != density || len(m.Components) != len(components) {
		return false
	}
	for i, c := range components {
		p := m.Components[i]
		if p.Element.Symbol != c.Element.Symbol || p.Fraction != c.Fraction {
			return false
		}
	}
	return true
}
