package compare

import (
	"fmt"
	"math"

	"github.com/chazu/hadesgeom/pkg/material"
	"github.com/chazu/hadesgeom/pkg/scene"
	"github.com/chazu/hadesgeom/pkg/solid"
)

// Tolerance bounds acceptable numeric deviation: two values agree when
// |a-b| <= Abs + Rel*max(|a|,|b|).
type Tolerance struct {
	Abs float64
	Rel float64
}

// DefaultTolerance is the tolerance used by the cross-backend suites.
func DefaultTolerance() Tolerance {
	return Tolerance{Abs: 1e-6, Rel: 1e-6}
}

func (t Tolerance) close(a, b float64) bool {
	return math.Abs(a-b) <= t.Abs+t.Rel*math.Max(math.Abs(a), math.Abs(b))
}

// Divergence identifies the first mismatch found in traversal order.
type Divergence struct {
	Path     string // placement path of the diverging volume
	Field    string // which attribute differs
	Expected any    // value in the first graph
	Actual   any    // value in the second graph
}

func (d Divergence) String() string {
	return fmt.Sprintf("%s: %s: expected %v, got %v", d.Path, d.Field, d.Expected, d.Actual)
}

// Report is the outcome of a comparison: either equivalent, or the first
// divergence encountered.
type Report struct {
	Divergence *Divergence
}

// Equivalent reports whether no divergence was found.
func (r Report) Equivalent() bool { return r.Divergence == nil }

func (r Report) String() string {
	if r.Equivalent() {
		return "equivalent"
	}
	return "divergent: " + r.Divergence.String()
}

// Graphs compares two scene graphs purportedly built from the same metadata.
func Graphs(a, b *scene.SceneGraph, tol Tolerance) Report {
	return Volumes(a.Root, b.Root, tol)
}

// Volumes compares two volume trees rooted at the given logical volumes.
func Volumes(a, b *scene.LogicalVolume, tol Tolerance) Report {
	c := &checker{tol: tol}
	c.volume("/"+a.Name, a, b)
	return Report{Divergence: c.div}
}

// checker carries the walk state; it records only the first divergence.
type checker struct {
	tol Tolerance
	div *Divergence
}

func (c *checker) diverge(path, field string, expected, actual any) bool {
	if c.div == nil {
		c.div = &Divergence{Path: path, Field: field, Expected: expected, Actual: actual}
	}
	return false
}

func (c *checker) number(path, field string, a, b float64) bool {
	if !c.tol.close(a, b) {
		return c.diverge(path, field, a, b)
	}
	return true
}

func (c *checker) volume(path string, a, b *scene.LogicalVolume) bool {
	if a.Name != b.Name {
		return c.diverge(path, "volume.name", a.Name, b.Name)
	}
	if !c.material(path, a.Material, b.Material) {
		return false
	}
	if !c.solid(path, "solid", a.Solid, b.Solid) {
		return false
	}
	if len(a.Daughters) != len(b.Daughters) {
		return c.diverge(path, "daughters.count", len(a.Daughters), len(b.Daughters))
	}
	for i, pa := range a.Daughters {
		pb := b.Daughters[i]
		field := fmt.Sprintf("daughters[%d]", i)
		if pa.CopyNumber != pb.CopyNumber {
			return c.diverge(path, field+".copy_number", pa.CopyNumber, pb.CopyNumber)
		}
		if !c.transform(path, field+".transform", pa.Transform, pb.Transform) {
			return false
		}
		if !c.volume(path+"/"+pa.Volume.Name, pa.Volume, pb.Volume) {
			return false
		}
	}
	return true
}

func (c *checker) material(path string, a, b *material.Material) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil || b == nil:
		return c.diverge(path, "material", describeMaterial(a), describeMaterial(b))
	}
	if a.Name != b.Name {
		return c.diverge(path, "material.name", a.Name, b.Name)
	}
	if !c.number(path, "material.density", a.Density, b.Density) {
		return false
	}
	if len(a.Components) != len(b.Components) {
		return c.diverge(path, "material.components.count", len(a.Components), len(b.Components))
	}
	for i, ca := range a.Components {
		cb := b.Components[i]
		field := fmt.Sprintf("material.components[%d]", i)
		if ca.Element.Symbol != cb.Element.Symbol {
			return c.diverge(path, field+".element", ca.Element.Symbol, cb.Element.Symbol)
		}
		if ca.Element.AtomicNum != cb.Element.AtomicNum {
			return c.diverge(path, field+".atomic_number", ca.Element.AtomicNum, cb.Element.AtomicNum)
		}
		if !c.number(path, field+".atomic_mass", ca.Element.AtomicMass, cb.Element.AtomicMass) {
			return false
		}
		if !c.number(path, field+".fraction", ca.Fraction, cb.Fraction) {
			return false
		}
	}
	return true
}

func (c *checker) transform(path, field string, a, b solid.Transform) bool {
	return c.number(path, field+".rotation.x", a.Rotation.X, b.Rotation.X) &&
		c.number(path, field+".rotation.y", a.Rotation.Y, b.Rotation.Y) &&
		c.number(path, field+".rotation.z", a.Rotation.Z, b.Rotation.Z) &&
		c.number(path, field+".translation.x", a.Translation.X, b.Translation.X) &&
		c.number(path, field+".translation.y", a.Translation.Y, b.Translation.Y) &&
		c.number(path, field+".translation.z", a.Translation.Z, b.Translation.Z)
}

// solid compares combinator tree shape, leaf kinds, names, and leaf
// parameters within tolerance.
func (c *checker) solid(path, field string, a, b solid.Solid) bool {
	if a.Name() != b.Name() {
		return c.diverge(path, field+".name", a.Name(), b.Name())
	}
	switch sa := a.(type) {
	case *solid.Box:
		sb, ok := b.(*solid.Box)
		if !ok {
			return c.diverge(path, field+".kind", "box", kindOf(b))
		}
		return c.number(path, field+".half_x", sa.HalfX, sb.HalfX) &&
			c.number(path, field+".half_y", sa.HalfY, sb.HalfY) &&
			c.number(path, field+".half_z", sa.HalfZ, sb.HalfZ)

	case *solid.Tube:
		sb, ok := b.(*solid.Tube)
		if !ok {
			return c.diverge(path, field+".kind", "tube", kindOf(b))
		}
		return c.number(path, field+".inner_r", sa.InnerR, sb.InnerR) &&
			c.number(path, field+".outer_r", sa.OuterR, sb.OuterR) &&
			c.number(path, field+".half_z", sa.HalfZ, sb.HalfZ) &&
			c.number(path, field+".start_phi", sa.StartPhi, sb.StartPhi) &&
			c.number(path, field+".delta_phi", sa.DeltaPhi, sb.DeltaPhi)

	case *solid.Polycone:
		sb, ok := b.(*solid.Polycone)
		if !ok {
			return c.diverge(path, field+".kind", "polycone", kindOf(b))
		}
		if len(sa.Planes) != len(sb.Planes) {
			return c.diverge(path, field+".planes.count", len(sa.Planes), len(sb.Planes))
		}
		for i, pa := range sa.Planes {
			pb := sb.Planes[i]
			pf := fmt.Sprintf("%s.planes[%d]", field, i)
			if !c.number(path, pf+".z", pa.Z, pb.Z) ||
				!c.number(path, pf+".inner_r", pa.InnerR, pb.InnerR) ||
				!c.number(path, pf+".outer_r", pa.OuterR, pb.OuterR) {
				return false
			}
		}
		return c.number(path, field+".start_phi", sa.StartPhi, sb.StartPhi) &&
			c.number(path, field+".delta_phi", sa.DeltaPhi, sb.DeltaPhi)

	case *solid.Boolean:
		sb, ok := b.(*solid.Boolean)
		if !ok {
			return c.diverge(path, field+".kind", sa.Op.String(), kindOf(b))
		}
		if sa.Op != sb.Op {
			return c.diverge(path, field+".op", sa.Op.String(), sb.Op.String())
		}
		return c.transform(path, field+".transform", sa.Transform, sb.Transform) &&
			c.solid(path, field+".first", sa.First, sb.First) &&
			c.solid(path, field+".second", sa.Second, sb.Second)

	default:
		return c.diverge(path, field+".kind", kindOf(a), kindOf(b))
	}
}

func kindOf(s solid.Solid) string {
	switch v := s.(type) {
	case *solid.Box:
		return "box"
	case *solid.Tube:
		return "tube"
	case *solid.Polycone:
		return "polycone"
	case *solid.Boolean:
		return v.Op.String()
	default:
		return fmt.Sprintf("%T", s)
	}
}

func describeMaterial(m *material.Material) string {
	if m == nil {
		return "<none>"
	}
	return m.Name
}
