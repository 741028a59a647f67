package solid

import "fmt"

// Solid is a node in a shape composition tree. Leaf variants are Box, Tube
// and Polycone; internal variants are Boolean nodes. Solids are immutable
// once constructed and are owned exclusively by one logical volume or one
// boolean parent.
type Solid interface {
	Name() string
	isSolid() // marker restricting implementations to this package
}

// Box is a rectangular solid described by its half-extents.
type Box struct {
	name                string
	HalfX, HalfY, HalfZ float64
}

// NewBox creates a box from half-extents in mm.
func NewBox(name string, halfX, halfY, halfZ float64) *Box {
	return &Box{name: name, HalfX: halfX, HalfY: halfY, HalfZ: halfZ}
}

func (b *Box) Name() string { return b.name }
func (*Box) isSolid()       {}

// Tube is a cylindrical section: inner/outer radius, half-height, and an
// azimuthal wedge [StartPhi, StartPhi+DeltaPhi].
type Tube struct {
	name               string
	InnerR, OuterR     float64
	HalfZ              float64
	StartPhi, DeltaPhi float64
}

// NewTube creates a tube section. Radii and halfZ in mm, angles in radians.
func NewTube(name string, innerR, outerR, halfZ, startPhi, deltaPhi float64) *Tube {
	return &Tube{name: name, InnerR: innerR, OuterR: outerR, HalfZ: halfZ, StartPhi: startPhi, DeltaPhi: deltaPhi}
}

func (t *Tube) Name() string { return t.name }
func (*Tube) isSolid()       {}

// ZPlane is one cross-section of a polycone: inner and outer radius at a
// given z.
type ZPlane struct {
	Z, InnerR, OuterR float64
}

// Polycone is a solid of revolution described by an ordered list of z-planes
// with linear interpolation of radii between consecutive planes.
type Polycone struct {
	name               string
	Planes             []ZPlane
	StartPhi, DeltaPhi float64
}

// NewPolycone creates a polycone. The plane list must hold at least two
// planes with strictly increasing z, otherwise ErrInvalidProfile.
func NewPolycone(name string, planes []ZPlane, startPhi, deltaPhi float64) (*Polycone, error) {
	if len(planes) < 2 {
		return nil, fmt.Errorf("%w: polycone %q needs at least 2 z-planes, got %d", ErrInvalidProfile, name, len(planes))
	}
	for i := 1; i < len(planes); i++ {
		if planes[i].Z <= planes[i-1].Z {
			return nil, fmt.Errorf("%w: polycone %q z-planes not strictly increasing at index %d (%v after %v)",
				ErrInvalidProfile, name, i, planes[i].Z, planes[i-1].Z)
		}
	}
	return &Polycone{
		name:     name,
		Planes:   append([]ZPlane(nil), planes...),
		StartPhi: startPhi,
		DeltaPhi: deltaPhi,
	}, nil
}

func (p *Polycone) Name() string { return p.name }
func (*Polycone) isSolid()       {}

// BooleanOp enumerates the boolean combinators.
type BooleanOp int

const (
	OpUnion BooleanOp = iota
	OpSubtraction
	OpIntersection
)

func (op BooleanOp) String() string {
	switch op {
	case OpUnion:
		return "union"
	case OpSubtraction:
		return "subtraction"
	case OpIntersection:
		return "intersection"
	default:
		return "unknown"
	}
}

// Boolean combines two already-constructed solids. Transform places the
// second operand's frame relative to the first. No geometric result is
// computed here; degenerate combinations (an empty subtraction, a void
// intersection) are recorded as specified and left to downstream evaluation.
type Boolean struct {
	name          string
	Op            BooleanOp
	First, Second Solid
	Transform     Transform
}

// NewUnion records first ∪ second.
func NewUnion(name string, first, second Solid, tr Transform) *Boolean {
	return &Boolean{name: name, Op: OpUnion, First: first, Second: second, Transform: tr}
}

// NewSubtraction records first − second.
func NewSubtraction(name string, first, second Solid, tr Transform) *Boolean {
	return &Boolean{name: name, Op: OpSubtraction, First: first, Second: second, Transform: tr}
}

// NewIntersection records first ∩ second.
func NewIntersection(name string, first, second Solid, tr Transform) *Boolean {
	return &Boolean{name: name, Op: OpIntersection, First: first, Second: second, Transform: tr}
}

func (b *Boolean) Name() string { return b.name }
func (*Boolean) isSolid()       {}
