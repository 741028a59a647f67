package metadata

import (
	"fmt"
	"math"
	"strings"
)

// Dimension classifies a physical unit.
type Dimension int

const (
	Length Dimension = iota
	Angle
)

func (d Dimension) String() string {
	switch d {
	case Length:
		return "length"
	case Angle:
		return "angle"
	default:
		return "unknown"
	}
}

// Unit is a recognized physical unit. The canonical unit is millimeters
// for lengths and radians for angles.
type Unit int

const (
	Millimeter Unit = iota
	Centimeter
	Meter
	Radian
	Degree
)

// unitSuffixes maps the field-name suffix spelling to its Unit.
var unitSuffixes = map[string]Unit{
	"mm":  Millimeter,
	"cm":  Centimeter,
	"m":   Meter,
	"rad": Radian,
	"deg": Degree,
}

// Dimension returns the dimension the unit measures.
func (u Unit) Dimension() Dimension {
	switch u {
	case Radian, Degree:
		return Angle
	default:
		return Length
	}
}

// factor converts a magnitude in u to the canonical unit of its dimension.
func (u Unit) factor() float64 {
	switch u {
	case Centimeter:
		return 10
	case Meter:
		return 1000
	case Degree:
		return math.Pi / 180
	default:
		return 1
	}
}

func (u Unit) String() string {
	for s, v := range unitSuffixes {
		if v == u {
			return s
		}
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Quantity is a numeric magnitude with its declared unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

// Canonical returns the magnitude converted to the canonical unit of the
// quantity's dimension (mm or rad).
func (q Quantity) Canonical() float64 {
	return q.Value * q.Unit.factor()
}

// splitUnitSuffix extracts a declared unit from a field name of the form
// <base>_in_<unit>. ok is false when the name carries no unit suffix.
func splitUnitSuffix(field string) (u Unit, ok bool) {
	i := strings.LastIndex(field, "_in_")
	if i < 0 {
		return 0, false
	}
	u, ok = unitSuffixes[field[i+len("_in_"):]]
	return u, ok
}
