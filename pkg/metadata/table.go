package metadata

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table is a nested mapping of named fields to raw numeric values or
// sub-tables. It is the in-memory form of one component's dimension
// metadata. A Table is read-only once handed to a builder.
type Table struct {
	fields map[string]any
}

// FromMap wraps an already-decoded nested mapping.
func FromMap(m map[string]any) Table {
	return Table{fields: m}
}

// LoadYAML decodes YAML text into a Table.
func LoadYAML(data []byte) (Table, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Table{}, fmt.Errorf("metadata: decoding yaml: %w", err)
	}
	return FromMap(m), nil
}

// LoadFile reads and decodes a YAML metadata file.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("metadata: reading %s: %w", path, err)
	}
	return LoadYAML(data)
}

// lookup resolves a dotted path to its raw value.
func (t Table) lookup(path string) (any, error) {
	cur := any(t.fields)
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %q (parent of %q is not a mapping)", ErrMissingField, path, part)
		}
		cur, ok = m[part]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingField, path)
		}
	}
	return cur, nil
}

// Has reports whether the dotted path resolves to any value.
func (t Table) Has(path string) bool {
	_, err := t.lookup(path)
	return err == nil
}

// Sub returns the sub-table at the dotted path.
func (t Table) Sub(path string) (Table, error) {
	v, err := t.lookup(path)
	if err != nil {
		return Table{}, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return Table{}, fmt.Errorf("%w: %q is not a sub-table", ErrMissingField, path)
	}
	return Table{fields: m}, nil
}

// Float returns the raw numeric value at the dotted path, without any
// unit handling. Most callers want Length or Angle instead.
func (t Table) Float(path string) (float64, error) {
	v, err := t.lookup(path)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: %q is %T, not a number", ErrMissingField, path, v)
	}
}

// Quantity reads the field at the dotted path and resolves its unit from
// the field-name suffix. Fields without a recognized suffix are rejected:
// suffix-less fields must be read through LengthIn/AngleIn with their
// schema-declared unit.
func (t Table) Quantity(path string) (Quantity, error) {
	field := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		field = path[i+1:]
	}
	u, ok := splitUnitSuffix(field)
	if !ok {
		return Quantity{}, fmt.Errorf("%w: field %q declares no unit suffix", ErrUnitMismatch, path)
	}
	v, err := t.Float(path)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: v, Unit: u}, nil
}

// Length returns the field at the dotted path in canonical millimeters.
// The field name must carry a length-unit suffix.
func (t Table) Length(path string) (float64, error) {
	q, err := t.Quantity(path)
	if err != nil {
		return 0, err
	}
	if q.Unit.Dimension() != Length {
		return 0, fmt.Errorf("%w: field %q is %s, expected length", ErrUnitMismatch, path, q.Unit.Dimension())
	}
	return q.Canonical(), nil
}

// Angle returns the field at the dotted path in canonical radians.
// The field name must carry an angle-unit suffix.
func (t Table) Angle(path string) (float64, error) {
	q, err := t.Quantity(path)
	if err != nil {
		return 0, err
	}
	if q.Unit.Dimension() != Angle {
		return 0, fmt.Errorf("%w: field %q is %s, expected angle", ErrUnitMismatch, path, q.Unit.Dimension())
	}
	return q.Canonical(), nil
}

// LengthIn reads a suffix-less field whose unit is declared by the caller's
// schema. A field that does carry a suffix must agree with the declared
// unit's dimension.
func (t Table) LengthIn(path string, u Unit) (float64, error) {
	if u.Dimension() != Length {
		return 0, fmt.Errorf("%w: schema unit %s is not a length unit", ErrUnitMismatch, u)
	}
	field := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		field = path[i+1:]
	}
	if su, ok := splitUnitSuffix(field); ok {
		if su.Dimension() != Length {
			return 0, fmt.Errorf("%w: field %q is %s, expected length", ErrUnitMismatch, path, su.Dimension())
		}
		u = su // the field's own declaration wins
	}
	v, err := t.Float(path)
	if err != nil {
		return 0, err
	}
	return Quantity{Value: v, Unit: u}.Canonical(), nil
}

// AngleIn reads a suffix-less field whose unit is declared by the caller's
// schema, returning canonical radians. A field that does carry a suffix
// must agree with the declared unit's dimension.
func (t Table) AngleIn(path string, u Unit) (float64, error) {
	if u.Dimension() != Angle {
		return 0, fmt.Errorf("%w: schema unit %s is not an angle unit", ErrUnitMismatch, u)
	}
	field := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		field = path[i+1:]
	}
	if su, ok := splitUnitSuffix(field); ok {
		if su.Dimension() != Angle {
			return 0, fmt.Errorf("%w: field %q is %s, expected angle", ErrUnitMismatch, path, su.Dimension())
		}
		u = su // the field's own declaration wins
	}
	v, err := t.Float(path)
	if err != nil {
		return 0, err
	}
	return Quantity{Value: v, Unit: u}.Canonical(), nil
}
