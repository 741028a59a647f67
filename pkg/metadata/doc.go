// Package metadata provides the typed parameter model that geometry
// builders consume. A Table is a nested mapping of named numeric fields;
// every field declares its physical unit either as a name suffix
// (height_in_mm) or through the schema of the builder reading it.
// All quantities are resolved to canonical units (millimeters, radians)
// before they reach the solid algebra.
package metadata
