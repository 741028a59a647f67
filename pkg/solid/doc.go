// Package solid defines the shape algebra: primitive solids (box, tube,
// polycone) and boolean combinators (union, subtraction, intersection) forming
// an immutable composition tree. Combinators record the operation and the
// rigid transform between operand frames; they never evaluate geometry,
// meshing is a downstream concern. All dimensions are canonical millimeters
// and radians by the time they reach this package.
package solid
