// Package gdml implements the template construction path: embedded
// geometry-description templates (a GDML-flavored XML dialect), raw token
// substitution of dimension values into them, and a parser that turns the
// substituted text into a scene graph. The templates carry the same material
// constants the procedural constructors compute, so both construction paths
// agree to well below the comparison tolerance.
package gdml
