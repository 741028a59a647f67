// Package material defines elements and composite materials and the
// per-session registry that deduplicates them by name. Materials are
// composed of (element, mass-fraction) pairs; fractions must sum to one.
// Registries are never shared between construction sessions, which is what
// lets the equivalence checker compare materials structurally instead of
// by instance identity.
package material
