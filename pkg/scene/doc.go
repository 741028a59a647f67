// Package scene assembles logical volumes into a placement tree. A Session
// is the per-build arena: it owns the material registry and the volume name
// index, and every logical volume created through it. Placements are
// non-owning edges, so one volume can be a daughter of several mothers.
// A SceneGraph is immutable once returned to the caller.
package scene
