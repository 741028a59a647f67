package scene

import (
	"fmt"

	"github.com/chazu/hadesgeom/pkg/material"
	"github.com/chazu/hadesgeom/pkg/solid"
)

// LogicalVolume is a named (solid, material) pair with an ordered list of
// daughter placements. It holds its material by shared reference and its
// solid exclusively.
type LogicalVolume struct {
	Name      string
	Solid     solid.Solid
	Material  *material.Material
	Daughters []*Placement

	session *Session
}

// Session returns the session that owns this volume.
func (lv *LogicalVolume) Session() *Session { return lv.session }

// Placement is a directed, transform-carrying edge from a mother volume to a
// daughter volume. It does not own the daughter.
type Placement struct {
	Volume     *LogicalVolume
	Transform  solid.Transform
	CopyNumber int
}

// Session is the arena for one geometry build. It owns the material
// registry and indexes volumes by name.
type Session struct {
	Materials *material.Registry
	volumes   map[string]*LogicalVolume
}

// NewSession creates a fresh session with its own material registry.
func NewSession() *Session {
	return &Session{
		Materials: material.NewRegistry(),
		volumes:   make(map[string]*LogicalVolume),
	}
}

// Volume returns the logical volume registered under name, or nil.
func (s *Session) Volume(name string) *LogicalVolume {
	return s.volumes[name]
}

// VolumeCount returns the number of volumes registered in the session.
func (s *Session) VolumeCount() int { return len(s.volumes) }

// NewLogicalVolume creates and registers a logical volume. Names must be
// unique within the session.
func (s *Session) NewLogicalVolume(name string, so solid.Solid, mat *material.Material) (*LogicalVolume, error) {
	if _, ok := s.volumes[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	lv := &LogicalVolume{Name: name, Solid: so, Material: mat, session: s}
	s.volumes[name] = lv
	return lv, nil
}

// Place appends a daughter placement to the mother's child list. Insertion
// order is significant: it is the traversal order used by the equivalence
// checker. Placing an ancestor of the mother (or the mother itself) fails
// with ErrCyclicPlacement.
func (s *Session) Place(mother, daughter *LogicalVolume, tr solid.Transform, copyNumber int) (*Placement, error) {
	if reachable(daughter, mother) {
		return nil, fmt.Errorf("%w: %q under %q", ErrCyclicPlacement, daughter.Name, mother.Name)
	}
	p := &Placement{Volume: daughter, Transform: tr, CopyNumber: copyNumber}
	mother.Daughters = append(mother.Daughters, p)
	return p, nil
}

// reachable reports whether target is in the placement subtree rooted at lv.
func reachable(lv, target *LogicalVolume) bool {
	if lv == target {
		return true
	}
	for _, p := range lv.Daughters {
		if reachable(p.Volume, target) {
			return true
		}
	}
	return false
}

// AdoptRecursive registers a volume tree built in another session into this
// one, so that independently built components can be placed under a common
// world. Materials are re-registered by structural content; a name already
// taken in this session fails with ErrDuplicateName.
func (s *Session) AdoptRecursive(lv *LogicalVolume) error {
	if prev, ok := s.volumes[lv.Name]; ok {
		if prev == lv {
			return nil // already adopted
		}
		return fmt.Errorf("%w: %q (adopting foreign volume)", ErrDuplicateName, lv.Name)
	}
	if lv.Material != nil {
		if _, err := s.Materials.RegisterMaterial(lv.Material.Name, lv.Material.Density, lv.Material.Components); err != nil {
			return err
		}
	}
	s.volumes[lv.Name] = lv
	lv.session = s
	for _, p := range lv.Daughters {
		if err := s.AdoptRecursive(p.Volume); err != nil {
			return err
		}
	}
	return nil
}

// SceneGraph is a root logical volume plus the transitive closure of its
// placement tree, scoped to one session.
type SceneGraph struct {
	Root    *LogicalVolume
	Session *Session
}

// Graph wraps a root volume into a SceneGraph for its owning session.
func Graph(root *LogicalVolume) *SceneGraph {
	return &SceneGraph{Root: root, Session: root.session}
}

// Visit is called for every volume reached by Walk, with the placement path
// from the root ("/world/cryostat" style).
type Visit func(path string, lv *LogicalVolume) error

// Walk traverses the graph pre-order, mother before daughters, daughters in
// placement insertion order, calling visit at each volume. Traversal stops
// at the first error, which is returned.
func (g *SceneGraph) Walk(visit Visit) error {
	return walk("/"+g.Root.Name, g.Root, visit)
}

func walk(path string, lv *LogicalVolume, visit Visit) error {
	if err := visit(path, lv); err != nil {
		return err
	}
	for _, p := range lv.Daughters {
		if err := walk(path+"/"+p.Volume.Name, p.Volume, visit); err != nil {
			return err
		}
	}
	return nil
}
