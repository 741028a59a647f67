package scene_test

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/hadesgeom/pkg/material"
	"github.com/chazu/hadesgeom/pkg/scene"
	"github.com/chazu/hadesgeom/pkg/solid"
)

func newVolume(t *testing.T, s *scene.Session, name string) *scene.LogicalVolume {
	t.Helper()
	mat, err := material.PureAluminium(s.Materials)
	if err != nil {
		t.Fatalf("PureAluminium: %v", err)
	}
	lv, err := s.NewLogicalVolume(name, solid.NewBox(name, 1, 1, 1), mat)
	if err != nil {
		t.Fatalf("NewLogicalVolume(%q): %v", name, err)
	}
	return lv
}

func TestDuplicateName(t *testing.T) {
	s := scene.NewSession()
	newVolume(t, s, "plate")
	_, err := s.NewLogicalVolume("plate", solid.NewBox("other", 1, 1, 1), nil)
	if !errors.Is(err, scene.ErrDuplicateName) {
		t.Errorf("got %v, want ErrDuplicateName", err)
	}
}

func TestCyclicPlacement(t *testing.T) {
	s := scene.NewSession()
	a := newVolume(t, s, "a")
	b := newVolume(t, s, "b")
	c := newVolume(t, s, "c")

	if _, err := s.Place(a, b, solid.Identity, 1); err != nil {
		t.Fatalf("Place(a, b): %v", err)
	}
	if _, err := s.Place(b, c, solid.Identity, 1); err != nil {
		t.Fatalf("Place(b, c): %v", err)
	}

	if _, err := s.Place(c, a, solid.Identity, 1); !errors.Is(err, scene.ErrCyclicPlacement) {
		t.Errorf("placing ancestor under descendant: got %v, want ErrCyclicPlacement", err)
	}
	if _, err := s.Place(a, a, solid.Identity, 1); !errors.Is(err, scene.ErrCyclicPlacement) {
		t.Errorf("self placement: got %v, want ErrCyclicPlacement", err)
	}
}

func TestSharedDaughter(t *testing.T) {
	// One volume may be a daughter of several mothers.
	s := scene.NewSession()
	m1 := newVolume(t, s, "mother1")
	m2 := newVolume(t, s, "mother2")
	d := newVolume(t, s, "shared")

	if _, err := s.Place(m1, d, solid.Translate(0, 0, 1), 1); err != nil {
		t.Fatalf("Place(m1, d): %v", err)
	}
	if _, err := s.Place(m2, d, solid.Translate(0, 0, -1), 2); err != nil {
		t.Fatalf("Place(m2, d): %v", err)
	}
	if len(m1.Daughters) != 1 || len(m2.Daughters) != 1 {
		t.Error("both mothers must hold the shared daughter")
	}
	if m1.Daughters[0].Volume != m2.Daughters[0].Volume {
		t.Error("placements must share the daughter by reference")
	}
}

func TestWalkOrder(t *testing.T) {
	s := scene.NewSession()
	world := newVolume(t, s, "world")
	cryostat := newVolume(t, s, "cryostat")
	cavity := newVolume(t, s, "cavity")
	wrap := newVolume(t, s, "wrap")
	castle := newVolume(t, s, "castle")

	// Insertion order is traversal order.
	mustPlace(t, s, world, castle)
	mustPlace(t, s, world, cryostat)
	mustPlace(t, s, cryostat, cavity)
	mustPlace(t, s, cavity, wrap)

	var paths []string
	err := scene.Graph(world).Walk(func(path string, lv *scene.LogicalVolume) error {
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	want := []string{
		"/world",
		"/world/castle",
		"/world/cryostat",
		"/world/cryostat/cavity",
		"/world/cryostat/cavity/wrap",
	}
	if len(paths) != len(want) {
		t.Fatalf("visited %d volumes, want %d: %v", len(paths), len(want), paths)
	}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], p)
		}
	}
}

func TestWalkStopsOnError(t *testing.T) {
	s := scene.NewSession()
	world := newVolume(t, s, "world")
	mustPlace(t, s, world, newVolume(t, s, "a"))
	mustPlace(t, s, world, newVolume(t, s, "b"))

	sentinel := errors.New("stop")
	visits := 0
	err := scene.Graph(world).Walk(func(path string, lv *scene.LogicalVolume) error {
		visits++
		if path == "/world/a" {
			return sentinel
		}
		return nil
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("Walk error = %v, want sentinel", err)
	}
	if visits != 2 {
		t.Errorf("visited %d volumes before stopping, want 2", visits)
	}
}

func TestAdoptRecursive(t *testing.T) {
	// Build a component tree in its own session.
	comp := scene.NewSession()
	mylar, err := material.Mylar(comp.Materials)
	if err != nil {
		t.Fatalf("Mylar: %v", err)
	}
	outer, err := comp.NewLogicalVolume("wrap", solid.NewTube("wrap", 0, 50, 50, 0, 2*math.Pi), mylar)
	if err != nil {
		t.Fatalf("NewLogicalVolume: %v", err)
	}
	inner := newVolume(t, comp, "liner")
	mustPlace(t, comp, outer, inner)

	// Adopt it into a world session.
	world := scene.NewSession()
	if err := world.AdoptRecursive(outer); err != nil {
		t.Fatalf("AdoptRecursive: %v", err)
	}
	if world.Volume("wrap") != outer || world.Volume("liner") != inner {
		t.Error("adopted volumes must be indexed in the new session")
	}
	if outer.Session() != world {
		t.Error("adopted volume must report the new owning session")
	}
	if world.Materials.Material("Mylar") == nil {
		t.Error("adopted materials must be re-registered in the new session")
	}

	// Re-adopting the same tree is a no-op.
	if err := world.AdoptRecursive(outer); err != nil {
		t.Errorf("re-adopt: %v", err)
	}

	// A foreign volume under an already-taken name is rejected.
	other := scene.NewSession()
	clash := newVolume(t, other, "wrap")
	if err := world.AdoptRecursive(clash); !errors.Is(err, scene.ErrDuplicateName) {
		t.Errorf("adopting clashing name: got %v, want ErrDuplicateName", err)
	}
}

func mustPlace(t *testing.T, s *scene.Session, mother, daughter *scene.LogicalVolume) {
	t.Helper()
	if _, err := s.Place(mother, daughter, solid.Identity, 1); err != nil {
		t.Fatalf("Place(%s, %s): %v", mother.Name, daughter.Name, err)
	}
}
