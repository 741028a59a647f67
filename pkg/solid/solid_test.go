package solid_test

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/hadesgeom/pkg/solid"
)

func TestPolyconeMonotonicProfile(t *testing.T) {
	tests := []struct {
		name    string
		planes  []solid.ZPlane
		wantErr bool
	}{
		{
			"non-monotonic z",
			[]solid.ZPlane{{Z: 0, OuterR: 10}, {Z: 5, OuterR: 8}, {Z: 3, OuterR: 9}},
			true,
		},
		{
			"strictly increasing z",
			[]solid.ZPlane{{Z: 0, OuterR: 10}, {Z: 5, OuterR: 8}, {Z: 10, OuterR: 6}},
			false,
		},
		{
			"repeated z",
			[]solid.ZPlane{{Z: 0, OuterR: 10}, {Z: 0, OuterR: 8}},
			true,
		},
		{
			"single plane",
			[]solid.ZPlane{{Z: 0, OuterR: 10}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := solid.NewPolycone("p", tt.planes, 0, 2*math.Pi)
			if tt.wantErr {
				if !errors.Is(err, solid.ErrInvalidProfile) {
					t.Errorf("got %v, want ErrInvalidProfile", err)
				}
			} else if err != nil {
				t.Errorf("got %v, want success", err)
			}
		})
	}
}

func TestPolyconeCopiesPlanes(t *testing.T) {
	planes := []solid.ZPlane{{Z: 0, OuterR: 10}, {Z: 5, OuterR: 8}}
	p, err := solid.NewPolycone("p", planes, 0, 2*math.Pi)
	if err != nil {
		t.Fatalf("NewPolycone: %v", err)
	}
	planes[0].OuterR = 99
	if p.Planes[0].OuterR != 10 {
		t.Error("polycone must not alias the caller's plane slice")
	}
}

func TestBooleanOpString(t *testing.T) {
	tests := []struct {
		op   solid.BooleanOp
		want string
	}{
		{solid.OpUnion, "union"},
		{solid.OpSubtraction, "subtraction"},
		{solid.OpIntersection, "intersection"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestBooleanTree(t *testing.T) {
	outer := solid.NewTube("outer", 0, 50, 50, 0, 2*math.Pi)
	inner := solid.NewTube("inner", 0, 49, 49.5, 0, 2*math.Pi)
	shell := solid.NewSubtraction("shell", outer, inner, solid.Translate(0, 0, -0.5))

	if shell.Name() != "shell" {
		t.Errorf("Name() = %q, want shell", shell.Name())
	}
	if shell.Op != solid.OpSubtraction {
		t.Errorf("Op = %v, want OpSubtraction", shell.Op)
	}
	if shell.First != outer || shell.Second != inner {
		t.Error("boolean node must reference its operands")
	}
	if shell.Transform.Translation.Z != -0.5 {
		t.Errorf("Transform.Translation.Z = %v, want -0.5", shell.Transform.Translation.Z)
	}

	ring := solid.NewTube("ring", 50, 60, 5, 0, 2*math.Pi)
	ringed := solid.NewUnion("ringed", shell, ring, solid.Identity)
	if ringed.First != shell {
		t.Error("boolean nodes must nest")
	}
	if ringed.Transform != solid.Identity {
		t.Error("identity transform must compare equal to itself")
	}
}

func TestTransform(t *testing.T) {
	tr := solid.Translate(1, 2, 3)
	if tr.Translation.X != 1 || tr.Translation.Y != 2 || tr.Translation.Z != 3 {
		t.Errorf("Translate = %+v", tr.Translation)
	}
	if tr.Rotation != (solid.Identity.Rotation) {
		t.Error("Translate must not rotate")
	}
}
