package actor

import (
	"errors"
	"math"
	"testing"

	"github.com/akmonengine/convex/geom"
	"github.com/akmonengine/convex/hull"
	"github.com/go-gl/mathgl/mgl64"
)

func boxPoints(hx, hy, hz float64) []mgl64.Vec3 {
	points := make([]mgl64.Vec3, 0, 8)
	for _, x := range []float64{-hx, hx} {
		for _, y := range []float64{-hy, hy} {
			for _, z := range []float64{-hz, hz} {
				points = append(points, mgl64.Vec3{x, y, z})
			}
		}
	}
	return points
}

func newBox(t *testing.T, hx, hy, hz float64) *Convex {
	t.Helper()

	convex, err := NewConvex(boxPoints(hx, hy, hz))
	if err != nil {
		t.Fatalf("NewConvex() error = %v", err)
	}
	return convex
}

// =============================================================================
// Sphere Tests
// =============================================================================

func TestSphere_ComputeAABB(t *testing.T) {
	tests := []struct {
		name      string
		radius    float64
		transform geom.Transform
		wantMin   mgl64.Vec3
		wantMax   mgl64.Vec3
	}{
		{
			name:      "At origin",
			radius:    1,
			transform: geom.NewTransform(),
			wantMin:   mgl64.Vec3{-1, -1, -1},
			wantMax:   mgl64.Vec3{1, 1, 1},
		},
		{
			name:      "Translated",
			radius:    0.5,
			transform: geom.Translation(mgl64.Vec3{2, -3, 4}),
			wantMin:   mgl64.Vec3{1.5, -3.5, 3.5},
			wantMax:   mgl64.Vec3{2.5, -2.5, 4.5},
		},
		{
			name:   "Scaled uses the largest factor",
			radius: 1,
			transform: geom.Transform{
				Rotation: mgl64.QuatIdent(),
				Scale:    mgl64.Vec3{1, 3, 2},
			},
			wantMin: mgl64.Vec3{-3, -3, -3},
			wantMax: mgl64.Vec3{3, 3, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Sphere{Radius: tt.radius}
			s.ComputeAABB(tt.transform)

			aabb := s.GetAABB()
			if !aabb.Min.ApproxEqual(tt.wantMin) || !aabb.Max.ApproxEqual(tt.wantMax) {
				t.Errorf("AABB = %v, want {%v %v}", aabb, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestSphere_Support(t *testing.T) {
	s := &Sphere{Radius: 2}

	if got := s.Support(mgl64.Vec3{0, 5, 0}); !got.ApproxEqual(mgl64.Vec3{0, 2, 0}) {
		t.Errorf("Support() = %v, want {0 2 0}", got)
	}
	if got := s.Support(mgl64.Vec3{}); got != (mgl64.Vec3{}) {
		t.Errorf("Support(zero) = %v, want the centre", got)
	}
	if s.Type() != ShapeTypeSphere || s.Type().String() != "sphere" {
		t.Errorf("Type() = %v", s.Type())
	}
}

// =============================================================================
// Convex Tests
// =============================================================================

func TestConvex_ComputeAABB(t *testing.T) {
	box := newBox(t, 1, 0.5, 0.25)

	tests := []struct {
		name      string
		transform geom.Transform
		wantMin   mgl64.Vec3
		wantMax   mgl64.Vec3
	}{
		{
			name:      "Identity",
			transform: geom.NewTransform(),
			wantMin:   mgl64.Vec3{-1, -0.5, -0.25},
			wantMax:   mgl64.Vec3{1, 0.5, 0.25},
		},
		{
			name:      "Translated",
			transform: geom.Translation(mgl64.Vec3{10, 0, 0}),
			wantMin:   mgl64.Vec3{9, -0.5, -0.25},
			wantMax:   mgl64.Vec3{11, 0.5, 0.25},
		},
		{
			name: "Quarter turn around Z swaps X and Y",
			transform: geom.Transform{
				Rotation: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}),
				Scale:    mgl64.Vec3{1, 1, 1},
			},
			wantMin: mgl64.Vec3{-0.5, -1, -0.25},
			wantMax: mgl64.Vec3{0.5, 1, 0.25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box.ComputeAABB(tt.transform)

			aabb := box.GetAABB()
			if !aabb.Min.ApproxEqual(tt.wantMin) || !aabb.Max.ApproxEqual(tt.wantMax) {
				t.Errorf("AABB = %v, want {%v %v}", aabb, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestConvex_Support(t *testing.T) {
	box := newBox(t, 1, 2, 3)

	if got := box.Support(mgl64.Vec3{1, -1, 1}); got != (mgl64.Vec3{1, -2, 3}) {
		t.Errorf("Support() = %v, want {1 -2 3}", got)
	}
	if box.Type() != ShapeTypeConvex {
		t.Errorf("Type() = %v, want convex", box.Type())
	}
}

func TestNewConvex_Degenerate(t *testing.T) {
	flat := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}}

	convex, err := NewConvex(flat)
	if convex != nil {
		t.Errorf("expected no shape for a flat cloud")
	}
	if !errors.Is(err, hull.ErrCoplanar) {
		t.Errorf("error = %v, want %v", err, hull.ErrCoplanar)
	}
}
