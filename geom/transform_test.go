package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTransform_Mat4(t *testing.T) {
	transform := Transform{
		Position: mgl64.Vec3{1, 2, 3},
		Rotation: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}),
		Scale:    mgl64.Vec3{2, 2, 2},
	}
	m := transform.Mat4()

	// scaled to (2, 0, 0), rotated to (0, 2, 0), then translated
	if got := TransformPoint(m, mgl64.Vec3{1, 0, 0}); !got.ApproxEqual(mgl64.Vec3{1, 4, 3}) {
		t.Errorf("TransformPoint() = %v, want (1, 4, 3)", got)
	}
	if got := TransformDirection(m, mgl64.Vec3{1, 0, 0}); !got.ApproxEqual(mgl64.Vec3{0, 2, 0}) {
		t.Errorf("TransformDirection() = %v, want (0, 2, 0)", got)
	}
	if got := Origin(m); got != transform.Position {
		t.Errorf("Origin() = %v, want %v", got, transform.Position)
	}
}

func TestTransform_ZeroValue(t *testing.T) {
	var zero Transform

	if got := zero.Mat4(); !got.ApproxEqual(mgl64.Ident4()) {
		t.Errorf("Mat4() of the zero transform = %v, want identity", got)
	}
	if got := zero.MaxScale(); got != 1 {
		t.Errorf("MaxScale() of the zero transform = %v, want 1", got)
	}
}

func TestTransform_MaxScale(t *testing.T) {
	transform := NewTransform()
	transform.Scale = mgl64.Vec3{1, -3, 2}

	if got := transform.MaxScale(); got != 3 {
		t.Errorf("MaxScale() = %v, want 3", got)
	}
}

func TestNormalMatrix(t *testing.T) {
	// a 45 degree slope stretched along X gets flatter
	m := Transform{Rotation: mgl64.QuatIdent(), Scale: mgl64.Vec3{2, 1, 1}}.Mat4()
	normal := mgl64.Vec3{1, 1, 0}.Normalize()

	got := TransformNormal(NormalMatrix(m), normal)

	want := mgl64.Vec3{0.5, 1, 0}.Normalize()
	if !got.ApproxEqual(want) {
		t.Errorf("TransformNormal() = %v, want %v", got, want)
	}

	// the transformed normal stays perpendicular to the transformed surface
	tangent := TransformDirection(m, mgl64.Vec3{1, -1, 0})
	if math.Abs(got.Dot(tangent)) > 1e-12 {
		t.Errorf("TransformNormal() is not perpendicular to the surface")
	}
}

func TestLocalDirection(t *testing.T) {
	rotation := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	m := Transform{Position: mgl64.Vec3{10, 0, 0}, Rotation: rotation, Scale: mgl64.Vec3{1, 1, 1}}.Mat4()

	// world +Y is local +X after a quarter turn, translation is ignored
	if got := LocalDirection(m, mgl64.Vec3{0, 1, 0}); !got.ApproxEqual(mgl64.Vec3{1, 0, 0}) {
		t.Errorf("LocalDirection() = %v, want +X", got)
	}
}
