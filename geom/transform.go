package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform represents a position, orientation and scale in 3D space
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Translation creates an unrotated, unscaled transform at position
func Translation(position mgl64.Vec3) Transform {
	t := NewTransform()
	t.Position = position
	return t
}

// Mat4 returns the affine matrix T * R * S
func (t Transform) Mat4() mgl64.Mat4 {
	scale := t.Scale
	if scale == (mgl64.Vec3{}) {
		scale = mgl64.Vec3{1, 1, 1}
	}
	rotation := t.Rotation
	if rotation.Len() == 0 {
		rotation = mgl64.QuatIdent()
	}

	translate := mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	return translate.Mul4(rotation.Normalize().Mat4()).Mul4(mgl64.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// TransformPoint applies the full affine transform to a point
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// TransformDirection applies only the linear part of m to a direction
func TransformDirection(m mgl64.Mat4, d mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(d.Vec4(0)).Vec3()
}

// NormalMatrix returns the inverse transpose of the linear part of m, used to
// carry surface normals through non-uniform scale.
func NormalMatrix(m mgl64.Mat4) mgl64.Mat3 {
	return m.Mat3().Inv().Transpose()
}

// TransformNormal maps a local normal to a unit world normal
func TransformNormal(normalMatrix mgl64.Mat3, n mgl64.Vec3) mgl64.Vec3 {
	return normalMatrix.Mul3x1(n).Normalize()
}

// LocalDirection maps a world direction into the local space of m for support
// queries: support(M·V, d) = M·support(V, Mᵀ·d).
func LocalDirection(m mgl64.Mat4, worldDir mgl64.Vec3) mgl64.Vec3 {
	return m.Mat3().Transpose().Mul3x1(worldDir)
}

// Origin returns the translation column of m
func Origin(m mgl64.Mat4) mgl64.Vec3 {
	return m.Col(3).Vec3()
}

// MaxScale returns the largest absolute scale factor, 1 for an unset scale
func (t Transform) MaxScale() float64 {
	if t.Scale == (mgl64.Vec3{}) {
		return 1
	}
	return max(math.Abs(t.Scale.X()), math.Abs(t.Scale.Y()), math.Abs(t.Scale.Z()))
}
