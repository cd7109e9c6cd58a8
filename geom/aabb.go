package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// Extents returns the size of the box on each axis
func (a AABB) Extents() mgl64.Vec3 {
	return a.Max.Sub(a.Min)
}

func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) Volume() float64 {
	e := a.Extents()
	return e.X() * e.Y() * e.Z()
}

// CombineAABB returns the smallest box enclosing both boxes
func CombineAABB(first, second AABB) AABB {
	return AABB{
		Min: mgl64.Vec3{
			math.Min(first.Min[0], second.Min[0]),
			math.Min(first.Min[1], second.Min[1]),
			math.Min(first.Min[2], second.Min[2]),
		},
		Max: mgl64.Vec3{
			math.Max(first.Max[0], second.Max[0]),
			math.Max(first.Max[1], second.Max[1]),
			math.Max(first.Max[2], second.Max[2]),
		},
	}
}

// ConstructAABB builds the world-space box of a vertex set placed by transform.
//
// Each world axis is brought into local space, the support vertex along it is found
// and transformed back, so only six support queries are needed instead of
// transforming every vertex.
// Directions are mapped with the transpose of the linear part.
func ConstructAABB(vertices []mgl64.Vec3, transform mgl64.Mat4) AABB {
	if len(vertices) == 0 {
		origin := TransformPoint(transform, mgl64.Vec3{})
		return AABB{Min: origin, Max: origin}
	}

	var aabb AABB
	for axis := 0; axis < 3; axis++ {
		var worldDir mgl64.Vec3
		worldDir[axis] = 1

		localDir := LocalDirection(transform, worldDir)

		maxVert, _, _ := SupportPoint(vertices, localDir)
		minVert, _, _ := SupportPoint(vertices, localDir.Mul(-1))

		aabb.Max[axis] = TransformPoint(transform, maxVert)[axis]
		aabb.Min[axis] = TransformPoint(transform, minVert)[axis]
	}

	return aabb
}
