// Package geom holds the geometric queries shared by the hull builder and the
// separating-axis detector: support points, plane distances, closest points,
// Newell plane fitting and axis-aligned bounding boxes.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SupportPoint returns the point maximizing dot(direction, point), its projection
// and its index. Ties keep the first point encountered. An empty set returns index -1.
func SupportPoint(points []mgl64.Vec3, direction mgl64.Vec3) (mgl64.Vec3, float64, int) {
	best := -1
	bestDot := -math.MaxFloat64

	for i, p := range points {
		d := direction.Dot(p)
		if d > bestDot {
			bestDot = d
			best = i
		}
	}

	if best < 0 {
		return mgl64.Vec3{}, bestDot, -1
	}
	return points[best], bestDot, best
}

// PointDistanceToPlane returns the signed distance of point to the plane going
// through planePoint with the given unit normal. Positive is in front.
func PointDistanceToPlane(normal, planePoint, point mgl64.Vec3) float64 {
	return normal.Dot(point.Sub(planePoint))
}

func IsPointAbovePlane(normal, planePoint, point mgl64.Vec3) bool {
	return PointDistanceToPlane(normal, planePoint, point) > 0
}

// LineInterpolant returns t such that start + direction*t is the closest point of the
// infinite line to point. direction must not be zero.
func LineInterpolant(start, direction, point mgl64.Vec3) float64 {
	return (direction.Dot(point) - direction.Dot(start)) / direction.Dot(direction)
}

// ClosestPointOnLine projects point on the infinite line through start and end
func ClosestPointOnLine(start, end, point mgl64.Vec3) mgl64.Vec3 {
	dir := end.Sub(start)
	if dir.LenSqr() == 0 {
		return start
	}
	return start.Add(dir.Mul(LineInterpolant(start, dir, point)))
}

// ClosestPointOnSegment projects point on the segment [start, end]
func ClosestPointOnSegment(start, end, point mgl64.Vec3) mgl64.Vec3 {
	dir := end.Sub(start)
	if dir.LenSqr() == 0 {
		return start
	}
	t := LineInterpolant(start, dir, point)
	t = math.Max(0, math.Min(1, t))

	return start.Add(dir.Mul(t))
}

// newellNormal returns the unnormalized Newell normal of a closed polygon.
// Its length is twice the polygon area.
func newellNormal(polygon []mgl64.Vec3) mgl64.Vec3 {
	var n mgl64.Vec3
	for i, j := len(polygon)-1, 0; j < len(polygon); i, j = j, j+1 {
		vi, vj := polygon[i], polygon[j]
		n[0] += (vi.Y() - vj.Y()) * (vi.Z() + vj.Z())
		n[1] += (vi.Z() - vj.Z()) * (vi.X() + vj.X())
		n[2] += (vi.X() - vj.X()) * (vi.Y() + vj.Y())
	}
	return n
}

// NewellPlane fits a plane through a polygon (counter-clockwise around the returned
// normal). The plane is dot(normal, p) == d. A degenerate polygon returns a zero normal.
func NewellPlane(polygon []mgl64.Vec3) (mgl64.Vec3, float64) {
	if len(polygon) < 3 {
		return mgl64.Vec3{}, 0
	}

	n := newellNormal(polygon)
	if n.Len() < 1e-300 {
		return mgl64.Vec3{}, 0
	}
	n = n.Normalize()

	return n, n.Dot(Centroid(polygon))
}

// PolygonArea returns the area of a planar polygon
func PolygonArea(polygon []mgl64.Vec3) float64 {
	if len(polygon) < 3 {
		return 0
	}
	return newellNormal(polygon).Len() * 0.5
}

// Centroid returns the average of the points
func Centroid(points []mgl64.Vec3) mgl64.Vec3 {
	if len(points) == 0 {
		return mgl64.Vec3{}
	}

	var sum mgl64.Vec3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(points)))
}
