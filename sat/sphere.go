package sat

import (
	"github.com/akmonengine/convex/diag"
	"github.com/akmonengine/convex/geom"
	"github.com/akmonengine/convex/halfedge"
	"github.com/akmonengine/convex/hull"
	"github.com/go-gl/mathgl/mgl64"
)

// DetectConvexSphere tests the axis from the hull centroid to the sphere centre
// first, then every face normal of the hull against the sphere radius.
func DetectConvexSphere(c *hull.Collider, tc mgl64.Mat4, center mgl64.Vec3, radius float64, opts ...Option) SphereManifold {
	o := newOptions(opts)
	centroid := geom.TransformPoint(tc, c.LocalCentroid())
	result := SphereManifold{Face: halfedge.None}

	if axis := center.Sub(centroid); axis.LenSqr() > 0 {
		axis = axis.Normalize()
		surface := center.Sub(axis.Mul(radius))
		support := geom.TransformPoint(tc, c.Support(geom.LocalDirection(tc, axis)))

		result.Axis, result.Separation = axis, axis.Dot(surface.Sub(support))
		if result.Separation > 0 {
			o.drawer.DrawLine(support, surface, diag.ColorGreen)
			return result
		}
	} else {
		// centre on the centroid, any face decides
		result.Separation = -radius - c.LocalAABB().Extents().Len()
	}

	normalMatrix := geom.NormalMatrix(tc)
	for _, face := range c.Faces() {
		f := c.Face(face)
		normal := geom.TransformNormal(normalMatrix, f.Normal)
		separation := geom.PointDistanceToPlane(normal, geom.TransformPoint(tc, f.Centroid), center) - radius

		if separation > result.Separation {
			result.Axis, result.Separation, result.Face = normal, separation, face
		}
		if separation > 0 {
			o.drawer.DrawLine(center.Sub(normal.Mul(radius)), center.Sub(normal.Mul(radius+separation)), diag.ColorGreen)
			return result
		}
	}

	result.IsColliding = true
	o.drawer.DrawLine(center, center.Sub(result.Axis.Mul(radius)), diag.ColorRed)

	return result
}
