package sat

import (
	"math"

	"github.com/akmonengine/convex/geom"
	"github.com/akmonengine/convex/halfedge"
	"github.com/akmonengine/convex/hull"
	"github.com/go-gl/mathgl/mgl64"
)

type FaceQuery struct {
	Face       halfedge.FaceID
	Separation float64
	// Normal of Face in world space
	Normal mgl64.Vec3
}

// QueryFaceDirections tests every face normal of ref as a separating axis against
// inc. It stops on the first face that separates the hulls, otherwise it returns the
// face of largest separation.
func QueryFaceDirections(ref, inc *hull.Collider, tRef, tInc mgl64.Mat4) FaceQuery {
	normalMatrix := geom.NormalMatrix(tRef)
	best := FaceQuery{Face: halfedge.None, Separation: math.Inf(-1)}

	for _, face := range ref.Faces() {
		f := ref.Face(face)
		normal := geom.TransformNormal(normalMatrix, f.Normal)
		planePoint := geom.TransformPoint(tRef, f.Centroid)

		support := geom.TransformPoint(tInc, inc.Support(geom.LocalDirection(tInc, normal.Mul(-1))))
		separation := normal.Dot(support.Sub(planePoint))

		if separation > best.Separation {
			best = FaceQuery{Face: face, Separation: separation, Normal: normal}
		}
		if separation > 0 {
			return best
		}
	}

	return best
}
