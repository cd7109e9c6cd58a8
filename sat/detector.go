package sat

import (
	"github.com/akmonengine/convex/diag"
	"github.com/akmonengine/convex/geom"
	"github.com/akmonengine/convex/halfedge"
	"github.com/akmonengine/convex/hull"
	"github.com/go-gl/mathgl/mgl64"
)

// DetectConvexConvex runs the face queries of a and b, then the edge query, and
// stops on the first axis that separates them. When none does, the hulls collide
// and the axis of least penetration is reported, faces winning ties over edges.
func DetectConvexConvex(a, b *hull.Collider, ta, tb mgl64.Mat4, opts ...Option) Manifold {
	o := newOptions(opts)
	m := newManifold()
	origin := geom.TransformPoint(ta, a.LocalCentroid())

	faceA := QueryFaceDirections(a, b, ta, tb)
	m.FaceA, m.SeparationA = faceA.Face, faceA.Separation
	if faceA.Separation > 0 {
		m.Feature, m.Axis = FeatureFaceA, faceA.Normal
		o.drawer.DrawLine(origin, origin.Add(m.Axis), diag.ColorGreen)
		return m
	}

	faceB := QueryFaceDirections(b, a, tb, ta)
	m.FaceB, m.SeparationB = faceB.Face, faceB.Separation
	if faceB.Separation > 0 {
		m.Feature, m.Axis = FeatureFaceB, faceB.Normal.Mul(-1)
		o.drawer.DrawLine(origin, origin.Add(m.Axis), diag.ColorGreen)
		return m
	}

	edges := QueryEdgeDirections(a, b, ta, tb)
	m.EdgeA, m.EdgeB, m.EdgeSeparation = edges.EdgeA, edges.EdgeB, edges.Separation
	if edges.EdgeA != halfedge.None && edges.Separation > 0 {
		m.Feature, m.Axis = FeatureEdges, edges.Axis
		o.drawer.DrawLine(origin, origin.Add(m.Axis), diag.ColorGreen)
		return m
	}

	m.IsColliding = true
	m.Feature, m.Axis, m.Penetration = FeatureFaceA, faceA.Normal, -faceA.Separation
	if faceB.Separation > faceA.Separation {
		m.Feature, m.Axis, m.Penetration = FeatureFaceB, faceB.Normal.Mul(-1), -faceB.Separation
	}
	if edges.EdgeA != halfedge.None && edges.Separation > -m.Penetration {
		m.Feature, m.Axis, m.Penetration = FeatureEdges, edges.Axis, -edges.Separation
	}
	o.drawer.DrawLine(origin, origin.Add(m.Axis.Mul(m.Penetration)), diag.ColorRed)

	return m
}
