package sat

import (
	"math"

	"github.com/akmonengine/convex/geom"
	"github.com/akmonengine/convex/halfedge"
	"github.com/akmonengine/convex/hull"
	"github.com/go-gl/mathgl/mgl64"
)

// ParallelTolerance is the smallest sine between two edges that still gives an axis
const ParallelTolerance = 1e-6

type EdgeQuery struct {
	EdgeA      halfedge.EdgeID
	EdgeB      halfedge.EdgeID
	Separation float64
	// Axis points away from A
	Axis mgl64.Vec3
}

// IsMinkowskiFace reports whether the arcs a-b and c-d cross on the Gauss map. The
// edges of two hulls build a face of their Minkowski difference exactly when the
// arc of the first crosses the negated arc of the second, so the caller passes the
// normals of B already negated.
func IsMinkowskiFace(a, b, c, d mgl64.Vec3) bool {
	bxa := b.Cross(a)
	dxc := d.Cross(c)

	cba := c.Dot(bxa)
	dba := d.Dot(bxa)
	adc := a.Dot(dxc)
	bdc := b.Dot(dxc)

	return cba*dba < 0 && adc*bdc < 0 && cba*bdc > 0
}

type worldEdge struct {
	id         halfedge.EdgeID
	start, end mgl64.Vec3
	// normals of the two faces sharing the edge
	left, right mgl64.Vec3
}

func worldEdges(c *hull.Collider, transform mgl64.Mat4) []worldEdge {
	mesh := c.Mesh()
	normalMatrix := geom.NormalMatrix(transform)

	edges := make([]worldEdge, len(c.Edges()))
	for i, id := range c.Edges() {
		e := mesh.Edge(id)
		edges[i] = worldEdge{
			id:    id,
			start: geom.TransformPoint(transform, e.Origin),
			end:   geom.TransformPoint(transform, mesh.End(id)),
			left:  geom.TransformNormal(normalMatrix, mesh.Face(e.Face).Normal),
			right: geom.TransformNormal(normalMatrix, mesh.Face(mesh.Edge(e.Pairing).Face).Normal),
		}
	}
	return edges
}

// QueryEdgeDirections tests the cross products of the edges of a and b that build a
// face of the Minkowski difference. It stops on the first separating axis, otherwise
// it returns the pair of largest separation. Ids are None when no pair qualifies.
func QueryEdgeDirections(a, b *hull.Collider, ta, tb mgl64.Mat4) EdgeQuery {
	centroidA := geom.TransformPoint(ta, a.LocalCentroid())
	edgesB := worldEdges(b, tb)
	best := EdgeQuery{EdgeA: halfedge.None, EdgeB: halfedge.None, Separation: math.Inf(-1)}

	for _, edgeA := range worldEdges(a, ta) {
		dirA := edgeA.end.Sub(edgeA.start)

		for _, edgeB := range edgesB {
			if !IsMinkowskiFace(edgeA.left, edgeA.right, edgeB.left.Mul(-1), edgeB.right.Mul(-1)) {
				continue
			}

			dirB := edgeB.end.Sub(edgeB.start)
			axis := dirA.Cross(dirB)
			if axis.Len() < ParallelTolerance*dirA.Len()*dirB.Len() {
				continue
			}
			axis = axis.Normalize()
			if axis.Dot(edgeA.start.Sub(centroidA)) < 0 {
				axis = axis.Mul(-1)
			}

			separation := axis.Dot(edgeB.start.Sub(edgeA.start))
			if separation > best.Separation {
				best = EdgeQuery{EdgeA: edgeA.id, EdgeB: edgeB.id, Separation: separation, Axis: axis}
			}
			if separation > 0 {
				return best
			}
		}
	}

	return best
}
