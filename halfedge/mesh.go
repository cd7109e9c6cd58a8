// Package halfedge implements the polyhedral mesh used by convex colliders.
//
// Faces and directed edges live in an index arena. Every edge is owned by exactly one
// face, forms a closed cycle with its face's other edges through Next/Prev, and is
// paired with the twin edge running the opposite direction on the adjacent face.
// Cycles run counter-clockwise around the outward face normal.
//
// Edges and faces removed by a merge are tombstoned: their slots are never reused
// while the mesh is being built, and any access to them panics. Compact produces a
// dense copy once construction is over.
package halfedge

import (
	"fmt"

	"github.com/akmonengine/convex/geom"
	"github.com/go-gl/mathgl/mgl64"
)

type EdgeID int32
type FaceID int32

// None marks a missing edge or face reference
const None = -1

// Edge is a directed half-edge starting at Origin
type Edge struct {
	Origin  mgl64.Vec3
	Next    EdgeID
	Prev    EdgeID
	Pairing EdgeID
	Face    FaceID
	Visited bool

	freed bool
}

// Face is a planar convex polygon bounded by a cycle of edges
type Face struct {
	Start    EdgeID
	Normal   mgl64.Vec3
	Centroid mgl64.Vec3

	freed bool
}

type Mesh struct {
	edges []Edge
	faces []Face
}

func New() *Mesh {
	return &Mesh{
		edges: make([]Edge, 0, 32),
		faces: make([]Face, 0, 8),
	}
}

// NewEdge allocates an unlinked edge starting at origin
func (m *Mesh) NewEdge(origin mgl64.Vec3) EdgeID {
	m.edges = append(m.edges, Edge{
		Origin:  origin,
		Next:    None,
		Prev:    None,
		Pairing: None,
		Face:    None,
	})
	return EdgeID(len(m.edges) - 1)
}

// Link closes the given edges into a cycle, in order
func (m *Mesh) Link(edges ...EdgeID) {
	n := len(edges)
	for i, id := range edges {
		e := m.Edge(id)
		e.Next = edges[(i+1)%n]
		e.Prev = edges[(i-1+n)%n]
	}
}

// SetPairing makes a and b twins of each other
func (m *Mesh) SetPairing(a, b EdgeID) {
	m.Edge(a).Pairing = b
	m.Edge(b).Pairing = a
}

// NewFace creates a face owning the closed cycle that contains start, and computes
// its normal and centroid from the cycle.
func (m *Mesh) NewFace(start EdgeID) FaceID {
	m.faces = append(m.faces, Face{Start: start})
	id := FaceID(len(m.faces) - 1)

	count := 0
	m.ForEachEdge(id, func(e EdgeID) bool {
		m.edges[e].Face = id
		count++
		return true
	})
	if count < 3 {
		panic(fmt.Sprintf("halfedge: face %d has %d edges", id, count))
	}

	m.refreshFace(id)
	return id
}

// Edge returns the live edge id. Dereferencing a freed or unknown edge is an
// invariant violation and panics.
func (m *Mesh) Edge(id EdgeID) *Edge {
	if id < 0 || int(id) >= len(m.edges) {
		panic(fmt.Sprintf("halfedge: edge %d out of range", id))
	}
	e := &m.edges[id]
	if e.freed {
		panic(fmt.Sprintf("halfedge: access to freed edge %d", id))
	}
	return e
}

// Face returns the live face id, and panics on freed or unknown faces.
func (m *Mesh) Face(id FaceID) *Face {
	if id < 0 || int(id) >= len(m.faces) {
		panic(fmt.Sprintf("halfedge: face %d out of range", id))
	}
	f := &m.faces[id]
	if f.freed {
		panic(fmt.Sprintf("halfedge: access to freed face %d", id))
	}
	return f
}

func (m *Mesh) EdgeAlive(id EdgeID) bool {
	return id >= 0 && int(id) < len(m.edges) && !m.edges[id].freed
}

func (m *Mesh) FaceAlive(id FaceID) bool {
	return id >= 0 && int(id) < len(m.faces) && !m.faces[id].freed
}

// FaceIDs returns the live faces in creation order
func (m *Mesh) FaceIDs() []FaceID {
	ids := make([]FaceID, 0, len(m.faces))
	for i := range m.faces {
		if !m.faces[i].freed {
			ids = append(ids, FaceID(i))
		}
	}
	return ids
}

// FaceCount returns the number of live faces
func (m *Mesh) FaceCount() int {
	count := 0
	for i := range m.faces {
		if !m.faces[i].freed {
			count++
		}
	}
	return count
}

// HalfEdgeCount returns the number of live half-edges
func (m *Mesh) HalfEdgeCount() int {
	count := 0
	for i := range m.edges {
		if !m.edges[i].freed {
			count++
		}
	}
	return count
}

// ForEachEdge visits every edge of the face cycle once, starting at the face's
// start edge and following Next. The visitor returns false to stop early.
func (m *Mesh) ForEachEdge(face FaceID, visit func(e EdgeID) bool) {
	m.walk(face, visit, false)
}

// ForEachEdgeReverse is ForEachEdge following Prev
func (m *Mesh) ForEachEdgeReverse(face FaceID, visit func(e EdgeID) bool) {
	m.walk(face, visit, true)
}

func (m *Mesh) walk(face FaceID, visit func(e EdgeID) bool, reverse bool) {
	start := m.Face(face).Start
	current := start

	for steps := 0; ; steps++ {
		// a cycle can never be longer than the arena
		if steps > len(m.edges) {
			panic(fmt.Sprintf("halfedge: cycle of face %d does not close", face))
		}

		e := m.Edge(current)
		next := e.Next
		if reverse {
			next = e.Prev
		}

		if !visit(current) {
			return
		}

		current = next
		if current == start {
			return
		}
	}
}

// Edges returns the edges of a face in cycle order
func (m *Mesh) Edges(face FaceID) []EdgeID {
	edges := make([]EdgeID, 0, 4)
	m.ForEachEdge(face, func(e EdgeID) bool {
		edges = append(edges, e)
		return true
	})
	return edges
}

// Vertices returns the origins of the face edges in cycle order
func (m *Mesh) Vertices(face FaceID) []mgl64.Vec3 {
	vertices := make([]mgl64.Vec3, 0, 4)
	m.ForEachEdge(face, func(e EdgeID) bool {
		vertices = append(vertices, m.edges[e].Origin)
		return true
	})
	return vertices
}

func (m *Mesh) EdgeCount(face FaceID) int {
	count := 0
	m.ForEachEdge(face, func(EdgeID) bool {
		count++
		return true
	})
	return count
}

// End returns the vertex an edge points to
func (m *Mesh) End(id EdgeID) mgl64.Vec3 {
	return m.Edge(m.Edge(id).Next).Origin
}

// Direction returns End - Origin
func (m *Mesh) Direction(id EdgeID) mgl64.Vec3 {
	return m.End(id).Sub(m.Edge(id).Origin)
}

// FaceArea returns the area of the face polygon
func (m *Mesh) FaceArea(face FaceID) float64 {
	return geom.PolygonArea(m.Vertices(face))
}

// Invert reverses the winding of an unpaired face and flips its normal.
func (m *Mesh) Invert(face FaceID) {
	edges := m.Edges(face)
	ends := make([]mgl64.Vec3, len(edges))
	for i, id := range edges {
		if m.edges[id].Pairing != None {
			panic(fmt.Sprintf("halfedge: cannot invert paired face %d", face))
		}
		ends[i] = m.End(id)
	}

	for i, id := range edges {
		e := &m.edges[id]
		e.Origin = ends[i]
		e.Next, e.Prev = e.Prev, e.Next
	}

	m.refreshFace(face)
}

// refreshFace recomputes the normal and centroid of a face from its cycle
func (m *Mesh) refreshFace(face FaceID) {
	vertices := m.Vertices(face)
	f := m.Face(face)

	if normal, _ := geom.NewellPlane(vertices); normal.LenSqr() > 0 {
		f.Normal = normal
	}
	f.Centroid = geom.Centroid(vertices)
}

// RemoveFace frees a face and its whole cycle. Surviving twins of the removed edges
// are left unpaired.
func (m *Mesh) RemoveFace(face FaceID) {
	for _, id := range m.Edges(face) {
		if pairing := m.edges[id].Pairing; m.EdgeAlive(pairing) && m.edges[pairing].Pairing == id {
			m.edges[pairing].Pairing = None
		}
		m.freeEdge(id)
	}
	m.freeFace(face)
}

func (m *Mesh) freeEdge(id EdgeID) {
	m.edges[id] = Edge{Next: None, Prev: None, Pairing: None, Face: None, freed: true}
}

func (m *Mesh) freeFace(id FaceID) {
	m.faces[id] = Face{Start: None, freed: true}
}

// UniqueEdges returns one half-edge per twin pair, in face order.
func (m *Mesh) UniqueEdges() []EdgeID {
	unique := make([]EdgeID, 0, m.HalfEdgeCount()/2)

	for _, face := range m.FaceIDs() {
		m.ForEachEdge(face, func(id EdgeID) bool {
			e := &m.edges[id]
			if e.Visited {
				return true
			}
			e.Visited = true
			if e.Pairing != None {
				m.edges[e.Pairing].Visited = true
			}
			unique = append(unique, id)
			return true
		})
	}

	for i := range m.edges {
		m.edges[i].Visited = false
	}

	return unique
}
