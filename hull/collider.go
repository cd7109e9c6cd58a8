package hull

import (
	"github.com/akmonengine/convex/geom"
	"github.com/akmonengine/convex/halfedge"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Collider is a finished convex hull. It is never modified after Build and can be
// queried from several goroutines at once.
type Collider struct {
	ID uuid.UUID

	mesh     *halfedge.Mesh
	faces    []halfedge.FaceID
	vertices []mgl64.Vec3
	edges    []halfedge.EdgeID
	centroid mgl64.Vec3
	aabb     geom.AABB
}

func newCollider(built *halfedge.Mesh) *Collider {
	mesh, _ := built.Compact()
	faces := mesh.FaceIDs()

	origins := lo.FlatMap(faces, func(face halfedge.FaceID, _ int) []mgl64.Vec3 {
		return mesh.Vertices(face)
	})
	vertices := lo.Uniq(origins)

	return &Collider{
		ID:       uuid.New(),
		mesh:     mesh,
		faces:    faces,
		vertices: vertices,
		edges:    mesh.UniqueEdges(),
		centroid: geom.Centroid(vertices),
		aabb:     geom.ConstructAABB(vertices, mgl64.Ident4()),
	}
}

// Mesh gives read access to the half-edge structure. Callers must not modify it.
func (c *Collider) Mesh() *halfedge.Mesh {
	return c.mesh
}

func (c *Collider) Faces() []halfedge.FaceID {
	return c.faces
}

func (c *Collider) Face(id halfedge.FaceID) *halfedge.Face {
	return c.mesh.Face(id)
}

func (c *Collider) Vertices() []mgl64.Vec3 {
	return c.vertices
}

// Edges returns one half-edge per undirected edge of the hull
func (c *Collider) Edges() []halfedge.EdgeID {
	return c.edges
}

func (c *Collider) FaceCount() int {
	return len(c.faces)
}

func (c *Collider) HalfEdgeCount() int {
	return c.mesh.HalfEdgeCount()
}

// Support returns the vertex furthest along a local direction
func (c *Collider) Support(direction mgl64.Vec3) mgl64.Vec3 {
	support, _, _ := geom.SupportPoint(c.vertices, direction)
	return support
}

// LocalCentroid is the average of the hull vertices
func (c *Collider) LocalCentroid() mgl64.Vec3 {
	return c.centroid
}

func (c *Collider) LocalAABB() geom.AABB {
	return c.aabb
}

// ComputeAABB returns the world bounds of the hull placed by transform
func (c *Collider) ComputeAABB(transform mgl64.Mat4) geom.AABB {
	return geom.ConstructAABB(c.vertices, transform)
}

// Volume sums the pyramids from the centroid to every face
func (c *Collider) Volume() float64 {
	volume := 0.0
	for _, face := range c.faces {
		f := c.mesh.Face(face)
		height := f.Normal.Dot(f.Centroid.Sub(c.centroid))
		volume += c.mesh.FaceArea(face) * height / 3
	}
	return volume
}
