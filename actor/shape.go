package actor

import (
	"github.com/akmonengine/convex/geom"
	"github.com/akmonengine/convex/hull"
	"github.com/go-gl/mathgl/mgl64"
)

// ShapeType represents the type of collision shape
type ShapeType int

const (
	ShapeTypeSphere ShapeType = iota
	ShapeTypeConvex
)

func (s ShapeType) String() string {
	switch s {
	case ShapeTypeSphere:
		return "sphere"
	case ShapeTypeConvex:
		return "convex"
	default:
		return "unknown"
	}
}

// ShapeInterface is the interface that all collision shapes must implement
type ShapeInterface interface {
	Type() ShapeType
	// ComputeAABB caches the world bounds of the shape at the given transform
	ComputeAABB(transform geom.Transform)
	GetAABB() geom.AABB
	// Support returns the local point furthest along a local direction
	Support(direction mgl64.Vec3) mgl64.Vec3
}

// Sphere is centred on the body position
type Sphere struct {
	Radius float64
	aabb   geom.AABB
}

func (s *Sphere) Type() ShapeType {
	return ShapeTypeSphere
}

// WorldRadius scales the radius by the largest scale factor of the transform
func (s *Sphere) WorldRadius(transform geom.Transform) float64 {
	return s.Radius * transform.MaxScale()
}

func (s *Sphere) ComputeAABB(transform geom.Transform) {
	r := s.WorldRadius(transform)
	extent := mgl64.Vec3{r, r, r}

	s.aabb = geom.AABB{
		Min: transform.Position.Sub(extent),
		Max: transform.Position.Add(extent),
	}
}

func (s *Sphere) GetAABB() geom.AABB {
	return s.aabb
}

func (s *Sphere) Support(direction mgl64.Vec3) mgl64.Vec3 {
	if direction.LenSqr() == 0 {
		return mgl64.Vec3{}
	}
	return direction.Normalize().Mul(s.Radius)
}

// Convex wraps a hull built from a point cloud
type Convex struct {
	Collider *hull.Collider
	aabb     geom.AABB
}

// NewConvex builds the hull of points
func NewConvex(points []mgl64.Vec3, opts ...hull.Option) (*Convex, error) {
	collider, err := hull.Build(points, opts...)
	if err != nil {
		return nil, err
	}

	return &Convex{Collider: collider}, nil
}

func (c *Convex) Type() ShapeType {
	return ShapeTypeConvex
}

func (c *Convex) ComputeAABB(transform geom.Transform) {
	c.aabb = c.Collider.ComputeAABB(transform.Mat4())
}

func (c *Convex) GetAABB() geom.AABB {
	return c.aabb
}

func (c *Convex) Support(direction mgl64.Vec3) mgl64.Vec3 {
	return c.Collider.Support(direction)
}
