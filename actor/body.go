package actor

import (
	"github.com/akmonengine/convex/geom"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// BodyType represents how a body takes part in detection
type BodyType int

const (
	// BodyTypeDynamic bodies are tested against every other body
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies are never tested against each other (e.g., ground, walls)
	BodyTypeStatic
)

// Body places a collision shape in the world
type Body struct {
	ID        uuid.UUID
	Transform geom.Transform
	BodyType  BodyType
	// IsTrigger bodies report overlaps without being part of contact resolution
	IsTrigger bool

	// Collision shape
	Shape ShapeInterface
}

// NewBody creates a body and caches the world bounds of its shape
func NewBody(transform geom.Transform, shape ShapeInterface, bodyType BodyType) *Body {
	b := &Body{
		ID:        uuid.New(),
		Transform: transform,
		BodyType:  bodyType,
		Shape:     shape,
	}
	b.Shape.ComputeAABB(b.Transform)

	return b
}

// Matrix returns the world matrix of the body
func (b *Body) Matrix() mgl64.Mat4 {
	return b.Transform.Mat4()
}

// MoveTo sets the transform and refreshes the world bounds
func (b *Body) MoveTo(transform geom.Transform) {
	b.Transform = transform
	b.Shape.ComputeAABB(b.Transform)
}

func (b *Body) UpdateAABB() {
	b.Shape.ComputeAABB(b.Transform)
}

// SupportWorld returns the world point of the shape furthest along a world direction
func (b *Body) SupportWorld(direction mgl64.Vec3) mgl64.Vec3 {
	m := b.Matrix()
	localSupport := b.Shape.Support(geom.LocalDirection(m, direction))

	return geom.TransformPoint(m, localSupport)
}

// Center returns the world position of the shape's reference point
func (b *Body) Center() mgl64.Vec3 {
	if convex, ok := b.Shape.(*Convex); ok {
		return geom.TransformPoint(b.Matrix(), convex.Collider.LocalCentroid())
	}
	return b.Transform.Position
}
