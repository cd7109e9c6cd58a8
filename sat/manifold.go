// Package sat detects collisions between convex hulls, and between a convex hull and
// a sphere, with the separating axis theorem.
//
// Every query works on hulls placed in the world by an affine transform. Axes and
// separations are reported in world space, a positive separation meaning the shapes
// are apart along that axis.
package sat

import (
	"github.com/akmonengine/convex/halfedge"
	"github.com/go-gl/mathgl/mgl64"
)

// Feature names the axis a Manifold was decided on
type Feature int

const (
	FeatureNone Feature = iota
	FeatureFaceA
	FeatureFaceB
	FeatureEdges
)

func (f Feature) String() string {
	switch f {
	case FeatureFaceA:
		return "face A"
	case FeatureFaceB:
		return "face B"
	case FeatureEdges:
		return "edges"
	default:
		return "none"
	}
}

// Manifold is the result of a convex-convex test. The queries that were not run
// because an earlier one proved a separation keep halfedge.None ids.
type Manifold struct {
	IsColliding bool
	Feature     Feature

	FaceA       halfedge.FaceID
	SeparationA float64
	FaceB       halfedge.FaceID
	SeparationB float64

	EdgeA          halfedge.EdgeID
	EdgeB          halfedge.EdgeID
	EdgeSeparation float64

	// Axis points from A toward B
	Axis mgl64.Vec3
	// Penetration depth along Axis, only set when colliding
	Penetration float64
}

func newManifold() Manifold {
	return Manifold{
		FaceA: halfedge.None,
		FaceB: halfedge.None,
		EdgeA: halfedge.None,
		EdgeB: halfedge.None,
	}
}

// SphereManifold is the result of a convex-sphere test. Axis points from the hull
// toward the sphere. Face is None when the centroid axis decided the result.
type SphereManifold struct {
	IsColliding bool
	Axis        mgl64.Vec3
	Separation  float64
	Face        halfedge.FaceID
}

// Penetration is the depth of the sphere into the hull
func (m SphereManifold) Penetration() float64 {
	if !m.IsColliding {
		return 0
	}
	return -m.Separation
}
