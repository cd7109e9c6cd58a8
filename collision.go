package convex

import (
	"cmp"
	"math"
	"slices"
	"sync"

	"github.com/akmonengine/convex/actor"
	"github.com/akmonengine/convex/sat"
	"github.com/go-gl/mathgl/mgl64"
)

// Pair represents a pair of bodies that potentially collide
type Pair struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

// Contact describes a detected collision, to be consumed by contact resolution
type Contact struct {
	BodyA *actor.Body
	BodyB *actor.Body
	// Normal points from BodyA toward BodyB
	Normal      mgl64.Vec3
	Penetration float64
	Feature     sat.Feature

	// Manifold is set for convex pairs, SphereManifold for convex-sphere pairs.
	// Both are zero for sphere pairs.
	Manifold       sat.Manifold
	SphereManifold sat.SphereManifold

	index int
}

type candidate struct {
	Pair
	index int
}

// AllPairs returns every pair of bodies, except pairs of two static bodies
func AllPairs(bodies []*actor.Body) []Pair {
	pairs := make([]Pair, 0, len(bodies))
	for i, bodyA := range bodies {
		for _, bodyB := range bodies[i+1:] {
			if bodyA.BodyType == actor.BodyTypeStatic && bodyB.BodyType == actor.BodyTypeStatic {
				continue
			}
			pairs = append(pairs, Pair{BodyA: bodyA, BodyB: bodyB})
		}
	}
	return pairs
}

// NarrowPhase rejects the pairs whose world AABBs are apart, then runs the exact test
// of every remaining pair on workersCount goroutines. Contacts are returned in
// the order of pairs.
//
// The AABBs cached by the shapes are used as they are: bodies moved since their last
// UpdateAABB or MoveTo must be refreshed first, as Detector.Detect does.
func NarrowPhase(pairs []Pair, workersCount int) []Contact {
	workersCount = max(DEFAULT_WORKERS, workersCount)

	// Dispatcher: separate pairs of hulls from pairs involving a sphere
	convexPairs := make(chan candidate, workersCount)
	spherePairs := make(chan candidate, workersCount)

	go func() {
		defer close(convexPairs)
		defer close(spherePairs)

		for i, pair := range pairs {
			if !pair.BodyA.Shape.GetAABB().Overlaps(pair.BodyB.Shape.GetAABB()) {
				continue
			}

			_, aIsConvex := pair.BodyA.Shape.(*actor.Convex)
			_, bIsConvex := pair.BodyB.Shape.(*actor.Convex)

			if aIsConvex && bIsConvex {
				convexPairs <- candidate{Pair: pair, index: i}
			} else {
				spherePairs <- candidate{Pair: pair, index: i}
			}
		}
	}()

	allContacts := make(chan Contact, workersCount*2)
	var wg sync.WaitGroup

	// Path 1: SAT between hulls
	wg.Add(1)
	go func() {
		defer wg.Done()
		for contact := range collide(convexPairs, workersCount, collideConvex) {
			allContacts <- contact
		}
	}()

	// Path 2: spheres against hulls and spheres
	wg.Add(1)
	go func() {
		defer wg.Done()
		for contact := range collide(spherePairs, workersCount, collideSphere) {
			allContacts <- contact
		}
	}()

	go func() {
		wg.Wait()
		close(allContacts)
	}()

	contacts := make([]Contact, 0)
	for c := range allContacts {
		contacts = append(contacts, c)
	}
	slices.SortFunc(contacts, func(a, b Contact) int {
		return cmp.Compare(a.index, b.index)
	})

	return contacts
}

func collide(pairs <-chan candidate, workersCount int, test func(pair Pair) (Contact, bool)) <-chan Contact {
	ch := make(chan Contact, workersCount)

	go func() {
		var wg sync.WaitGroup
		defer close(ch)

		for range workersCount {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for c := range pairs {
					contact, ok := test(c.Pair)
					if !ok {
						continue
					}
					contact.index = c.index
					ch <- contact
				}
			}()
		}

		wg.Wait()
	}()

	return ch
}

func collideConvex(pair Pair) (Contact, bool) {
	a := pair.BodyA.Shape.(*actor.Convex)
	b := pair.BodyB.Shape.(*actor.Convex)

	m := sat.DetectConvexConvex(a.Collider, b.Collider, pair.BodyA.Matrix(), pair.BodyB.Matrix())
	if !m.IsColliding {
		return Contact{}, false
	}

	return Contact{
		BodyA:       pair.BodyA,
		BodyB:       pair.BodyB,
		Normal:      m.Axis,
		Penetration: m.Penetration,
		Feature:     m.Feature,
		Manifold:    m,
	}, true
}

func collideSphere(pair Pair) (Contact, bool) {
	sphereA, aIsSphere := pair.BodyA.Shape.(*actor.Sphere)
	sphereB, bIsSphere := pair.BodyB.Shape.(*actor.Sphere)

	switch {
	case aIsSphere && bIsSphere:
		return collideSpheres(pair, sphereA, sphereB)
	case aIsSphere:
		shape := pair.BodyB.Shape.(*actor.Convex)
		m := sat.DetectConvexSphere(shape.Collider, pair.BodyB.Matrix(), pair.BodyA.Transform.Position, sphereA.WorldRadius(pair.BodyA.Transform))
		if !m.IsColliding {
			return Contact{}, false
		}
		// the axis runs from the hull, which is B here
		return Contact{BodyA: pair.BodyA, BodyB: pair.BodyB, Normal: m.Axis.Mul(-1), Penetration: m.Penetration(), SphereManifold: m}, true
	case bIsSphere:
		shape := pair.BodyA.Shape.(*actor.Convex)
		m := sat.DetectConvexSphere(shape.Collider, pair.BodyA.Matrix(), pair.BodyB.Transform.Position, sphereB.WorldRadius(pair.BodyB.Transform))
		if !m.IsColliding {
			return Contact{}, false
		}
		return Contact{BodyA: pair.BodyA, BodyB: pair.BodyB, Normal: m.Axis, Penetration: m.Penetration(), SphereManifold: m}, true
	}

	return Contact{}, false
}

func collideSpheres(pair Pair, a, b *actor.Sphere) (Contact, bool) {
	delta := pair.BodyB.Transform.Position.Sub(pair.BodyA.Transform.Position)
	radii := a.WorldRadius(pair.BodyA.Transform) + b.WorldRadius(pair.BodyB.Transform)
	distance := delta.Len()

	if distance > radii {
		return Contact{}, false
	}

	normal := mgl64.Vec3{0, 1, 0}
	if distance > math.SmallestNonzeroFloat64 {
		normal = delta.Mul(1 / distance)
	}

	return Contact{
		BodyA:       pair.BodyA,
		BodyB:       pair.BodyB,
		Normal:      normal,
		Penetration: radii - distance,
	}, true
}
