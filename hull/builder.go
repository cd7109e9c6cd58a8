package hull

import (
	"fmt"
	"math"
	"slices"

	"github.com/akmonengine/convex/diag"
	"github.com/akmonengine/convex/geom"
	"github.com/akmonengine/convex/halfedge"
	"github.com/go-gl/mathgl/mgl64"
)

var axes = [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

type builder struct {
	mesh *halfedge.Mesh
	// points still outside the hull, per face
	outside map[halfedge.FaceID][]mgl64.Vec3

	epsilon              float64
	mergeVolumeThreshold float64

	config    Config
	logger    diag.Logger
	drawer    diag.Drawer
	transform mgl64.Mat4
}

// Build computes the convex hull of points with the quickhull algorithm. Coplanar
// adjacent faces are merged, so the resulting faces are convex polygons rather than
// triangles. A nil collider is returned with ErrTooFewPoints, ErrCollinear or
// ErrCoplanar when the points do not span a volume.
//
// A broken half-edge structure is reported as ErrInvalidMesh, never as a panic.
func Build(points []mgl64.Vec3, opts ...Option) (collider *Collider, err error) {
	o := newOptions(opts)
	if err := o.config.Validate(); err != nil {
		return nil, err
	}
	if len(points) < 4 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}

	b := &builder{
		mesh:      halfedge.New(),
		outside:   make(map[halfedge.FaceID][]mgl64.Vec3),
		config:    o.config,
		logger:    o.logger,
		drawer:    o.drawer,
		transform: o.transform,
	}

	defer func() {
		if r := recover(); r != nil {
			b.logger.Errorf("hull: %v", r)
			collider, err = nil, fmt.Errorf("%w: %v", ErrInvalidMesh, r)
		}
	}()

	if err := b.initialHull(points); err != nil {
		return nil, err
	}
	b.partition(points, b.mesh.FaceIDs())
	b.expand()

	if err := b.mesh.Validate(); err != nil {
		b.logger.Errorf("hull: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidMesh, err)
	}
	b.logger.Debugf("hull: built %d faces, %d half-edges", b.mesh.FaceCount(), b.mesh.HalfEdgeCount())

	return newCollider(b.mesh), nil
}

// scale derives the tolerances from the extreme points of the cloud. The reach is
// measured from the centre of the bounds, so moving the cloud away from the origin
// leaves epsilon unchanged.
func (b *builder) scale(supports [6]mgl64.Vec3) {
	var extents mgl64.Vec3
	for axis := range 3 {
		extents[axis] = supports[2*axis][axis] - supports[2*axis+1][axis]
	}
	reach := extents.Mul(0.5)

	b.epsilon = 3 * (reach[0] + reach[1] + reach[2]) * b.config.InitialEpsilon
	b.mergeVolumeThreshold = extents[0] * extents[1] * extents[2] * b.config.MergeVolumeFraction
}

func (b *builder) initialHull(points []mgl64.Vec3) error {
	var supports [6]mgl64.Vec3
	for axis, dir := range axes {
		supports[2*axis], _, _ = geom.SupportPoint(points, dir)
		supports[2*axis+1], _, _ = geom.SupportPoint(points, dir.Mul(-1))
	}
	b.scale(supports)

	// most distant pair among the extreme points, first pair found wins on ties
	first, second := supports[0], supports[1]
	best := -1.0
	for i := 0; i < len(supports); i++ {
		for j := i + 1; j < len(supports); j++ {
			if d := supports[i].Sub(supports[j]).LenSqr(); d > best {
				best = d
				first, second = supports[i], supports[j]
			}
		}
	}
	if best <= b.epsilon*b.epsilon {
		return fmt.Errorf("%w: all %d points coincide", ErrCollinear, len(points))
	}

	third := first
	bestLine := 0.0
	for _, p := range points {
		if d := geom.ClosestPointOnLine(first, second, p).Sub(p).LenSqr(); d > bestLine {
			bestLine = d
			third = p
		}
	}
	if bestLine <= b.epsilon*b.epsilon {
		return fmt.Errorf("%w: no point leaves the line %v-%v", ErrCollinear, first, second)
	}

	e0, e1, e2 := b.mesh.NewEdge(first), b.mesh.NewEdge(second), b.mesh.NewEdge(third)
	b.mesh.Link(e0, e1, e2)
	base := b.mesh.NewFace(e0)
	normal := b.mesh.Face(base).Normal

	eye := first
	eyeDistance := 0.0
	for _, p := range points {
		if d := geom.PointDistanceToPlane(normal, first, p); math.Abs(d) > math.Abs(eyeDistance) {
			eyeDistance = d
			eye = p
		}
	}
	if math.Abs(eyeDistance) <= b.epsilon {
		return fmt.Errorf("%w: largest distance to the base plane is %g", ErrCoplanar, eyeDistance)
	}

	// the eye must lie behind the base face
	if eyeDistance > 0 {
		b.mesh.Invert(base)
	}
	b.stitch(eye, b.mesh.Edges(base))

	return nil
}

// distance from a point to the plane of a live face
func (b *builder) distance(face halfedge.FaceID, point mgl64.Vec3) float64 {
	f := b.mesh.Face(face)
	return geom.PointDistanceToPlane(f.Normal, f.Centroid, point)
}

// partition distributes points in the outside sets of faces. Points that are behind
// or on every face are inside the hull and dropped.
func (b *builder) partition(points []mgl64.Vec3, faces []halfedge.FaceID) {
	for _, p := range points {
		target := halfedge.FaceID(halfedge.None)
		best := 0.0

		for _, face := range faces {
			d := b.distance(face, p)
			if d <= best {
				continue
			}
			target, best = face, d
			if b.config.Partition == PartitionFirst {
				break
			}
		}

		if target != halfedge.None {
			b.outside[target] = append(b.outside[target], p)
		}
	}
}

// nextFace returns the oldest live face that still has outside points
func (b *builder) nextFace() (halfedge.FaceID, bool) {
	for _, face := range b.mesh.FaceIDs() {
		if len(b.outside[face]) > 0 {
			return face, true
		}
	}
	return halfedge.None, false
}

func (b *builder) expand() {
	for iteration := 1; ; iteration++ {
		face, ok := b.nextFace()
		if !ok {
			return
		}
		if b.config.MaxIterations > 0 && iteration > b.config.MaxIterations {
			b.logger.Warnf("hull: stopped after %d iterations with points left outside", b.config.MaxIterations)
			return
		}

		eye, _, index := geom.SupportPoint(b.outside[face], b.mesh.Face(face).Normal)
		distance := b.distance(face, eye)
		b.logger.Debugf("hull: iteration %d, face %d, eye %v at %.6g", iteration, face, eye, distance)

		if distance <= b.epsilon {
			delete(b.outside, face)
			continue
		}

		// the eye is consumed by the hull whatever happens next
		b.outside[face] = slices.Delete(b.outside[face], index, index+1)

		if !b.addPoint(face, eye) {
			delete(b.outside, face)
		}
	}
}

// visibleFaces grows the set of faces the eye is in front of, starting from the seed
// face so that the visible region is connected.
func (b *builder) visibleFaces(seed halfedge.FaceID, eye mgl64.Vec3) ([]halfedge.FaceID, map[halfedge.FaceID]bool) {
	visible := []halfedge.FaceID{seed}
	inSet := map[halfedge.FaceID]bool{seed: true}

	for i := 0; i < len(visible); i++ {
		b.mesh.ForEachEdge(visible[i], func(id halfedge.EdgeID) bool {
			neighbour := b.mesh.Edge(b.mesh.Edge(id).Pairing).Face
			if !inSet[neighbour] && b.distance(neighbour, eye) > b.epsilon {
				inSet[neighbour] = true
				visible = append(visible, neighbour)
			}
			return true
		})
	}

	return visible, inSet
}

// horizon returns the loop of edges of the visible region whose twin lies on a
// hidden face, each edge starting where the previous one ends.
func (b *builder) horizon(visible []halfedge.FaceID, inSet map[halfedge.FaceID]bool) []halfedge.EdgeID {
	hidden := func(id halfedge.EdgeID) bool {
		return !inSet[b.mesh.Edge(b.mesh.Edge(id).Pairing).Face]
	}

	start := halfedge.EdgeID(halfedge.None)
	for _, face := range visible {
		b.mesh.ForEachEdge(face, func(id halfedge.EdgeID) bool {
			if hidden(id) {
				start = id
				return false
			}
			return true
		})
		if start != halfedge.None {
			break
		}
	}
	if start == halfedge.None {
		panic("hull: visible region has no horizon")
	}

	limit := b.mesh.HalfEdgeCount()
	loop := []halfedge.EdgeID{start}
	current := start
	for {
		current = b.mesh.Edge(current).Next
		for steps := 0; !hidden(current); steps++ {
			if steps > limit {
				panic("hull: horizon walk does not close")
			}
			current = b.mesh.Edge(b.mesh.Edge(current).Pairing).Next
		}
		if current == start {
			return loop
		}
		loop = append(loop, current)
		if len(loop) > limit {
			panic("hull: horizon walk does not close")
		}
	}
}

func (b *builder) visibleVolume(visible []halfedge.FaceID, eye mgl64.Vec3) float64 {
	volume := 0.0
	for _, face := range visible {
		volume += b.mesh.FaceArea(face) * b.distance(face, eye) / 3
	}
	return volume
}

// addPoint replaces the faces visible from eye by a fan of faces joining the horizon
// to eye, then merges the coplanar faces around the fan. It reports false when the
// eye was rejected for adding too little volume.
func (b *builder) addPoint(seed halfedge.FaceID, eye mgl64.Vec3) bool {
	visible, inSet := b.visibleFaces(seed, eye)

	if volume := b.visibleVolume(visible, eye); volume < b.mergeVolumeThreshold {
		b.logger.Debugf("hull: eye %v rejected, volume %.6g under %.6g", eye, volume, b.mergeVolumeThreshold)
		b.drawer.DrawPoint(geom.TransformPoint(b.transform, eye), diag.ColorGrey)
		return false
	}
	b.drawer.DrawPoint(geom.TransformPoint(b.transform, eye), diag.ColorRed)

	loop := b.horizon(visible, inSet)

	// the twins of the horizon, reversed, run around the hole left by the visible faces
	boundary := make([]halfedge.EdgeID, len(loop))
	for i, id := range loop {
		boundary[len(loop)-1-i] = b.mesh.Edge(id).Pairing
	}

	var orphans []mgl64.Vec3
	for _, face := range visible {
		orphans = append(orphans, b.outside[face]...)
		delete(b.outside, face)
		b.mesh.RemoveFace(face)
	}

	fan := b.stitch(eye, boundary)
	for _, face := range fan.faces {
		b.drawer.DrawPolygon(b.worldVertices(face), diag.ColorGreen)
	}

	orphans = b.mergeFan(fan, boundary, orphans)
	b.partition(orphans, b.mesh.FaceIDs())

	return true
}

type fan struct {
	faces []halfedge.FaceID
	// incoming edge of each face, paired with the outgoing edge of the previous face
	spokes []halfedge.EdgeID
}

// stitch closes a boundary loop with one triangle per boundary edge, all sharing the
// eye vertex. Each boundary edge must end where the next one starts.
func (b *builder) stitch(eye mgl64.Vec3, boundary []halfedge.EdgeID) fan {
	n := len(boundary)
	result := fan{
		faces:  make([]halfedge.FaceID, n),
		spokes: make([]halfedge.EdgeID, n),
	}

	previousOut := halfedge.EdgeID(halfedge.None)
	for i, id := range boundary {
		p, q := b.mesh.Edge(id).Origin, b.mesh.End(id)

		base := b.mesh.NewEdge(q)
		in := b.mesh.NewEdge(p)
		out := b.mesh.NewEdge(eye)
		b.mesh.Link(base, in, out)
		b.mesh.SetPairing(base, id)

		result.faces[i] = b.mesh.NewFace(base)
		result.spokes[i] = in
		if previousOut != halfedge.None {
			b.mesh.SetPairing(in, previousOut)
		}
		previousOut = out
	}
	b.mesh.SetPairing(result.spokes[0], previousOut)

	return result
}

// coplanar reports whether the two faces around an edge fit one plane within epsilon
func (b *builder) coplanar(id halfedge.EdgeID) bool {
	e := b.mesh.Edge(id)
	twin := b.mesh.Edge(e.Pairing)

	polygon := make([]mgl64.Vec3, 0, 8)
	for current := e.Next; current != id; current = b.mesh.Edge(current).Next {
		polygon = append(polygon, b.mesh.Edge(current).Origin)
	}
	for current := twin.Next; current != e.Pairing; current = b.mesh.Edge(current).Next {
		polygon = append(polygon, b.mesh.Edge(current).Origin)
	}

	normal, d := geom.NewellPlane(polygon)
	if normal.LenSqr() == 0 {
		return false
	}
	if normal.Dot(b.mesh.Face(e.Face).Normal) <= 0 || normal.Dot(b.mesh.Face(twin.Face).Normal) <= 0 {
		return false
	}
	for _, v := range polygon {
		if math.Abs(normal.Dot(v)-d) > b.epsilon {
			return false
		}
	}

	return true
}

func (b *builder) mergeable(id halfedge.EdgeID) bool {
	if b.mesh.CanMerge(id) {
		return true
	}
	b.logger.Debugf("hull: merge across edge %d skipped, it would collapse a face", id)
	return false
}

// mergeFan merges every fan face coplanar with the face across its base, then every
// pair of consecutive fan faces that ended up coplanar. Outside points of faces that
// disappear are returned with the orphans.
func (b *builder) mergeFan(f fan, boundary []halfedge.EdgeID, orphans []mgl64.Vec3) []mgl64.Vec3 {
	fresh := make(map[halfedge.FaceID]bool, len(f.faces))
	for _, face := range f.faces {
		fresh[face] = true
	}

	for _, id := range boundary {
		if !b.mesh.EdgeAlive(id) {
			continue
		}
		e := b.mesh.Edge(id)
		if e.Pairing == halfedge.None {
			continue
		}
		if !fresh[b.mesh.Edge(e.Pairing).Face] || fresh[e.Face] || !b.coplanar(id) || !b.mergeable(id) {
			continue
		}

		// the surviving face changes plane, its points are partitioned again
		orphans = append(orphans, b.outside[e.Face]...)
		delete(b.outside, e.Face)
		b.mesh.MergeWithPairing(id)
		orphans = b.collectDead(fresh, orphans)
	}

	n := len(f.spokes)
	for i := range n {
		id := f.spokes[(i+1)%n]
		if !b.mesh.EdgeAlive(id) {
			continue
		}
		e := b.mesh.Edge(id)
		if e.Pairing == halfedge.None {
			continue
		}
		other := b.mesh.Edge(e.Pairing).Face
		if other == e.Face || !fresh[other] || !fresh[e.Face] || !b.coplanar(id) || !b.mergeable(id) {
			continue
		}

		b.mesh.MergeWithPairing(id)
		orphans = b.collectDead(fresh, orphans)
	}

	return orphans
}

// collectDead forgets faces freed by a merge and hands back their outside points
func (b *builder) collectDead(fresh map[halfedge.FaceID]bool, orphans []mgl64.Vec3) []mgl64.Vec3 {
	for face := range fresh {
		if !b.mesh.FaceAlive(face) {
			delete(fresh, face)
		}
	}

	dead := make([]halfedge.FaceID, 0)
	for face := range b.outside {
		if !b.mesh.FaceAlive(face) {
			dead = append(dead, face)
		}
	}
	slices.Sort(dead)
	for _, face := range dead {
		orphans = append(orphans, b.outside[face]...)
		delete(b.outside, face)
	}

	return orphans
}

func (b *builder) worldVertices(face halfedge.FaceID) []mgl64.Vec3 {
	vertices := b.mesh.Vertices(face)
	for i, v := range vertices {
		vertices[i] = geom.TransformPoint(b.transform, v)
	}
	return vertices
}
