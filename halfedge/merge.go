package halfedge

import (
	"errors"
	"fmt"
)

// MergeWithPairing deletes an edge together with its twin and fuses the twin's face
// into the edge's face. The twin's face is freed; the surviving face is returned
// with its normal and centroid recomputed.
//
// The merged cycle is cleaned afterwards: spikes left by two twins becoming
// consecutive are cut, and vertices shared only by the merged face and one neighbour
// are dissolved, so that every cycle stays a valid closed loop of at least 3 edges.
func (m *Mesh) MergeWithPairing(id EdgeID) FaceID {
	keep := m.splice(id)
	m.cleanFace(keep)
	m.refreshFace(keep)

	return keep
}

// CanMerge reports whether MergeWithPairing(id) keeps a simple cycle of at least 3
// edges. The two faces must share a single run of edges, and the edges left once
// that run is cut must still close a polygon.
func (m *Mesh) CanMerge(id EdgeID) bool {
	e := m.Edge(id)
	if e.Pairing == None {
		return false
	}
	keep, gone := e.Face, m.Edge(e.Pairing).Face
	if keep == gone {
		return false
	}

	var shared []bool
	m.ForEachEdge(keep, func(other EdgeID) bool {
		pairing := m.edges[other].Pairing
		shared = append(shared, pairing != None && m.edges[pairing].Face == gone)
		return true
	})

	common, runs := 0, 0
	for i, s := range shared {
		if !s {
			continue
		}
		common++
		if !shared[(i+len(shared)-1)%len(shared)] {
			runs++
		}
	}
	if runs > 1 {
		return false
	}

	return len(shared)+m.EdgeCount(gone)-2*common >= 3
}

// splice performs the pointer surgery of a merge without any cleanup
func (m *Mesh) splice(id EdgeID) FaceID {
	e := m.Edge(id)
	if e.Pairing == None {
		panic(fmt.Sprintf("halfedge: merging unpaired edge %d", id))
	}
	twinID := e.Pairing
	twin := m.Edge(twinID)

	keep, gone := e.Face, twin.Face
	if keep == gone {
		panic(fmt.Sprintf("halfedge: edge %d and its pairing share face %d", id, keep))
	}

	m.ForEachEdge(gone, func(other EdgeID) bool {
		m.edges[other].Face = keep
		return true
	})

	ePrev, eNext := e.Prev, e.Next
	tPrev, tNext := twin.Prev, twin.Next

	m.edges[ePrev].Next = tNext
	m.edges[tNext].Prev = ePrev
	m.edges[tPrev].Next = eNext
	m.edges[eNext].Prev = tPrev

	m.Face(keep).Start = ePrev

	m.freeEdge(id)
	m.freeEdge(twinID)
	m.freeFace(gone)

	return keep
}

func (m *Mesh) cleanFace(face FaceID) {
	for changed := true; changed; {
		changed = false

		for _, id := range m.Edges(face) {
			e := m.edges[id]

			if e.Next == e.Pairing {
				m.removeSpike(face, id)
				changed = true
				break
			}

			next := m.edges[e.Next]
			if e.Pairing == None || next.Pairing == None {
				continue
			}

			neighbour := m.edges[e.Pairing].Face
			if neighbour == face || neighbour != m.edges[next.Pairing].Face {
				continue
			}

			// the vertex between e and next is only shared with one neighbour
			if m.EdgeCount(neighbour) <= 3 || m.edges[next.Pairing].Next != e.Pairing {
				m.splice(id)
			} else {
				m.removeRedundantVertex(face, id)
			}
			changed = true
			break
		}
	}

	if count := m.EdgeCount(face); count < 3 {
		panic(fmt.Sprintf("halfedge: face %d collapsed to %d edges", face, count))
	}
}

// removeSpike cuts an edge immediately followed by its own twin
func (m *Mesh) removeSpike(face FaceID, id EdgeID) {
	twinID := m.edges[id].Next
	prev := m.edges[id].Prev
	after := m.edges[twinID].Next

	if after == id {
		panic(fmt.Sprintf("halfedge: face %d reduced to a single spike", face))
	}

	m.edges[prev].Next = after
	m.edges[after].Prev = prev

	if f := m.Face(face); f.Start == id || f.Start == twinID {
		f.Start = prev
	}

	m.freeEdge(id)
	m.freeEdge(twinID)
}

// removeRedundantVertex dissolves the vertex at the end of id. Both edges around it
// belong to face, and both twins belong to the same neighbour.
func (m *Mesh) removeRedundantVertex(face FaceID, id EdgeID) {
	nextID := m.edges[id].Next
	next := m.edges[nextID]

	inner := m.edges[id].Pairing // b -> a on the neighbour
	outer := next.Pairing        // c -> b on the neighbour
	neighbour := m.edges[inner].Face

	// face: a -> b -> c becomes a -> c
	m.edges[id].Next = next.Next
	m.edges[next.Next].Prev = id

	// neighbour: c -> b -> a becomes c -> a
	innerNext := m.edges[inner].Next
	m.edges[outer].Next = innerNext
	m.edges[innerNext].Prev = outer

	m.SetPairing(id, outer)

	if f := m.Face(face); f.Start == nextID {
		f.Start = id
	}
	if f := m.Face(neighbour); f.Start == inner {
		f.Start = outer
	}

	m.freeEdge(nextID)
	m.freeEdge(inner)

	m.refreshFace(neighbour)
}

// Validate checks that the mesh is a closed 2-manifold: every cycle closes within
// its edge count, refers back to its face and has at least 3 edges, and every edge
// has a twin on another face running the opposite direction.
func (m *Mesh) Validate() error {
	var errs []error

	for _, face := range m.FaceIDs() {
		start := m.faces[face].Start
		if !m.EdgeAlive(start) {
			errs = append(errs, fmt.Errorf("face %d starts on dead edge %d", face, start))
			continue
		}

		current := start
		count := 0
		for {
			if count > len(m.edges) {
				errs = append(errs, fmt.Errorf("face %d cycle does not close", face))
				break
			}
			e := m.edges[current]
			count++

			switch {
			case e.Face != face:
				errs = append(errs, fmt.Errorf("edge %d of face %d refers to face %d", current, face, e.Face))
			case !m.EdgeAlive(e.Next) || !m.EdgeAlive(e.Prev):
				errs = append(errs, fmt.Errorf("edge %d links to a dead edge", current))
			case m.edges[e.Next].Prev != current:
				errs = append(errs, fmt.Errorf("edge %d next/prev mismatch", current))
			case !m.EdgeAlive(e.Pairing):
				errs = append(errs, fmt.Errorf("edge %d has no pairing", current))
			case m.edges[e.Pairing].Pairing != current:
				errs = append(errs, fmt.Errorf("edge %d pairing is not symmetric", current))
			case m.edges[e.Pairing].Face == face:
				errs = append(errs, fmt.Errorf("edge %d is paired inside its own face", current))
			case m.edges[e.Pairing].Origin != m.edges[e.Next].Origin:
				errs = append(errs, fmt.Errorf("edge %d pairing does not run the opposite direction", current))
			}

			if !m.EdgeAlive(e.Next) {
				break
			}
			current = e.Next
			if current == start {
				break
			}
		}

		if count < 3 {
			errs = append(errs, fmt.Errorf("face %d has %d edges", face, count))
		}
	}

	return errors.Join(errs...)
}

// Compact returns a copy of the mesh without tombstones, and the mapping from the
// old face ids to the new ones.
func (m *Mesh) Compact() (*Mesh, map[FaceID]FaceID) {
	edgeMap := make(map[EdgeID]EdgeID, len(m.edges))
	faceMap := make(map[FaceID]FaceID, len(m.faces))

	compact := &Mesh{
		edges: make([]Edge, 0, len(m.edges)),
		faces: make([]Face, 0, len(m.faces)),
	}

	for i, e := range m.edges {
		if !e.freed {
			edgeMap[EdgeID(i)] = EdgeID(len(compact.edges))
			compact.edges = append(compact.edges, e)
		}
	}
	for i, f := range m.faces {
		if !f.freed {
			faceMap[FaceID(i)] = FaceID(len(compact.faces))
			compact.faces = append(compact.faces, f)
		}
	}

	remapEdge := func(id EdgeID) EdgeID {
		if mapped, ok := edgeMap[id]; ok {
			return mapped
		}
		return None
	}

	for i := range compact.edges {
		e := &compact.edges[i]
		e.Next = remapEdge(e.Next)
		e.Prev = remapEdge(e.Prev)
		e.Pairing = remapEdge(e.Pairing)
		if mapped, ok := faceMap[e.Face]; ok {
			e.Face = mapped
		} else {
			e.Face = None
		}
		e.Visited = false
	}
	for i := range compact.faces {
		compact.faces[i].Start = remapEdge(compact.faces[i].Start)
	}

	return compact, faceMap
}
