package halfedge

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// findEdge returns the edge running from one vertex to another
func findEdge(t *testing.T, m *Mesh, from, to mgl64.Vec3) EdgeID {
	t.Helper()

	for _, face := range m.FaceIDs() {
		for _, id := range m.Edges(face) {
			if m.Edge(id).Origin == from && m.End(id) == to {
				return id
			}
		}
	}
	t.Fatalf("no edge %v -> %v", from, to)
	return None
}

func TestMergeWithPairing(t *testing.T) {
	tests := []struct {
		name string
		// top of the unit cube, split in two
		top      [][]mgl64.Vec3
		sides    [][]mgl64.Vec3
		from, to mgl64.Vec3
	}{
		{
			name: "two triangles",
			top: [][]mgl64.Vec3{
				{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}},
				{{0, 0, 1}, {1, 1, 1}, {0, 1, 1}},
			},
			sides: cubeSides(),
			from:  mgl64.Vec3{1, 1, 1},
			to:    mgl64.Vec3{0, 0, 1},
		},
		{
			name: "split along a bent diagonal leaves a spike",
			top: [][]mgl64.Vec3{
				{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0.5, 0.5, 1}},
				{{0, 0, 1}, {0.5, 0.5, 1}, {1, 1, 1}, {0, 1, 1}},
			},
			sides: cubeSides(),
			from:  mgl64.Vec3{1, 1, 1},
			to:    mgl64.Vec3{0.5, 0.5, 1},
		},
		{
			name: "split across leaves vertices shared with one neighbour",
			top: [][]mgl64.Vec3{
				{{0, 0, 1}, {0.5, 0, 1}, {0.5, 1, 1}, {0, 1, 1}},
				{{0.5, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0.5, 1, 1}},
			},
			sides: [][]mgl64.Vec3{
				{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
				{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0.5, 0, 1}, {0, 0, 1}},
				{{0, 1, 0}, {0, 1, 1}, {0.5, 1, 1}, {1, 1, 1}, {1, 1, 0}},
				{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
				{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
			},
			from: mgl64.Vec3{0.5, 0, 1},
			to:   mgl64.Vec3{0.5, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := buildMesh(t, append(tt.sides, tt.top...))
			if err := m.Validate(); err != nil {
				t.Fatalf("Validate() before merge = %v", err)
			}

			id := findEdge(t, m, tt.from, tt.to)
			gone := m.Edge(m.Edge(id).Pairing).Face

			kept := m.MergeWithPairing(id)

			if err := m.Validate(); err != nil {
				t.Fatalf("Validate() after merge = %v", err)
			}
			if m.FaceAlive(gone) {
				t.Errorf("pairing face %d survived the merge", gone)
			}
			if got := m.FaceCount(); got != 6 {
				t.Errorf("FaceCount() = %d, want 6", got)
			}
			if got := m.HalfEdgeCount(); got != 24 {
				t.Errorf("HalfEdgeCount() = %d, want 24", got)
			}
			for _, face := range m.FaceIDs() {
				if got := m.EdgeCount(face); got != 4 {
					t.Errorf("face %d has %d edges, want 4", face, got)
				}
			}
			if n := m.Face(kept).Normal; !n.ApproxEqual(mgl64.Vec3{0, 0, 1}) {
				t.Errorf("merged normal = %v, want +Z", n)
			}
			if c := m.Face(kept).Centroid; !c.ApproxEqual(mgl64.Vec3{0.5, 0.5, 1}) {
				t.Errorf("merged centroid = %v, want the top centre", c)
			}
		})
	}
}

func TestMergeWithPairing_Panics(t *testing.T) {
	m := New()
	a := m.NewEdge(mgl64.Vec3{0, 0, 0})
	b := m.NewEdge(mgl64.Vec3{1, 0, 0})
	c := m.NewEdge(mgl64.Vec3{0, 1, 0})
	m.Link(a, b, c)
	m.NewFace(a)

	defer func() {
		if recover() == nil {
			t.Errorf("merging an unpaired edge must panic")
		}
	}()
	m.MergeWithPairing(a)
}

func TestCompact(t *testing.T) {
	m := buildMesh(t, append(cubeSides(),
		[]mgl64.Vec3{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}},
		[]mgl64.Vec3{{0, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	))
	kept := m.MergeWithPairing(findEdge(t, m, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{0, 0, 1}))

	compact, faceMap := m.Compact()

	if err := compact.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if got, want := len(compact.edges), 24; got != want {
		t.Errorf("compact arena holds %d edges, want %d", got, want)
	}
	if got, want := len(compact.faces), 6; got != want {
		t.Errorf("compact arena holds %d faces, want %d", got, want)
	}
	mapped, ok := faceMap[kept]
	if !ok {
		t.Fatalf("merged face %d missing from the face map", kept)
	}
	if n := compact.Face(mapped).Normal; !n.ApproxEqual(mgl64.Vec3{0, 0, 1}) {
		t.Errorf("mapped face normal = %v, want +Z", n)
	}
}

func TestCanMerge(t *testing.T) {
	a, b, c := mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}

	tests := []struct {
		name     string
		polygons [][]mgl64.Vec3
		from, to mgl64.Vec3
		want     bool
	}{
		{
			name: "triangles splitting a square",
			polygons: append(cubeSides(),
				[]mgl64.Vec3{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}},
				[]mgl64.Vec3{{0, 0, 1}, {1, 1, 1}, {0, 1, 1}},
			),
			from: mgl64.Vec3{1, 1, 1},
			to:   mgl64.Vec3{0, 0, 1},
			want: true,
		},
		{
			name:     "two faces sharing every edge",
			polygons: [][]mgl64.Vec3{{a, b, c}, {a, c, b}},
			from:     a,
			to:       b,
			want:     false,
		},
		{
			name:     "unpaired edge",
			polygons: [][]mgl64.Vec3{{a, b, c}},
			from:     a,
			to:       b,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := buildMesh(t, tt.polygons)
			id := findEdge(t, m, tt.from, tt.to)

			if got := m.CanMerge(id); got != tt.want {
				t.Errorf("CanMerge() = %v, want %v", got, tt.want)
			}
		})
	}
}
