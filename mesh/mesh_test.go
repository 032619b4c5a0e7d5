package mesh

import (
	"testing"

	"github.com/patterncut/unfold/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoTriSquare returns a unit square made of two triangles, split by a
// shared diagonal edge between vertices 1 and 2.
func twoTriSquare() *ArrayMesh {
	return &ArrayMesh{
		Positions: []geom.Vec3{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
		},
		Faces: [][3]int{
			{0, 1, 2},
			{1, 3, 2},
		},
	}
}

func TestBuildAdjacency_SharedEdgeAndBoundary(t *testing.T) {
	m := twoTriSquare()
	adj := BuildMesh(m)

	require.Len(t, adj.FaceNeighbors, 2)
	assert.ElementsMatch(t, []int{1}, adj.FaceNeighbors[0])
	assert.ElementsMatch(t, []int{0}, adj.FaceNeighbors[1])

	shared := MakeEdgeKey(1, 2)
	assert.False(t, adj.BoundaryEdges[shared], "diagonal is interior, not boundary")

	outer := MakeEdgeKey(0, 1)
	assert.True(t, adj.BoundaryEdges[outer])
}

func TestBuildAdjacency_NonManifoldTreatedAsBoundary(t *testing.T) {
	// Three faces all sharing edge (0,1) - non-manifold incidence 3.
	m := &ArrayMesh{
		Positions: []geom.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}},
		Faces: [][3]int{
			{0, 1, 2},
			{1, 0, 3},
			{0, 1, 4},
		},
	}
	adj := BuildMesh(m)
	key := MakeEdgeKey(0, 1)
	assert.Len(t, adj.EdgeFaces[key], 3)
	assert.True(t, adj.BoundaryEdges[key], "non-manifold edge degrades to boundary on all sides")
}

func TestWeld_MergesCoincidentVertices(t *testing.T) {
	// Two triangles sharing an edge, but with duplicated coincident
	// vertices at the seam (a common exporter artifact).
	m := &ArrayMesh{
		Positions: []geom.Vec3{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
			{1, 0, 0 + 1e-8}, {0, 1, 0 + 1e-8}, {1, 1, 0},
		},
		Faces: [][3]int{
			{0, 1, 2},
			{3, 5, 4},
		},
	}

	welded, remap, _ := Weld(m, 1e-5)
	assert.Equal(t, 4, welded.VertexCount())
	assert.Equal(t, remap[1], remap[3])
	assert.Equal(t, remap[2], remap[4])
	assert.Len(t, welded.Faces, 2)
}

func TestWeld_Idempotent(t *testing.T) {
	m := twoTriSquare()
	once, _, _ := Weld(m, 1e-5)
	twice, _, _ := Weld(once, 1e-5)

	assert.Equal(t, once.VertexCount(), twice.VertexCount())
	assert.Equal(t, len(once.Faces), len(twice.Faces))
}

func TestWeld_DropsDegenerateFaces(t *testing.T) {
	m := &ArrayMesh{
		Positions: []geom.Vec3{{0, 0, 0}, {0, 0, 0}, {1, 0, 0}},
		Faces:     [][3]int{{0, 1, 2}},
	}
	welded, _, _ := Weld(m, 1e-5)
	assert.Empty(t, welded.Faces, "face collapses once its two coincident vertices weld together")
}

func TestWeld_MergesColorByMaxRed(t *testing.T) {
	m := &ArrayMesh{
		Positions: []geom.Vec3{{0, 0, 0}, {0, 0, 0}},
		Colors:    []geom.Vec3{{0.2, 0, 0}, {0.9, 0, 0}},
		Faces:     [][3]int{},
	}
	welded, remap, _ := Weld(m, 1e-5)
	idx := remap[0]
	assert.Equal(t, 0.9, welded.Colors[idx].X)
	assert.Equal(t, remap[0], remap[1])
}

func TestComponents_FiltersFragments(t *testing.T) {
	// Main body: a strip of 4 connected triangles. Fragment: one isolated
	// triangle sharing no vertices.
	m := &ArrayMesh{
		Positions: []geom.Vec3{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}, {2, 0, 0}, {2, 1, 0},
			{10, 10, 10}, {11, 10, 10}, {10, 11, 10},
		},
		Faces: [][3]int{
			{0, 1, 2}, {1, 3, 2}, {1, 4, 3}, {4, 5, 3},
			{6, 7, 8},
		},
	}
	adj := BuildMesh(m)
	kept, dropped := Components(m.FaceCount(), adj, 2)
	require.Len(t, kept, 1)
	assert.Equal(t, 4, len(kept[0]))
	assert.Equal(t, 1, dropped)
}

func TestLargestComponent(t *testing.T) {
	m := &ArrayMesh{
		Positions: []geom.Vec3{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
			{10, 10, 10}, {11, 10, 10}, {10, 11, 10},
		},
		Faces: [][3]int{
			{0, 1, 2}, {1, 3, 2},
			{4, 5, 6},
		},
	}
	main := LargestComponent(m, 2)
	assert.Equal(t, 4, main.VertexCount())
	assert.Equal(t, 2, main.FaceCount())
}
