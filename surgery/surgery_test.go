package surgery

import (
	"testing"

	"github.com/patterncut/unfold/internal/geom"
	"github.com/patterncut/unfold/mesh"
	"github.com/patterncut/unfold/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// planarGridPatch builds an (n+1)x(n+1) planar grid patch with an
// optional internal red line at x == redCol (vertex-aligned, interior
// only: endpoints on the boundary are never marked red so the seam
// stays strictly internal).
func planarGridPatch(n, redCol int) *mesh.SubMesh {
	var verts []geom.Vec3
	idx := func(x, y int) int { return y*(n+1) + x }
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			verts = append(verts, geom.Vec3{X: float64(x), Y: float64(y)})
		}
	}
	var faces [][3]int
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			a, b, c, d := idx(x, y), idx(x+1, y), idx(x, y+1), idx(x+1, y+1)
			faces = append(faces, [3]int{a, b, c})
			faces = append(faces, [3]int{b, d, c})
		}
	}
	sm := &mesh.SubMesh{Vertices: verts, Faces: faces, InternalRed: make(map[int]bool)}
	for i := range sm.Vertices {
		sm.VertexMap = append(sm.VertexMap, i)
	}
	if redCol >= 0 {
		for y := 1; y < n; y++ { // strictly interior rows only
			sm.InternalRed[idx(redCol, y)] = true
		}
	}
	return sm
}

func TestHasInternalSeam(t *testing.T) {
	plain := planarGridPatch(4, -1)
	adj := mesh.BuildSubMesh(plain)
	assert.False(t, HasInternalSeam(plain, adj))

	seamed := planarGridPatch(4, 2)
	adj2 := mesh.BuildSubMesh(seamed)
	assert.True(t, HasInternalSeam(seamed, adj2))
}

func TestCutInternalSeams_NoSeam_ReturnsSameMesh(t *testing.T) {
	sm := planarGridPatch(4, -1)
	adj := mesh.BuildSubMesh(sm)
	out := CutInternalSeams(sm, adj)
	assert.Same(t, sm, out)
}

func TestCutInternalSeams_DuplicatesSeamVertices(t *testing.T) {
	sm := planarGridPatch(4, 2)
	before := sm.VertexCount()
	adj := mesh.BuildSubMesh(sm)

	out := CutInternalSeams(sm, adj)

	assert.Greater(t, out.VertexCount(), before, "seam vertices must be duplicated")
	assert.Equal(t, sm.FaceCount(), out.FaceCount(), "face count is unaffected by vertex splitting")

	outAdj := mesh.BuildSubMesh(out)
	for key := range outAdj.EdgeFaces {
		u, v := out.VertexMap[key.A], out.VertexMap[key.B]
		if u == v {
			continue
		}
		// If both endpoints still map back to a pair of original seam
		// vertices, that edge must not still be shared by two faces:
		// splitting severs the seam into two independent boundaries.
		if sm.InternalRed[u] && sm.InternalRed[v] {
			assert.LessOrEqual(t, len(outAdj.EdgeFaces[key]), 1, "split seam edge should no longer have a twin face across it")
		}
	}

	for _, v := range out.Vertices {
		found := false
		for _, ov := range sm.Vertices {
			if v == ov {
				found = true
				break
			}
		}
		assert.True(t, found, "every output vertex position must trace back to an original position")
	}
}

func cylinderPatch(segments, rings int) (*mesh.SubMesh, *mesh.Adjacency) {
	var verts []geom.Vec3
	idx := func(s, r int) int { return r*segments + s }
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			verts = append(verts, geom.Vec3{X: float64(s), Y: float64(r)})
		}
	}
	var faces [][3]int
	for r := 0; r < rings-1; r++ {
		for s := 0; s < segments; s++ {
			s2 := (s + 1) % segments
			a, b, c, d := idx(s, r), idx(s2, r), idx(s, r+1), idx(s2, r+1)
			faces = append(faces, [3]int{a, b, d})
			faces = append(faces, [3]int{a, d, c})
		}
	}
	sm := &mesh.SubMesh{Vertices: verts, Faces: faces, InternalRed: make(map[int]bool)}
	for i := range sm.Vertices {
		sm.VertexMap = append(sm.VertexMap, i)
	}
	return sm, mesh.BuildSubMesh(sm)
}

func TestCutCylinder_RaisesEulerToDisk(t *testing.T) {
	sm, adj := cylinderPatch(8, 4)
	topo := topology.Inspect(sm, adj)
	require.Equal(t, topology.Cylinder, topo.Class)

	cut, err := CutCylinder(sm, adj, topo)
	require.NoError(t, err)

	cutAdj := mesh.BuildSubMesh(cut)
	cutTopo := topology.Inspect(cut, cutAdj)
	assert.Equal(t, 1, cutTopo.Euler, "a cylinder cut along a geodesic path must raise chi to 1")
	assert.Equal(t, topology.Disk, cutTopo.Class)
}

func TestCutCylinder_NotEnoughLoops_ReturnsError(t *testing.T) {
	sm := planarGridPatch(2, -1)
	adj := mesh.BuildSubMesh(sm)
	topo := topology.Inspect(sm, adj)
	topo.BoundaryLoops = topo.BoundaryLoops[:1]

	_, err := CutCylinder(sm, adj, topo)
	assert.ErrorIs(t, err, ErrNotEnoughLoops)
}
