package topology

import (
	"testing"

	"github.com/patterncut/unfold/internal/geom"
	"github.com/patterncut/unfold/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planarGrid(n int) *mesh.SubMesh {
	var verts []geom.Vec3
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			verts = append(verts, geom.Vec3{X: float64(x), Y: float64(y)})
		}
	}
	idx := func(x, y int) int { return y*(n+1) + x }
	var faces [][3]int
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			a, b, c, d := idx(x, y), idx(x+1, y), idx(x, y+1), idx(x+1, y+1)
			faces = append(faces, [3]int{a, b, c})
			faces = append(faces, [3]int{b, d, c})
		}
	}
	return &mesh.SubMesh{Vertices: verts, Faces: faces}
}

func TestInspect_PlanarGridIsDisk(t *testing.T) {
	sm := planarGrid(3)
	adj := mesh.BuildSubMesh(sm)
	topo := Inspect(sm, adj)

	assert.Equal(t, 1, topo.Euler)
	assert.Equal(t, Disk, topo.Class)
	require.Len(t, topo.BoundaryLoops, 1)
	assert.Equal(t, 4*3, len(topo.BoundaryLoops[0]), "perimeter of a 3x3 grid has 12 boundary vertices")
}

func cylinderRing(segments, rings int) *mesh.SubMesh {
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
	return &mesh.SubMesh{Vertices: verts, Faces: faces}
}

func TestInspect_OpenCylinder(t *testing.T) {
	sm := cylinderRing(8, 4)
	adj := mesh.BuildSubMesh(sm)
	topo := Inspect(sm, adj)

	assert.Equal(t, 0, topo.Euler)
	assert.Equal(t, Cylinder, topo.Class)
	assert.Len(t, topo.BoundaryLoops, 2)
}
