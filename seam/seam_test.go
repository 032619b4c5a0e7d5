package seam

import (
	"testing"

	"github.com/patterncut/unfold/internal/geom"
	"github.com/patterncut/unfold/mesh"
	"github.com/stretchr/testify/assert"
)

func redLine() *mesh.ArrayMesh {
	// A 2x2 grid of quads (8 triangles), red along the middle row.
	pos := []geom.Vec3{}
	col := []geom.Vec3{}
	for y := 0; y <= 2; y++ {
		for x := 0; x <= 2; x++ {
			pos = append(pos, geom.Vec3{X: float64(x), Y: float64(y), Z: 0})
			if y == 1 {
				col = append(col, geom.Vec3{X: 0.9, Y: 0, Z: 0})
			} else {
				col = append(col, geom.Vec3{X: 0, Y: 0.9, Z: 0})
			}
		}
	}
	idx := func(x, y int) int { return y*3 + x }
	var faces [][3]int
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			a, b, c, d := idx(x, y), idx(x+1, y), idx(x, y+1), idx(x+1, y+1)
			faces = append(faces, [3]int{a, b, c})
			faces = append(faces, [3]int{b, d, c})
		}
	}
	return &mesh.ArrayMesh{Positions: pos, Colors: col, Faces: faces}
}

func TestExtract_DetectsRedAndBarriers(t *testing.T) {
	m := redLine()
	res := Extract(m, DefaultConfig())

	assert.Len(t, res.Red, 3, "middle row has 3 red vertices")
	assert.NotEmpty(t, res.Barriers)
	for k := range res.Barriers {
		assert.Contains(t, res.Red, k.A)
		assert.Contains(t, res.Red, k.B)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	m := redLine()
	a := Extract(m, DefaultConfig())
	b := Extract(m, DefaultConfig())
	assert.Equal(t, a.Red, b.Red)
	assert.Equal(t, a.Barriers, b.Barriers)
}

func TestExtract_NoRed(t *testing.T) {
	m := &mesh.ArrayMesh{
		Positions: []geom.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Colors:    []geom.Vec3{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}},
		Faces:     [][3]int{{0, 1, 2}},
	}
	res := Extract(m, DefaultConfig())
	assert.Empty(t, res.Red)
	assert.Empty(t, res.Barriers)
}

func TestDBSCAN_ClustersBySizeDescending(t *testing.T) {
	// Two separated clusters of red points far apart relative to eps.
	pos := []geom.Vec3{
		{0, 0, 0}, {0.01, 0, 0}, {0, 0.01, 0},
		{100, 100, 100}, {100.01, 100, 100},
	}
	col := make([]geom.Vec3, len(pos))
	for i := range col {
		col[i] = geom.Vec3{X: 0.9, Y: 0, Z: 0}
	}
	m := &mesh.ArrayMesh{Positions: pos, Colors: col}
	res := Extract(m, DefaultConfig())
	if assert.Len(t, res.Clusters, 2) {
		assert.GreaterOrEqual(t, len(res.Clusters[0]), len(res.Clusters[1]))
	}
}
