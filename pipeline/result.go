package pipeline

import (
	"github.com/patterncut/unfold/internal/geom"
	"github.com/patterncut/unfold/mesh"
	"github.com/patterncut/unfold/pack"
)

// Patch is one flattened, packed output pattern piece.
type Patch struct {
	UV            []geom.Vec2
	LocalFaces    [][3]int
	GlobalFaces   []int
	VertexMap     []int
	Bounds        geom.Box2
	TopologyError bool
}

// Result is the pipeline's consumer contract.
type Result struct {
	Patches   []Patch
	Bounds    pack.Bounds
	TotalArea float64
	Seams     [][]int // echo of seam.Result.Clusters, for display
	Warnings  []string
}

// ErrEmptyMesh marks an input mesh with zero vertices or zero faces.
// It never reaches a caller of Run/RunConcurrent: empty input is not a
// failure, it returns an empty *Result with a nil error. condition
// uses this internally to short-circuit welding, component filtering,
// and seam extraction, all of which assume at least one vertex.
var ErrEmptyMesh = emptyMeshError{}

type emptyMeshError struct{}

func (emptyMeshError) Error() string { return "pipeline: empty input mesh" }

func isEmptyMesh(m mesh.Mesh) bool {
	return m.VertexCount() == 0 || m.FaceCount() == 0
}

func patchBounds(uv []geom.Vec2) geom.Box2 {
	box := geom.EmptyBox2()
	for _, p := range uv {
		box.Encapsulate(p)
	}
	return box
}
