package mesh

import (
	"math"

	"github.com/patterncut/unfold/internal/geom"
)

// weldBucketCount must be a power of two; a single generous bucket
// count serves every garment-scale mesh this pipeline targets rather
// than sizing the hash table per-mesh.
const weldBucketCount = 1 << 16

func weldHash(x, y, z int) int {
	h1, h2, h3 := 0x8da6b343, 0xd8163841, 0xcb1ab31f
	n := h1*x + h2*y + h3*z
	return n & (weldBucketCount - 1)
}

func floorDiv(v, cell float64) int {
	q := v / cell
	if q >= 0 {
		return int(q)
	}
	return int(q) - 1
}

// welder is a spatial-hash vertex deduplicator: cell size 10x the weld
// threshold, probing every cell the tolerance box around a point
// overlaps, and merging into the nearest vertex within tolerance.
type welder struct {
	threshold float64
	cellSize  float64
	positions []geom.Vec3
	colors    []geom.Vec3
	hasColor  bool
	first     []int
	next      []int
}

func newWelder(threshold float64, hasColor bool) *welder {
	w := &welder{
		threshold: threshold,
		cellSize:  threshold * 10,
		hasColor:  hasColor,
		first:     make([]int, weldBucketCount),
	}
	for i := range w.first {
		w.first[i] = -1
	}
	return w
}

func (w *welder) push(p geom.Vec3, c geom.Vec3) int {
	x := floorDiv(p.X, w.cellSize)
	y := floorDiv(p.Y, w.cellSize)
	z := floorDiv(p.Z, w.cellSize)
	h := weldHash(x, y, z)

	w.positions = append(w.positions, p)
	if w.hasColor {
		w.colors = append(w.colors, c)
	}
	w.next = append(w.next, -1)
	idx := len(w.positions) - 1
	w.next[idx] = w.first[h]
	w.first[h] = idx
	return idx
}

// addUnique returns the index of an existing vertex within threshold of
// p, merging colors by max-red representative, or inserts p as a
// new vertex.
func (w *welder) addUnique(p geom.Vec3, c geom.Vec3) int {
	minX := floorDiv(p.X-w.threshold, w.cellSize)
	maxX := floorDiv(p.X+w.threshold, w.cellSize)
	minY := floorDiv(p.Y-w.threshold, w.cellSize)
	maxY := floorDiv(p.Y+w.threshold, w.cellSize)
	minZ := floorDiv(p.Z-w.threshold, w.cellSize)
	maxZ := floorDiv(p.Z+w.threshold, w.cellSize)

	bestIdx := -1
	bestDistSq := w.threshold * w.threshold

	for z := minZ; z <= maxZ; z++ {
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				h := weldHash(x, y, z)
				for i := w.first[h]; i != -1; i = w.next[i] {
					d := w.positions[i].Sub(p).LengthSq()
					if d < bestDistSq {
						bestDistSq = d
						bestIdx = i
					}
				}
			}
		}
	}

	if bestIdx != -1 {
		if w.hasColor && c.X > w.colors[bestIdx].X {
			w.colors[bestIdx] = c
		}
		return bestIdx
	}
	return w.push(p, c)
}

// Weld spatially merges vertices within tolerance and drops any face
// whose remapped indices are not pairwise distinct. Colors, if
// present, are merged by taking the max-red representative so a seam
// marker painted on only one of several coincident duplicate vertices
// still survives welding. The error return always comes back nil: the
// welder has no failure mode over a well-formed Mesh.
func Weld(m Mesh, tolerance float64) (*ArrayMesh, []int, error) {
	n := m.VertexCount()
	_, hasColor := (func() (geom.Vec3, bool) {
		if n == 0 {
			return geom.Vec3{}, false
		}
		return m.Color(0)
	})()

	w := newWelder(math.Max(tolerance, 1e-12), hasColor)
	remap := make([]int, n)
	for i := 0; i < n; i++ {
		c, _ := m.Color(i)
		remap[i] = w.addUnique(m.Position(i), c)
	}

	out := &ArrayMesh{Positions: w.positions}
	if hasColor {
		out.Colors = w.colors
	}

	for f := 0; f < m.FaceCount(); f++ {
		tri := m.Face(f)
		a, b, c := remap[tri[0]], remap[tri[1]], remap[tri[2]]
		if a == b || b == c || a == c {
			continue
		}
		out.Faces = append(out.Faces, [3]int{a, b, c})
	}

	return out, remap, nil
}
