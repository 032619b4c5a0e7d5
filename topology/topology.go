// Package topology implements Euler characteristic, boundary loops,
// and disk/cylinder/sphere/complex classification.
package topology

import (
	"sort"

	"github.com/patterncut/unfold/mesh"
)

// Class is the topological classification the orchestrator routes on.
type Class int

const (
	Disk Class = iota
	Cylinder
	Sphere
	Complex
)

func (c Class) String() string {
	switch c {
	case Disk:
		return "disk"
	case Cylinder:
		return "cylinder"
	case Sphere:
		return "sphere"
	default:
		return "complex"
	}
}

// Topology is the result of inspecting a patch.
type Topology struct {
	V, E, F       int
	Euler         int
	BoundaryLoops [][]int // each loop is an ordered cycle of vertex indices
	Class         Class
}

// Inspect computes a patch's topological invariants and classifies it
// per this table:
//
//	χ=1, >=1 loop   -> disk      (unfold directly)
//	χ=0, >=2 loops  -> cylinder  (needs a geodesic cut)
//	χ=2, 0 loops    -> sphere    (needs a red line)
//	otherwise       -> complex   (attempt unfold anyway)
func Inspect(sm *mesh.SubMesh, adj *mesh.Adjacency) Topology {
	v := sm.VertexCount()
	f := sm.FaceCount()
	e := len(adj.EdgeFaces)
	euler := v - e + f

	loops := boundaryLoops(adj)

	class := Complex
	switch {
	case euler == 1 && len(loops) >= 1:
		class = Disk
	case euler == 0 && len(loops) >= 2:
		class = Cylinder
	case euler == 2 && len(loops) == 0:
		class = Sphere
	}

	return Topology{V: v, E: e, F: f, Euler: euler, BoundaryLoops: loops, Class: class}
}

// boundaryLoops walks the boundary-edge subgraph into connected cycles.
// Map iteration order is randomized per run, so both the edge keys and
// each vertex's neighbor list are sorted before tracing: otherwise the
// loop order and each loop's starting vertex would vary run to run,
// which downstream consumers (the cylinder cut, patch diagnostics)
// depend on being stable.
func boundaryLoops(adj *mesh.Adjacency) [][]int {
	keys := make([]mesh.EdgeKey, 0, len(adj.BoundaryEdges))
	for key := range adj.BoundaryEdges {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].A != keys[j].A {
			return keys[i].A < keys[j].A
		}
		return keys[i].B < keys[j].B
	})

	nextOf := make(map[int][]int)
	for _, key := range keys {
		nextOf[key.A] = append(nextOf[key.A], key.B)
		nextOf[key.B] = append(nextOf[key.B], key.A)
	}
	for v := range nextOf {
		sort.Ints(nextOf[v])
	}

	visitedEdge := make(map[mesh.EdgeKey]bool)
	var loops [][]int

	for _, key := range keys {
		if visitedEdge[key] {
			continue
		}
		loop := traceLoop(key.A, nextOf, visitedEdge)
		if len(loop) > 0 {
			loops = append(loops, loop)
		}
	}
	return loops
}

// traceLoop walks the boundary graph starting at start, consuming edges
// until it returns to start or runs out of unvisited edges. Boundary
// vertices in a manifold patch have exactly two boundary neighbors, so
// this produces a simple cycle.
func traceLoop(start int, nextOf map[int][]int, visitedEdge map[mesh.EdgeKey]bool) []int {
	loop := []int{start}
	cur := start
	for {
		var advanced bool
		for _, nb := range nextOf[cur] {
			key := mesh.MakeEdgeKey(cur, nb)
			if visitedEdge[key] {
				continue
			}
			visitedEdge[key] = true
			cur = nb
			advanced = true
			break
		}
		if !advanced {
			break
		}
		if cur == start {
			break
		}
		loop = append(loop, cur)
	}
	return loop
}
