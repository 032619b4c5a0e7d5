// Package seam implements red-vertex detection, adaptive DBSCAN
// clustering for diagnostics, and extraction of the barrier edge set the
// flood segmenter treats as impassable.
package seam

import (
	"github.com/patterncut/unfold/internal/geom"
	"github.com/patterncut/unfold/mesh"
)

// RedThreshold is the default color predicate: r >= 0.7, g <= 0.4,
// b <= 0.4.
func RedThreshold(c geom.Vec3) bool {
	return c.X >= 0.7 && c.Y <= 0.4 && c.Z <= 0.4
}

// Config holds the tunables relevant to seam extraction.
type Config struct {
	IsRed              func(c geom.Vec3) bool
	ClusterEpsFraction float64
	ClusterEpsMin      float64
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		IsRed:              RedThreshold,
		ClusterEpsFraction: 0.05,
		ClusterEpsMin:      0,
	}
}

// Result carries everything the orchestrator and host UI need from seam
// extraction.
type Result struct {
	// Red lists the indices of every red vertex.
	Red []int
	// Barriers is the edge set downstream stages actually consume.
	Barriers map[mesh.EdgeKey]bool
	// Clusters lists DBSCAN clusters of size >= 2, size-descending, for
	// visualization only — not consumed downstream.
	Clusters [][]int
}

// Extract runs seam detection on a welded mesh: red-vertex
// detection, adaptive DBSCAN clustering for diagnostics, and the barrier
// edge set built directly from mesh faces (every edge with both
// endpoints red).
func Extract(m mesh.Mesh, cfg Config) *Result {
	if cfg.IsRed == nil {
		cfg.IsRed = RedThreshold
	}

	red := detectRed(m, cfg.IsRed)
	redSet := make(map[int]bool, len(red))
	for _, v := range red {
		redSet[v] = true
	}

	eps := adaptiveEps(m, cfg)
	clusters := dbscan(m, red, eps)

	barriers := make(map[mesh.EdgeKey]bool)
	for f := 0; f < m.FaceCount(); f++ {
		tri := m.Face(f)
		for i := 0; i < 3; i++ {
			u, v := tri[i], tri[(i+1)%3]
			if redSet[u] && redSet[v] {
				barriers[mesh.MakeEdgeKey(u, v)] = true
			}
		}
	}
	return &Result{Red: red, Barriers: barriers, Clusters: clusters}
}

func detectRed(m mesh.Mesh, isRed func(geom.Vec3) bool) []int {
	var red []int
	for i := 0; i < m.VertexCount(); i++ {
		c, ok := m.Color(i)
		if ok && isRed(c) {
			red = append(red, i)
		}
	}
	return red
}

// adaptiveEps computes the cluster radius eps = max(user-eps, 0.05*diameter)
// from the mesh's bounding-box diagonal.
func adaptiveEps(m mesh.Mesh, cfg Config) float64 {
	box := geom.EmptyBox3()
	for i := 0; i < m.VertexCount(); i++ {
		box.Encapsulate(m.Position(i))
	}
	diag := box.Diagonal()
	eps := cfg.ClusterEpsFraction * diag
	if cfg.ClusterEpsMin > eps {
		eps = cfg.ClusterEpsMin
	}
	return eps
}

// dbscan clusters the red vertex set by simple density connectivity: an
// un-visited red vertex transitively absorbs every red vertex within
// eps. Only clusters of size >= 2 are kept, and the result is sorted by
// descending size.
//
// A brute-force O(n^2) neighbor search is used deliberately: red vertex
// sets in garment meshes number in the hundreds at most, the same scale
// the pack's own border-extraction code (nat-n/shapeset) favors plain
// nested loops over building a spatial index for.
func dbscan(m mesh.Mesh, red []int, eps float64) [][]int {
	epsSq := eps * eps
	visited := make(map[int]bool, len(red))
	var clusters [][]int

	for _, seed := range red {
		if visited[seed] {
			continue
		}
		visited[seed] = true
		cluster := []int{seed}
		queue := []int{seed}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			p := m.Position(cur)
			for _, cand := range red {
				if visited[cand] {
					continue
				}
				if p.Sub(m.Position(cand)).LengthSq() <= epsSq {
					visited[cand] = true
					cluster = append(cluster, cand)
					queue = append(queue, cand)
				}
			}
		}
		if len(cluster) >= 2 {
			clusters = append(clusters, cluster)
		}
	}

	for i := 1; i < len(clusters); i++ {
		j := i
		for j > 0 && len(clusters[j-1]) < len(clusters[j]) {
			clusters[j-1], clusters[j] = clusters[j], clusters[j-1]
			j--
		}
	}
	return clusters
}
