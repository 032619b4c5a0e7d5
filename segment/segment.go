// Package segment implements face-level BFS patch discovery with seam
// barriers, boundary-face adjacency voting, and kerf removal.
package segment

import (
	"sort"

	"github.com/patterncut/unfold/internal/geom"
	"github.com/patterncut/unfold/internal/logx"
	"github.com/patterncut/unfold/mesh"
)

// Flood partitions a mesh's faces into patches, honoring barrier edges
// as impassable, then removes every face touching a red vertex (the
// kerf) and drops patches below minPatchFaces.
//
// If barriers is empty, each connected component of the mesh floods
// into a single patch. If
// every patch falls below minPatchFaces after filtering, Flood returns
// an empty slice — never an error.
func Flood(m mesh.Mesh, adj *mesh.Adjacency, barriers map[mesh.EdgeKey]bool, red []int, minPatchFaces int) []*mesh.SubMesh {
	log := logx.Logger()
	faceCount := m.FaceCount()

	redSet := make(map[int]bool, len(red))
	for _, v := range red {
		redSet[v] = true
	}

	isBarrierEdge := func(f1, f2 int) bool {
		return sharedEdgeIsBarrier(m, f1, f2, barriers)
	}

	boundaryFace := make([]bool, faceCount)
	for f := 0; f < faceCount; f++ {
		for _, nb := range adj.FaceNeighbors[f] {
			if isBarrierEdge(f, nb) {
				boundaryFace[f] = true
				break
			}
		}
	}

	// Step 2: BFS flood-fill across non-barrier edges among the
	// remaining (non-boundary) faces produces the base patches.
	label := make([]int, faceCount)
	for i := range label {
		label[i] = -1
	}
	numBase := 0
	for f := 0; f < faceCount; f++ {
		if boundaryFace[f] || label[f] != -1 {
			continue
		}
		queue := []int{f}
		label[f] = numBase
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range adj.FaceNeighbors[cur] {
				if boundaryFace[nb] || label[nb] != -1 {
					continue
				}
				if isBarrierEdge(cur, nb) {
					continue
				}
				label[nb] = numBase
				queue = append(queue, nb)
			}
		}
		numBase++
	}

	// Step 3: adjacency vote reassignment for boundary faces, up to 5
	// rounds or until a fixed point.
	for round := 0; round < 5; round++ {
		changed := false
		for f := 0; f < faceCount; f++ {
			if !boundaryFace[f] || label[f] != -1 {
				continue
			}
			votes := make(map[int]int)
			for _, nb := range adj.FaceNeighbors[f] {
				if isBarrierEdge(f, nb) {
					continue
				}
				if label[nb] != -1 {
					votes[label[nb]]++
				}
			}
			best, bestVotes := -1, 0
			for lbl, v := range votes {
				if v > bestVotes || (v == bestVotes && lbl < best) {
					best, bestVotes = lbl, v
				}
			}
			if best != -1 {
				label[f] = best
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	// Any remaining unassigned boundary faces (isolated red-surrounded
	// islands with no non-barrier neighbor) form their own patch each.
	for f := 0; f < faceCount; f++ {
		if label[f] == -1 {
			label[f] = numBase
			numBase++
		}
	}

	groups := make(map[int][]int, numBase)
	for f := 0; f < faceCount; f++ {
		groups[label[f]] = append(groups[label[f]], f)
	}

	var patches []*mesh.SubMesh
	for _, faces := range groups {
		// Step 5: kerf — drop every face touching a red vertex.
		var kept []int
		for _, f := range faces {
			tri := m.Face(f)
			if redSet[tri[0]] || redSet[tri[1]] || redSet[tri[2]] {
				continue
			}
			kept = append(kept, f)
		}
		if len(kept) < minPatchFaces {
			continue
		}
		patches = append(patches, buildPatch(m, faces, kept, redSet))
	}

	// Deterministic, descending by face count.
	sort.SliceStable(patches, func(i, j int) bool {
		return len(patches[i].Faces) > len(patches[j].Faces)
	})

	log.Debug("flood segmentation complete", "patches", len(patches), "base_regions", numBase)
	return patches
}

func sharedEdgeIsBarrier(m mesh.Mesh, f1, f2 int, barriers map[mesh.EdgeKey]bool) bool {
	t1 := m.Face(f1)
	t2 := m.Face(f2)
	set2 := map[int]bool{t2[0]: true, t2[1]: true, t2[2]: true}
	var shared []int
	for _, v := range t1 {
		if set2[v] {
			shared = append(shared, v)
		}
	}
	if len(shared) != 2 {
		return false
	}
	return barriers[mesh.MakeEdgeKey(shared[0], shared[1])]
}

// buildPatch builds the kerfed patch mesh from kept (post-kerf, always
// red-free) faces, then separately records seam-vertex membership from
// allFaces, the group's pre-kerf face set: a kept vertex that shares a
// pre-kerf face with a red vertex sits where an internal seam used to
// run, and that membership is what lets a later internal-seam cut find
// the boundary the kerf cut through. It can't be read off kept alone,
// since no kept face ever has a red corner.
func buildPatch(m mesh.Mesh, allFaces, kept []int, redSet map[int]bool) *mesh.SubMesh {
	sm := &mesh.SubMesh{InternalRed: make(map[int]bool)}
	localIdx := make(map[int]int)
	_, hasColor := hasColorSafe(m)

	remap := func(v int) int {
		if li, ok := localIdx[v]; ok {
			return li
		}
		li := len(sm.Vertices)
		localIdx[v] = li
		sm.Vertices = append(sm.Vertices, m.Position(v))
		if hasColor {
			c, _ := m.Color(v)
			sm.Colors = append(sm.Colors, c)
		}
		sm.VertexMap = append(sm.VertexMap, v)
		return li
	}

	for _, f := range kept {
		tri := m.Face(f)
		a, b, c := remap(tri[0]), remap(tri[1]), remap(tri[2])
		sm.Faces = append(sm.Faces, [3]int{a, b, c})
		sm.GlobalFaces = append(sm.GlobalFaces, f)
	}

	for _, f := range allFaces {
		tri := m.Face(f)
		if !redSet[tri[0]] && !redSet[tri[1]] && !redSet[tri[2]] {
			continue
		}
		for _, v := range tri {
			if redSet[v] {
				continue
			}
			if li, ok := localIdx[v]; ok {
				sm.InternalRed[li] = true
			}
		}
	}
	return sm
}

func hasColorSafe(m mesh.Mesh) (geom.Vec3, bool) {
	if m.VertexCount() == 0 {
		return geom.Vec3{}, false
	}
	return m.Color(0)
}
