// Package surgery implements vertex splitting along internal seam
// edges, and the shortest-geodesic cylinder cut that reduces a χ=0
// patch to a disk.
package surgery

import (
	"github.com/patterncut/unfold/mesh"
)

// HasInternalSeam reports whether a patch should undergo internal-seam
// surgery: at least 2 internal red vertices with at least one internal
// seam edge between them.
func HasInternalSeam(sm *mesh.SubMesh, adj *mesh.Adjacency) bool {
	if len(sm.InternalRed) < 2 {
		return false
	}
	for key := range adj.EdgeFaces {
		if sm.InternalRed[key.A] && sm.InternalRed[key.B] {
			return true
		}
	}
	return false
}

// CutInternalSeams splits the patch along every internal seam edge:
// faces are grouped by flood-fill without crossing seam edges, then
// every vertex touching a seam edge gets one duplicate per group that
// references it (the first group keeps the original index). Duplicates
// share 3D coordinates but hold their own local index, allocating a
// fresh vertex index per fragment rather than aliasing pointers.
func CutInternalSeams(sm *mesh.SubMesh, adj *mesh.Adjacency) *mesh.SubMesh {
	seamEdges := make(map[mesh.EdgeKey]bool)
	for key := range adj.EdgeFaces {
		if sm.InternalRed[key.A] && sm.InternalRed[key.B] {
			seamEdges[key] = true
		}
	}
	if len(seamEdges) == 0 {
		return sm
	}

	return splitAlongEdges(sm, adj, seamEdges)
}

// splitAlongEdges performs separating-seam surgery: it groups faces by
// flood-fill without crossing any edge in cutEdges. This is correct
// when cutEdges encloses a region (the flood genuinely can't reach the
// other side any other way) but not for a single open path across a
// tube, where the flood reaches the far side by going around the back
// and collapses everything into one group. Use splitAlongPath for that
// case.
func splitAlongEdges(sm *mesh.SubMesh, adj *mesh.Adjacency, cutEdges map[mesh.EdgeKey]bool) *mesh.SubMesh {
	return applySplit(sm, cutEdges, labelFacesAcrossSeams(sm, adj, cutEdges))
}

// splitAlongPath performs non-separating-path surgery: it 2-colors the
// face graph by parity of crossings of cutEdges, rather than refusing
// to cross them. A path that runs between two distinct boundary loops
// is a relative cycle generator, so every other cycle in the face
// graph crosses it an even number of times — the parity coloring is
// well defined regardless of which route a traversal takes, and unzips
// the path into two sides even though the faces on either side remain
// connected around the back of the tube.
func splitAlongPath(sm *mesh.SubMesh, adj *mesh.Adjacency, cutEdges map[mesh.EdgeKey]bool) *mesh.SubMesh {
	return applySplit(sm, cutEdges, labelFacesByParity(sm, adj, cutEdges))
}

// applySplit gives every vertex touching a cut edge one duplicate per
// face group that references it (the first group encountered keeps the
// original index). Duplicates share 3D coordinates but hold their own
// local index, allocating a fresh vertex index per fragment rather
// than aliasing pointers.
func applySplit(sm *mesh.SubMesh, cutEdges map[mesh.EdgeKey]bool, faceGroup []int) *mesh.SubMesh {
	cutVertex := make(map[int]bool)
	for key := range cutEdges {
		cutVertex[key.A] = true
		cutVertex[key.B] = true
	}

	// dup[v][group] -> local index to use for vertex v within group.
	dup := make(map[int]map[int]int)
	firstGroupFor := make(map[int]int)

	out := &mesh.SubMesh{InternalRed: make(map[int]bool)}
	out.Vertices = append(out.Vertices, sm.Vertices...)
	out.VertexMap = append(out.VertexMap, sm.VertexMap...)
	if sm.Colors != nil {
		out.Colors = append(out.Colors, sm.Colors...)
	}
	for v := range sm.InternalRed {
		out.InternalRed[v] = true
	}

	resolve := func(v, group int) int {
		if !cutVertex[v] {
			return v
		}
		if fg, ok := firstGroupFor[v]; ok && fg == group {
			return v
		}
		if _, ok := firstGroupFor[v]; !ok {
			firstGroupFor[v] = group
			return v
		}
		if dup[v] == nil {
			dup[v] = make(map[int]int)
		}
		if li, ok := dup[v][group]; ok {
			return li
		}
		li := len(out.Vertices)
		out.Vertices = append(out.Vertices, sm.Vertices[v])
		out.VertexMap = append(out.VertexMap, sm.VertexMap[v])
		if sm.Colors != nil {
			out.Colors = append(out.Colors, sm.Colors[v])
		}
		if sm.InternalRed[v] {
			out.InternalRed[li] = true
		}
		dup[v][group] = li
		return li
	}

	for fi, tri := range sm.Faces {
		g := faceGroup[fi]
		out.Faces = append(out.Faces, [3]int{
			resolve(tri[0], g),
			resolve(tri[1], g),
			resolve(tri[2], g),
		})
		if sm.GlobalFaces != nil {
			out.GlobalFaces = append(out.GlobalFaces, sm.GlobalFaces[fi])
		}
	}

	return out
}

// labelFacesAcrossSeams flood-fills the face graph without crossing any
// edge in seamEdges, producing one label per face.
func labelFacesAcrossSeams(sm *mesh.SubMesh, adj *mesh.Adjacency, seamEdges map[mesh.EdgeKey]bool) []int {
	label := make([]int, sm.FaceCount())
	for i := range label {
		label[i] = -1
	}
	group := 0
	for start := 0; start < sm.FaceCount(); start++ {
		if label[start] != -1 {
			continue
		}
		queue := []int{start}
		label[start] = group
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range adj.FaceNeighbors[cur] {
				if label[nb] != -1 {
					continue
				}
				if sharedEdgeCrossesSeam(sm, cur, nb, seamEdges) {
					continue
				}
				label[nb] = group
				queue = append(queue, nb)
			}
		}
		group++
	}
	return label
}

// labelFacesByParity flood-fills the face graph freely, crossing every
// edge, but flips a binary side label each time the traversal crosses
// an edge in cutEdges. Each connected component of the face graph gets
// its own pair of labels (base, base+1) so components untouched by the
// cut collapse back to a single uniform label.
func labelFacesByParity(sm *mesh.SubMesh, adj *mesh.Adjacency, cutEdges map[mesh.EdgeKey]bool) []int {
	label := make([]int, sm.FaceCount())
	for i := range label {
		label[i] = -1
	}
	nextGroup := 0
	for start := 0; start < sm.FaceCount(); start++ {
		if label[start] != -1 {
			continue
		}
		base := nextGroup
		nextGroup += 2
		label[start] = base
		queue := []int{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range adj.FaceNeighbors[cur] {
				if label[nb] != -1 {
					continue
				}
				side := label[cur] - base
				if sharedEdgeCrossesSeam(sm, cur, nb, cutEdges) {
					side = 1 - side
				}
				label[nb] = base + side
				queue = append(queue, nb)
			}
		}
	}
	return label
}

func sharedEdgeCrossesSeam(sm *mesh.SubMesh, f1, f2 int, seamEdges map[mesh.EdgeKey]bool) bool {
	t1 := sm.Faces[f1]
	t2 := sm.Faces[f2]
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
	return seamEdges[mesh.MakeEdgeKey(shared[0], shared[1])]
}
