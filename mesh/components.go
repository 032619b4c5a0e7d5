package mesh

// Components finds the connected components of the face graph induced
// by shared edges and filters out fragments below minFaces, returning
// the kept components ordered by descending face count (the ordering
// the orchestrator relies on for deterministic patch indices) and the
// number of faces dropped.
func Components(faceCount int, adj *Adjacency, minFaces int) (kept [][]int, dropped int) {
	visited := make([]bool, faceCount)
	var comps [][]int

	for start := 0; start < faceCount; start++ {
		if visited[start] {
			continue
		}
		var comp []int
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			f := queue[0]
			queue = queue[1:]
			comp = append(comp, f)
			for _, nb := range adj.FaceNeighbors[f] {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		comps = append(comps, comp)
	}

	for _, c := range comps {
		if len(c) < minFaces {
			dropped += len(c)
			continue
		}
		kept = append(kept, c)
	}

	// Stable sort by descending face count; ties keep discovery order.
	for i := 1; i < len(kept); i++ {
		j := i
		for j > 0 && len(kept[j-1]) < len(kept[j]) {
			kept[j-1], kept[j] = kept[j], kept[j-1]
			j--
		}
	}

	return kept, dropped
}

// LargestComponent builds an ArrayMesh containing only the faces of the
// largest connected component of m, remapping vertices to a dense local
// range. Exported for callers that want to discard every fragment but
// the main body in one step; the orchestrator uses RetainComponents.
func LargestComponent(m Mesh, minFaces int) *ArrayMesh {
	adj := BuildMesh(m)
	kept, _ := Components(m.FaceCount(), adj, minFaces)
	if len(kept) == 0 {
		return &ArrayMesh{}
	}
	return extractFaces(m, kept[0])
}

// RetainComponents builds an ArrayMesh containing the faces of every
// connected component of m with at least minFaces, remapping vertices
// to a dense local range. Unlike LargestComponent, it keeps every
// sufficiently large piece: a garment made of two separately-cut large
// panels (e.g. two legs) doesn't lose one to the single biggest chunk.
func RetainComponents(m Mesh, minFaces int) *ArrayMesh {
	adj := BuildMesh(m)
	kept, _ := Components(m.FaceCount(), adj, minFaces)
	if len(kept) == 0 {
		return &ArrayMesh{}
	}
	var faces []int
	for _, c := range kept {
		faces = append(faces, c...)
	}
	return extractFaces(m, faces)
}

func extractFaces(m Mesh, faces []int) *ArrayMesh {
	out := &ArrayMesh{}
	localIdx := make(map[int]int)
	hasColor := false
	if m.VertexCount() > 0 {
		_, hasColor = m.Color(0)
	}

	remap := func(v int) int {
		if li, ok := localIdx[v]; ok {
			return li
		}
		li := len(out.Positions)
		localIdx[v] = li
		out.Positions = append(out.Positions, m.Position(v))
		if hasColor {
			c, _ := m.Color(v)
			out.Colors = append(out.Colors, c)
		}
		return li
	}

	for _, f := range faces {
		tri := m.Face(f)
		out.Faces = append(out.Faces, [3]int{remap(tri[0]), remap(tri[1]), remap(tri[2])})
	}
	return out
}
