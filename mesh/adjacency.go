package mesh

// Adjacency is the derived, ephemeral half-edge-style index: built on
// entry to a stage, discarded on exit, never stored durably.
//
// Non-manifold edges (more than two incident faces) collapse to "treat
// as boundary" on every side — this index never errors on bad topology.
type Adjacency struct {
	// EdgeFaces maps each undirected edge to the faces touching it (1 or
	// more; manifold meshes have exactly 1 or 2).
	EdgeFaces map[EdgeKey][]int
	// FaceNeighbors[f] lists the distinct faces sharing an edge with f.
	FaceNeighbors [][]int
	// VertexFaces[v] lists the faces incident to vertex v.
	VertexFaces [][]int
	// VertexNeighbors[v] lists the vertices sharing an edge with v.
	VertexNeighbors [][]int
	// BoundaryEdges holds every edge with exactly one incident face.
	BoundaryEdges map[EdgeKey]bool
	// BoundaryVertices holds every vertex touching a boundary edge.
	BoundaryVertices map[int]bool
}

// Build indexes the given faces/vertex count. It takes raw accessors
// rather than a Mesh interface so it works for both Mesh and SubMesh
// without an adapter type.
func Build(faceCount int, face func(i int) [3]int, vertexCount int) *Adjacency {
	adj := &Adjacency{
		EdgeFaces:        make(map[EdgeKey][]int),
		FaceNeighbors:    make([][]int, faceCount),
		VertexFaces:      make([][]int, vertexCount),
		VertexNeighbors:  make([][]int, vertexCount),
		BoundaryEdges:    make(map[EdgeKey]bool),
		BoundaryVertices: make(map[int]bool),
	}

	neighborSeen := make([]map[int]bool, faceCount)
	vertexNeighborSeen := make([]map[int]bool, vertexCount)

	for f := 0; f < faceCount; f++ {
		tri := face(f)
		for i := 0; i < 3; i++ {
			u, v := tri[i], tri[(i+1)%3]
			adj.VertexFaces[u] = append(adj.VertexFaces[u], f)
			key := MakeEdgeKey(u, v)
			adj.EdgeFaces[key] = append(adj.EdgeFaces[key], f)

			if vertexNeighborSeen[u] == nil {
				vertexNeighborSeen[u] = make(map[int]bool)
			}
			if vertexNeighborSeen[v] == nil {
				vertexNeighborSeen[v] = make(map[int]bool)
			}
			if !vertexNeighborSeen[u][v] {
				vertexNeighborSeen[u][v] = true
				adj.VertexNeighbors[u] = append(adj.VertexNeighbors[u], v)
			}
			if !vertexNeighborSeen[v][u] {
				vertexNeighborSeen[v][u] = true
				adj.VertexNeighbors[v] = append(adj.VertexNeighbors[v], u)
			}
		}
	}

	for key, faces := range adj.EdgeFaces {
		if len(faces) == 1 {
			adj.BoundaryEdges[key] = true
			adj.BoundaryVertices[key.A] = true
			adj.BoundaryVertices[key.B] = true
			continue
		}
		if len(faces) >= 3 {
			// Non-manifold: every incident face treats this edge as its
			// own boundary rather than picking a pair.
			adj.BoundaryEdges[key] = true
			adj.BoundaryVertices[key.A] = true
			adj.BoundaryVertices[key.B] = true
			continue
		}
		for _, f0 := range faces {
			if neighborSeen[f0] == nil {
				neighborSeen[f0] = make(map[int]bool)
			}
			for _, f1 := range faces {
				if f0 == f1 || neighborSeen[f0][f1] {
					continue
				}
				neighborSeen[f0][f1] = true
				adj.FaceNeighbors[f0] = append(adj.FaceNeighbors[f0], f1)
			}
		}
	}

	return adj
}

// BuildMesh indexes a Mesh.
func BuildMesh(m Mesh) *Adjacency {
	return Build(m.FaceCount(), m.Face, m.VertexCount())
}

// BuildSubMesh indexes a SubMesh.
func BuildSubMesh(s *SubMesh) *Adjacency {
	return Build(s.FaceCount(), func(i int) [3]int { return s.Faces[i] }, s.VertexCount())
}
