// Package mesh holds the core data model and the mesh-conditioning
// stages — adjacency indexing, vertex welding, and connected-component
// filtering — that every later pipeline stage builds on.
package mesh

import "github.com/patterncut/unfold/internal/geom"

// Mesh is the read-only producer contract: any host mesh that can
// answer these five questions can be fed into the pipeline without the
// core ever knowing how it was loaded.
type Mesh interface {
	VertexCount() int
	Position(i int) geom.Vec3
	// Color returns the vertex color and whether the mesh carries color
	// data at all; ok is false for every vertex of an uncolored mesh.
	Color(i int) (c geom.Vec3, ok bool)
	FaceCount() int
	Face(i int) [3]int
}

// ArrayMesh is the in-memory Mesh implementation used internally by the
// pipeline (welder output, patch construction) and by callers building a
// mesh by hand: flat position/color/face slices with exported fields.
type ArrayMesh struct {
	Positions []geom.Vec3
	Colors    []geom.Vec3 // nil if the mesh carries no color
	Faces     [][3]int
}

func (m *ArrayMesh) VertexCount() int { return len(m.Positions) }
func (m *ArrayMesh) Position(i int) geom.Vec3 { return m.Positions[i] }

func (m *ArrayMesh) Color(i int) (geom.Vec3, bool) {
	if m.Colors == nil {
		return geom.Vec3{}, false
	}
	return m.Colors[i], true
}

func (m *ArrayMesh) FaceCount() int     { return len(m.Faces) }
func (m *ArrayMesh) Face(i int) [3]int  { return m.Faces[i] }

// EdgeKey is the canonical unordered-edge representation: the
// ordered pair (min(u,v), max(u,v)).
type EdgeKey struct{ A, B int }

// MakeEdgeKey builds the canonical key for an edge between u and v.
func MakeEdgeKey(u, v int) EdgeKey {
	if u < v {
		return EdgeKey{u, v}
	}
	return EdgeKey{v, u}
}

// SubMesh is a single pattern patch: a self-contained mesh with a map
// back to the global mesh it was cut from.
type SubMesh struct {
	// Vertices holds the patch's local vertex positions.
	Vertices []geom.Vec3
	// Colors mirrors Vertices when the source mesh carried color.
	Colors []geom.Vec3
	// Faces indexes into Vertices.
	Faces [][3]int
	// VertexMap maps a local vertex index to its origin in the global mesh.
	VertexMap []int
	// GlobalFaces lists, for each local face, the index of the original
	// mesh face it came from.
	GlobalFaces []int
	// InternalRed is the subset of local vertex indices that shared a face
	// with a red vertex before kerf removal (red vertices themselves never
	// survive the kerf); used to decide internal-seam surgery.
	InternalRed map[int]bool
	// TopologyError flags a patch the topology inspector could not
	// classify as disk/cylinder: still flattened, never dropped.
	TopologyError bool
}

func (s *SubMesh) VertexCount() int { return len(s.Vertices) }
func (s *SubMesh) FaceCount() int   { return len(s.Faces) }

// EdgeLength3D returns the 3D length of the edge between local vertices
// u and v, used as the spring rest length during relaxation.
func (s *SubMesh) EdgeLength3D(u, v int) float64 {
	return s.Vertices[u].DistanceTo(s.Vertices[v])
}
