package unfold

import (
	"math"

	"github.com/patterncut/unfold/internal/geom"
	"github.com/patterncut/unfold/mesh"
)

// bfsFan is a last-resort embedding that places faces one at a time by
// BFS over the face graph, each new vertex positioned by two-circle
// intersection against its two already-placed anchors.
func bfsFan(sm *mesh.SubMesh, adj *mesh.Adjacency) ([]geom.Vec2, error) {
	n := sm.VertexCount()
	if n < 3 {
		return fallbackPositions(n), nil
	}
	if sm.FaceCount() == 0 {
		return fallbackPositions(n), nil
	}

	seed := seedFace(sm)
	uv := make([]geom.Vec2, n)
	placed := make([]bool, n)

	tri := sm.Faces[seed]
	placeSeedTriangle(sm, tri, uv, placed)

	faceVisited := make([]bool, sm.FaceCount())
	faceVisited[seed] = true
	queue := []int{seed}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range adj.FaceNeighbors[cur] {
			if faceVisited[nb] {
				continue
			}
			faceVisited[nb] = true
			placeFace(sm, nb, uv, placed)
			queue = append(queue, nb)
		}
	}

	fillUnplaced(sm, adj, uv, placed)
	return uv, nil
}

// seedFace returns the face whose centroid is closest to the patch's
// overall centroid.
func seedFace(sm *mesh.SubMesh) int {
	c := geom.Centroid3(sm.Vertices)
	best, bestD := 0, math.Inf(1)
	for fi, tri := range sm.Faces {
		fc := sm.Vertices[tri[0]].Add(sm.Vertices[tri[1]]).Add(sm.Vertices[tri[2]]).Scale(1.0 / 3)
		d := fc.DistanceTo(c)
		if d < bestD {
			bestD, best = d, fi
		}
	}
	return best
}

// placeSeedTriangle places the seed face with one vertex at the
// origin, one on the +u axis, and the third via the law of cosines in
// the upper half-plane.
func placeSeedTriangle(sm *mesh.SubMesh, tri [3]int, uv []geom.Vec2, placed []bool) {
	p0, p1, p2 := sm.Vertices[tri[0]], sm.Vertices[tri[1]], sm.Vertices[tri[2]]
	a := p0.DistanceTo(p1) // edge 0-1
	b := p0.DistanceTo(p2) // edge 0-2

	uv[tri[0]] = geom.Vec2{X: 0, Y: 0}
	uv[tri[1]] = geom.Vec2{X: a, Y: 0}

	var cosTheta float64
	if a > 1e-12 && b > 1e-12 {
		cosTheta = p1.Sub(p0).Normalize().Dot(p2.Sub(p0).Normalize())
	}
	cosTheta = clamp(cosTheta, -1, 1)
	theta := math.Acos(cosTheta)
	uv[tri[2]] = geom.Vec2{X: b * math.Cos(theta), Y: b * math.Sin(theta)}

	placed[tri[0]], placed[tri[1]], placed[tri[2]] = true, true, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// placeFace places the one unplaced vertex of a face already sharing
// an edge with placed vertices, via two-circle intersection.
func placeFace(sm *mesh.SubMesh, fi int, uv []geom.Vec2, placed []bool) {
	tri := sm.Faces[fi]
	var unknown = -1
	var anchors []int
	for _, v := range tri {
		if placed[v] {
			anchors = append(anchors, v)
		} else {
			unknown = v
		}
	}
	if unknown == -1 {
		return // all three already placed
	}
	if len(anchors) < 2 {
		return // left to a later face or to fillUnplaced; this face is not retried
	}

	p1v, p2v := anchors[0], anchors[1]
	r1 := sm.Vertices[p1v].DistanceTo(sm.Vertices[unknown])
	r2 := sm.Vertices[p2v].DistanceTo(sm.Vertices[unknown])
	p1, p2 := uv[p1v], uv[p2v]
	d := p1.DistanceTo(p2)
	if d < 1e-12 {
		uv[unknown] = p1
		placed[unknown] = true
		return
	}

	a := (r1*r1 - r2*r2 + d*d) / (2 * d)
	h := math.Sqrt(math.Max(0, r1*r1-a*a))

	dir := p2.Sub(p1).Scale(1 / d)
	perp := geom.Vec2{X: -dir.Y, Y: dir.X}
	mid := p1.Add(dir.Scale(a))

	candA := mid.Add(perp.Scale(h))
	candB := mid.Sub(perp.Scale(h))

	// Choose whichever candidate preserves the seed triangle's winding
	// (CCW) for this face's vertex order.
	third := chooseWinding(sm, tri, unknown, p1v, p2v, uv, candA, candB)
	uv[unknown] = third
	placed[unknown] = true
}

func chooseWinding(sm *mesh.SubMesh, tri [3]int, unknown, a, b int, uv []geom.Vec2, candA, candB geom.Vec2) geom.Vec2 {
	// Build the face's vertex->2D mapping with candA, test signed area.
	pos := func(v int) geom.Vec2 {
		if v == unknown {
			return candA
		}
		return uv[v]
	}
	area := geom.TriArea2(pos(tri[0]), pos(tri[1]), pos(tri[2]))
	if area >= 0 {
		return candA
	}
	return candB
}

// fillUnplaced assigns any vertex BFS never reached (disconnected from
// the seed in the face graph, e.g. a patch with multiple components)
// the mean of its placed neighbors, or a planar projection otherwise.
func fillUnplaced(sm *mesh.SubMesh, adj *mesh.Adjacency, uv []geom.Vec2, placed []bool) {
	var fallback []geom.Vec2
	for v := 0; v < len(uv); v++ {
		if placed[v] {
			continue
		}
		var sum geom.Vec2
		count := 0
		for _, nb := range adj.VertexNeighbors[v] {
			if placed[nb] {
				sum = sum.Add(uv[nb])
				count++
			}
		}
		if count > 0 {
			uv[v] = sum.Scale(1 / float64(count))
			placed[v] = true
			continue
		}
		if fallback == nil {
			var err error
			fallback, err = planarProjection(sm)
			if err != nil {
				fallback = fallbackPositions(len(uv))
			}
		}
		uv[v] = fallback[v]
		placed[v] = true
	}
}
