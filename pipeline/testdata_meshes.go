package pipeline

import (
	"math"

	"github.com/patterncut/unfold/internal/geom"
	"github.com/patterncut/unfold/mesh"
)

// PlaneGrid builds an (n+1)x(n+1)-vertex planar grid of 2*n*n
// triangles in the XY plane, spanning [0,size]^2. If redRow >= 0, every
// vertex at grid row y==redRow is colored red; every other vertex gets
// a neutral green so the mesh always carries color data when a red
// row is requested.
func PlaneGrid(n int, size float64, redRow int) *mesh.ArrayMesh {
	step := size / float64(n)
	idx := func(x, y int) int { return y*(n+1) + x }

	m := &mesh.ArrayMesh{}
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			m.Positions = append(m.Positions, geom.Vec3{X: float64(x) * step, Y: float64(y) * step})
			if redRow >= 0 {
				if y == redRow {
					m.Colors = append(m.Colors, geom.Vec3{X: 0.9, Y: 0, Z: 0})
				} else {
					m.Colors = append(m.Colors, geom.Vec3{X: 0, Y: 0.9, Z: 0})
				}
			}
		}
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			a, b, c, d := idx(x, y), idx(x+1, y), idx(x, y+1), idx(x+1, y+1)
			m.Faces = append(m.Faces, [3]int{a, b, c})
			m.Faces = append(m.Faces, [3]int{b, d, c})
		}
	}
	return m
}

// OpenCylinder builds an uncapped cylinder of the given radius and
// height, segments around and rings along its axis, with no color
// data.
func OpenCylinder(segments, rings int, radius, height float64) *mesh.ArrayMesh {
	m := &mesh.ArrayMesh{}
	idx := func(s, r int) int { return r*segments + s }
	for r := 0; r < rings; r++ {
		v := float64(r) / float64(rings-1)
		for s := 0; s < segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			m.Positions = append(m.Positions, geom.Vec3{
				X: radius * math.Cos(theta),
				Y: radius * math.Sin(theta),
				Z: v * height,
			})
		}
	}
	for r := 0; r < rings-1; r++ {
		for s := 0; s < segments; s++ {
			s2 := (s + 1) % segments
			a, b, c, d := idx(s, r), idx(s2, r), idx(s, r+1), idx(s2, r+1)
			m.Faces = append(m.Faces, [3]int{a, b, d})
			m.Faces = append(m.Faces, [3]int{a, d, c})
		}
	}
	return m
}

// TaperedSleeve builds a cone-like tube (radius varies linearly from
// radiusBottom to radiusTop) with a red ring at mid-height.
func TaperedSleeve(segments, rings int, radiusBottom, radiusTop, height float64) *mesh.ArrayMesh {
	m := &mesh.ArrayMesh{}
	idx := func(s, r int) int { return r*segments + s }
	midRing := rings / 2
	for r := 0; r < rings; r++ {
		v := float64(r) / float64(rings-1)
		radius := radiusBottom + (radiusTop-radiusBottom)*v
		for s := 0; s < segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			m.Positions = append(m.Positions, geom.Vec3{
				X: radius * math.Cos(theta),
				Y: radius * math.Sin(theta),
				Z: v * height,
			})
			if r == midRing {
				m.Colors = append(m.Colors, geom.Vec3{X: 0.9, Y: 0, Z: 0})
			} else {
				m.Colors = append(m.Colors, geom.Vec3{X: 0, Y: 0.9, Z: 0})
			}
		}
	}
	for r := 0; r < rings-1; r++ {
		for s := 0; s < segments; s++ {
			s2 := (s + 1) % segments
			a, b, c, d := idx(s, r), idx(s2, r), idx(s, r+1), idx(s2, r+1)
			m.Faces = append(m.Faces, [3]int{a, b, d})
			m.Faces = append(m.Faces, [3]int{a, d, c})
		}
	}
	return m
}

// Icosphere builds a subdivided icosahedron projected onto a sphere of
// the given radius, with no color data.
func Icosphere(radius float64, subdivisions int) *mesh.ArrayMesh {
	t := (1.0 + math.Sqrt(5.0)) / 2.0
	verts := []geom.Vec3{
		{X: -1, Y: t, Z: 0}, {X: 1, Y: t, Z: 0}, {X: -1, Y: -t, Z: 0}, {X: 1, Y: -t, Z: 0},
		{X: 0, Y: -1, Z: t}, {X: 0, Y: 1, Z: t}, {X: 0, Y: -1, Z: -t}, {X: 0, Y: 1, Z: -t},
		{X: t, Y: 0, Z: -1}, {X: t, Y: 0, Z: 1}, {X: -t, Y: 0, Z: -1}, {X: -t, Y: 0, Z: 1},
	}
	for i := range verts {
		verts[i] = verts[i].Normalize()
	}
	faces := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	midpointCache := make(map[mesh.EdgeKey]int)
	midpoint := func(a, b int) int {
		key := mesh.MakeEdgeKey(a, b)
		if i, ok := midpointCache[key]; ok {
			return i
		}
		mid := verts[a].Add(verts[b]).Scale(0.5).Normalize()
		verts = append(verts, mid)
		i := len(verts) - 1
		midpointCache[key] = i
		return i
	}

	for s := 0; s < subdivisions; s++ {
		var next [][3]int
		for _, f := range faces {
			ab := midpoint(f[0], f[1])
			bc := midpoint(f[1], f[2])
			ca := midpoint(f[2], f[0])
			next = append(next,
				[3]int{f[0], ab, ca},
				[3]int{f[1], bc, ab},
				[3]int{f[2], ca, bc},
				[3]int{ab, bc, ca},
			)
		}
		faces = next
	}

	m := &mesh.ArrayMesh{Faces: faces}
	for _, v := range verts {
		m.Positions = append(m.Positions, v.Scale(radius))
	}
	return m
}

// FragmentedMesh appends a small isolated hat-brim speck next to a
// large main component.
func FragmentedMesh(main *mesh.ArrayMesh, speckFaces int, offset geom.Vec3) *mesh.ArrayMesh {
	out := &mesh.ArrayMesh{
		Positions: append([]geom.Vec3(nil), main.Positions...),
		Faces:     append([][3]int(nil), main.Faces...),
	}
	if main.Colors != nil {
		out.Colors = append([]geom.Vec3(nil), main.Colors...)
	}

	base := len(out.Positions)
	n := speckFaces/2 + 1
	step := 0.01
	idx := func(x, y int) int { return base + y*(n+1) + x }
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			out.Positions = append(out.Positions, geom.Vec3{
				X: offset.X + float64(x)*step,
				Y: offset.Y + float64(y)*step,
				Z: offset.Z,
			})
			if out.Colors != nil {
				out.Colors = append(out.Colors, geom.Vec3{X: 0, Y: 0.9, Z: 0})
			}
		}
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			a, b, c, d := idx(x, y), idx(x+1, y), idx(x, y+1), idx(x+1, y+1)
			out.Faces = append(out.Faces, [3]int{a, b, c})
			out.Faces = append(out.Faces, [3]int{b, d, c})
		}
	}
	return out
}
