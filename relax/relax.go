// Package relax implements a "steel & rubber" mass-spring relaxer that
// refines an initial planar embedding into one whose boundary edge
// lengths closely track their 3D truth while the interior is free to
// breathe flat.
package relax

import (
	"math"
	"sort"

	"github.com/patterncut/unfold/internal/geom"
	"github.com/patterncut/unfold/mesh"
)

// Params controls the Verlet-like integration.
type Params struct {
	Iterations  int
	BoundaryK   float64
	InteriorK   float64
	Dt          float64
	Mass        float64
	Damping     float64
	PinBoundary bool
}

// DefaultParams returns the documented defaults.
func DefaultParams() Params {
	return Params{
		Iterations:  200,
		BoundaryK:   50.0,
		InteriorK:   0.2,
		Dt:          1.0 / 60.0,
		Mass:        1.0,
		Damping:     0.995,
		PinBoundary: false,
	}
}

type spring struct {
	u, v   int
	k      float64
	length float64
}

// Relax runs the mass-spring relaxation and returns the final 2D
// positions. If the result ever goes non-finite, the original initial
// embedding is returned untouched.
func Relax(sm *mesh.SubMesh, initial []geom.Vec2, adj *mesh.Adjacency, boundary map[mesh.EdgeKey]bool, p Params) []geom.Vec2 {
	n := len(initial)
	pos := make([]geom.Vec2, n)
	copy(pos, initial)
	if n == 0 {
		return pos
	}

	springs := buildSprings(sm, adj, boundary, p)
	pinned := make([]bool, n)
	if p.PinBoundary {
		for v := range adj.BoundaryVertices {
			pinned[v] = true
		}
	}

	vel := make([]geom.Vec2, n)
	dt := p.Dt
	if dt == 0 {
		dt = 1.0 / 60.0
	}
	mass := p.Mass
	if mass == 0 {
		mass = 1.0
	}
	damping := p.Damping
	if damping == 0 {
		damping = 1.0
	}
	iterations := p.Iterations
	if iterations == 0 {
		iterations = 200
	}

	annealStart := int(float64(iterations) * 0.6)

	preCentroid := geom.Centroid2(pos)

	for iter := 0; iter < iterations; iter++ {
		force := make([]geom.Vec2, n)
		for _, s := range springs {
			delta := pos[s.v].Sub(pos[s.u])
			dist := delta.Length()
			if dist < 1e-12 {
				continue
			}
			mag := s.k * (dist - s.length)
			dir := delta.Scale(1 / dist)
			f := dir.Scale(mag)
			force[s.u] = force[s.u].Add(f)
			force[s.v] = force[s.v].Sub(f)
		}

		stepDamping := damping
		if iter >= annealStart {
			stepDamping *= math.Pow(0.995, float64(iter-annealStart+1))
		}

		for v := 0; v < n; v++ {
			if pinned[v] {
				continue
			}
			vel[v] = vel[v].Add(force[v].Scale(dt / mass)).Scale(stepDamping)
			pos[v] = pos[v].Add(vel[v].Scale(dt))
		}

		// Drift cancellation: restore the pre-step centroid every
		// iteration so the patch doesn't wander off its initial placement.
		// Pinned vertices are frozen at their initial UV positions and
		// must never move, including by this shift — otherwise interior
		// motion alone drags the centroid and the restore-shift would
		// carry the boundary off its pinned coordinates.
		cur := geom.Centroid2(pos)
		shift := preCentroid.Sub(cur)
		if shift.X != 0 || shift.Y != 0 {
			for v := 0; v < n; v++ {
				if pinned[v] {
					continue
				}
				pos[v] = pos[v].Add(shift)
			}
		}
	}

	for _, p := range pos {
		if !p.Finite() {
			out := make([]geom.Vec2, n)
			copy(out, initial)
			return out
		}
	}
	return pos
}

// buildSprings creates one spring per unique mesh edge, rest length
// equal to the 3D edge length, stiffness chosen by boundary membership.
func buildSprings(sm *mesh.SubMesh, adj *mesh.Adjacency, boundary map[mesh.EdgeKey]bool, p Params) []spring {
	boundaryK := p.BoundaryK
	if boundaryK == 0 {
		boundaryK = 50.0
	}
	interiorK := p.InteriorK
	if interiorK == 0 {
		interiorK = 0.2
	}

	keys := make([]mesh.EdgeKey, 0, len(adj.EdgeFaces))
	for key := range adj.EdgeFaces {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].A != keys[j].A {
			return keys[i].A < keys[j].A
		}
		return keys[i].B < keys[j].B
	})

	springs := make([]spring, 0, len(keys))
	for _, key := range keys {
		geom.Assert(key.A != key.B, "adjacency produced a self-loop edge")
		k := interiorK
		if boundary[key] {
			k = boundaryK
		}
		springs = append(springs, spring{
			u:      key.A,
			v:      key.B,
			k:      k,
			length: sm.EdgeLength3D(key.A, key.B),
		})
	}
	return springs
}
