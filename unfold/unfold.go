// Package unfold implements the three initial planar-embedding
// strategies (LSCM-by-Laplacian-smoothing, tube unrolling, BFS geodesic
// fan) and the orchestrator's strategy selector.
package unfold

import (
	"errors"
	"math"

	"github.com/patterncut/unfold/internal/geom"
	"github.com/patterncut/unfold/mesh"
)

// Strategy selects which initial-embedding algorithm Initial runs.
type Strategy int

const (
	LSCM Strategy = iota
	Tube
	BFSFan
	Planar
)

func (s Strategy) String() string {
	switch s {
	case LSCM:
		return "lscm"
	case Tube:
		return "tube"
	case BFSFan:
		return "bfs_fan"
	default:
		return "planar"
	}
}

// Config holds the tunables for the LSCM smoothing pass.
type Config struct {
	LSCMIterations int
	LSCMAlpha      float64
}

// DefaultConfig returns 30 smoothing iterations at α=0.4.
func DefaultConfig() Config {
	return Config{LSCMIterations: 30, LSCMAlpha: 0.4}
}

// ElongationRatio is the threshold above which a patch's bounding box
// is considered "elongated" enough to prefer tube unrolling over LSCM.
const ElongationRatio = 1.8

// ErrDegeneratePatch is returned when a patch has fewer than 3 distinct
// vertex positions.
var ErrDegeneratePatch = errors.New("unfold: degenerate patch")

// Choose implements the orchestrator's priority order: Tube (if
// cylinder-cut or elongated) → LSCM → BFS fan → planar projection, the
// last two being runtime fallbacks inside Initial rather than choices
// made here.
func Choose(sm *mesh.SubMesh, wasCylinder, elongated bool) Strategy {
	if wasCylinder || elongated {
		return Tube
	}
	return LSCM
}

// IsElongated reports whether a patch's longest bounding-box side is at
// least ElongationRatio times its second-longest.
func IsElongated(sm *mesh.SubMesh) bool {
	box := geom.EmptyBox3()
	for _, v := range sm.Vertices {
		box.Encapsulate(v)
	}
	size := box.Size()
	axes := []float64{size.X, size.Y, size.Z}
	// sort descending, 3 elements, insertion sort is plenty.
	for i := 1; i < len(axes); i++ {
		j := i
		for j > 0 && axes[j-1] < axes[j] {
			axes[j-1], axes[j] = axes[j], axes[j-1]
			j--
		}
	}
	if axes[1] <= 1e-12 {
		return axes[0] > 1e-12
	}
	return axes[0]/axes[1] >= ElongationRatio
}

// Initial produces the first planar embedding for a patch, falling back
// down the priority chain (strategy → LSCM → BFS fan → planar
// projection) whenever a stage fails to produce |UV|=|V| finite values.
// The returned Strategy is whichever one actually produced the
// embedding, which may differ from the requested strategy if it fell
// through the chain.
func Initial(sm *mesh.SubMesh, adj *mesh.Adjacency, strategy Strategy, cfg Config) ([]geom.Vec2, Strategy, error) {
	if sm.VertexCount() == 0 {
		return nil, strategy, ErrDegeneratePatch
	}

	try := func(s Strategy) ([]geom.Vec2, bool) {
		var uv []geom.Vec2
		var err error
		switch s {
		case Tube:
			uv, err = tubeUnroll(sm)
		case LSCM:
			uv, err = lscm(sm, adj, cfg)
		case BFSFan:
			uv, err = bfsFan(sm, adj)
		default:
			uv, err = planarProjection(sm)
		}
		if err != nil || !validEmbedding(uv, sm.VertexCount()) {
			return nil, false
		}
		return uv, true
	}

	order := []Strategy{strategy, LSCM, BFSFan, Planar}
	tried := make(map[Strategy]bool)
	for _, s := range order {
		if tried[s] {
			continue
		}
		tried[s] = true
		if uv, ok := try(s); ok {
			return uv, s, nil
		}
	}
	return nil, strategy, errors.New("unfold: no strategy produced a valid embedding")
}

func validEmbedding(uv []geom.Vec2, n int) bool {
	if len(uv) != n {
		return false
	}
	for _, p := range uv {
		if !p.Finite() {
			return false
		}
	}
	return true
}

// planarProjection is the ultimate fallback: project 3D positions onto
// the PCA principal plane with no relaxation step.
func planarProjection(sm *mesh.SubMesh) ([]geom.Vec2, error) {
	axis := geom.PrincipalAxis(sm.Vertices)
	e1, e2 := geom.OrthonormalBasis(axis)
	c := geom.Centroid3(sm.Vertices)
	uv := make([]geom.Vec2, sm.VertexCount())
	for i, p := range sm.Vertices {
		d := p.Sub(c)
		uv[i] = geom.Vec2{X: d.Dot(e1), Y: d.Dot(e2)}
	}
	return uv, nil
}

func farthest(from int, pts []geom.Vec3) int {
	best, bestD := from, -1.0
	for i, p := range pts {
		d := p.DistanceTo(pts[from])
		if d > bestD {
			bestD, best = d, i
		}
	}
	return best
}

// lscm is a PCA-initialized, pin-constrained Laplacian smoothing pass
// approximating a least-squares conformal map.
func lscm(sm *mesh.SubMesh, adj *mesh.Adjacency, cfg Config) ([]geom.Vec2, error) {
	n := sm.VertexCount()
	if n < 3 {
		return fallbackPositions(n), nil
	}

	uv, err := planarProjection(sm)
	if err != nil {
		return nil, err
	}

	pinA := farthest(0, sm.Vertices)
	pinB := farthest(pinA, sm.Vertices)
	pinned := map[int]bool{pinA: true, pinB: true}

	alpha := cfg.LSCMAlpha
	if alpha == 0 {
		alpha = 0.4
	}
	iterations := cfg.LSCMIterations
	if iterations == 0 {
		iterations = 30
	}

	for iter := 0; iter < iterations; iter++ {
		next := make([]geom.Vec2, n)
		copy(next, uv)
		for v := 0; v < n; v++ {
			if pinned[v] {
				continue
			}
			neighbors := adj.VertexNeighbors[v]
			if len(neighbors) == 0 {
				continue
			}
			var mean geom.Vec2
			for _, nb := range neighbors {
				mean = mean.Add(uv[nb])
			}
			mean = mean.Scale(1 / float64(len(neighbors)))
			next[v] = uv[v].Scale(1 - alpha).Add(mean.Scale(alpha))
		}
		uv = next
	}

	nanGuardVec2(uv, adj)
	return uv, nil
}

// nanGuardVec2 replaces any non-finite entry with the mean of its
// finite neighbors, then zeroes any still-NaN isolated vertex.
func nanGuardVec2(uv []geom.Vec2, adj *mesh.Adjacency) {
	for v := range uv {
		if uv[v].Finite() {
			continue
		}
		var sum geom.Vec2
		count := 0
		for _, nb := range adj.VertexNeighbors[v] {
			if uv[nb].Finite() {
				sum = sum.Add(uv[nb])
				count++
			}
		}
		if count > 0 {
			uv[v] = sum.Scale(1 / float64(count))
		} else {
			uv[v] = geom.Vec2{}
		}
	}
}

func fallbackPositions(n int) []geom.Vec2 {
	uv := make([]geom.Vec2, n)
	for i := range uv {
		uv[i] = geom.Vec2{X: float64(i), Y: 0}
	}
	return uv
}

// tubeUnroll unrolls a tube-like patch around its longest
// bounding-box axis.
func tubeUnroll(sm *mesh.SubMesh) ([]geom.Vec2, error) {
	n := sm.VertexCount()
	if n < 3 {
		return fallbackPositions(n), nil
	}

	box := geom.EmptyBox3()
	for _, v := range sm.Vertices {
		box.Encapsulate(v)
	}
	axisIdx := box.LongestAxis()
	var axis geom.Vec3
	switch axisIdx {
	case 0:
		axis = geom.Vec3{X: 1}
	case 1:
		axis = geom.Vec3{Y: 1}
	default:
		axis = geom.Vec3{Z: 1}
	}
	e1, e2 := geom.OrthonormalBasis(axis)
	c := geom.Centroid3(sm.Vertices)

	h := make([]float64, n)
	x := make([]float64, n)
	y := make([]float64, n)
	theta := make([]float64, n)
	for i, v := range sm.Vertices {
		d := v.Sub(c)
		h[i] = d.Dot(axis)
		x[i] = d.Dot(e1)
		y[i] = d.Dot(e2)
		theta[i] = math.Atan2(y[i], x[i])
	}

	thetaMin, thetaMax := theta[0], theta[0]
	for _, t := range theta {
		if t < thetaMin {
			thetaMin = t
		}
		if t > thetaMax {
			thetaMax = t
		}
	}
	if thetaMax-thetaMin > 1.5*math.Pi {
		for i := range theta {
			if theta[i] < 0 {
				theta[i] += 2 * math.Pi
			}
		}
		thetaMin, thetaMax = theta[0], theta[0]
		for _, t := range theta {
			if t < thetaMin {
				thetaMin = t
			}
			if t > thetaMax {
				thetaMax = t
			}
		}
	}

	var rhoSum float64
	for i := range theta {
		rhoSum += math.Hypot(x[i], y[i])
	}
	rho := rhoSum / float64(n)
	span := thetaMax - thetaMin
	arcLength := rho * span

	hMin := h[0]
	for _, hv := range h {
		if hv < hMin {
			hMin = hv
		}
	}

	uv := make([]geom.Vec2, n)
	for i := range uv {
		var u float64
		if span > 1e-12 {
			u = (theta[i] - thetaMin) / span * arcLength
		}
		uv[i] = geom.Vec2{X: u, Y: h[i] - hMin}
	}
	return uv, nil
}
