package geom

import "math"

// PrincipalAxis returns the leading eigenvector of the covariance matrix
// of pts via power iteration, the same iterative-eigensolver idiom the
// teacher uses for matrix decomposition in matrix.go (no closed-form
// eigensolve is pulled in for a 3x3 symmetric matrix).
func PrincipalAxis(pts []Vec3) Vec3 {
	if len(pts) == 0 {
		return Vec3{1, 0, 0}
	}
	centroid := Centroid3(pts)

	var cov [3][3]float64
	for _, p := range pts {
		d := p.Sub(centroid)
		a := [3]float64{d.X, d.Y, d.Z}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				cov[i][j] += a[i] * a[j]
			}
		}
	}

	v := [3]float64{1, 1, 1}
	for iter := 0; iter < 50; iter++ {
		var nv [3]float64
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				nv[i] += cov[i][j] * v[j]
			}
		}
		l := math.Sqrt(nv[0]*nv[0] + nv[1]*nv[1] + nv[2]*nv[2])
		if l < 1e-15 {
			break
		}
		v = [3]float64{nv[0] / l, nv[1] / l, nv[2] / l}
	}
	axis := Vec3{v[0], v[1], v[2]}
	if axis.LengthSq() < 1e-20 {
		return Vec3{1, 0, 0}
	}
	return axis.Normalize()
}

// Centroid3 returns the arithmetic mean of pts.
func Centroid3(pts []Vec3) Vec3 {
	var sum Vec3
	for _, p := range pts {
		sum = sum.Add(p)
	}
	if len(pts) == 0 {
		return sum
	}
	return sum.Scale(1 / float64(len(pts)))
}

// OrthonormalBasis builds ê1 ⊥ a and ê2 = a × ê1, completing a to an
// orthonormal triple. The helper world axis is +Y, or +X when a is
// nearly parallel to Y (|a·Y| > 0.9).
func OrthonormalBasis(a Vec3) (e1, e2 Vec3) {
	a = a.Normalize()
	worldAxis := Vec3{0, 1, 0}
	if math.Abs(a.Dot(worldAxis)) > 0.9 {
		worldAxis = Vec3{1, 0, 0}
	}
	e1 = a.Cross(worldAxis).Normalize()
	e2 = a.Cross(e1).Normalize()
	return e1, e2
}

// Centroid2 returns the arithmetic mean of pts.
func Centroid2(pts []Vec2) Vec2 {
	var sum Vec2
	for _, p := range pts {
		sum = sum.Add(p)
	}
	if len(pts) == 0 {
		return sum
	}
	return sum.Scale(1 / float64(len(pts)))
}
