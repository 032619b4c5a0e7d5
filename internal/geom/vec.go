// Package geom holds the small Euclidean vector/matrix primitives shared
// by every stage of the unfolding pipeline: 3D positions, 2D UV points,
// and the handful of linear-algebra helpers (PCA, bounding boxes) the
// flattening stages need.
package geom

import "math"

// Vec3 is a point or direction in world space.
type Vec3 struct {
	X, Y, Z float64
}

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) LengthSq() float64 { return a.Dot(a) }
func (a Vec3) Length() float64   { return math.Sqrt(a.LengthSq()) }

func (a Vec3) Normalize() Vec3 {
	l := a.Length()
	if l == 0 {
		return Vec3{}
	}
	return a.Scale(1 / l)
}

func (a Vec3) DistanceTo(b Vec3) float64 { return a.Sub(b).Length() }

// Vec2 is a point in the flattened UV plane.
type Vec2 struct {
	X, Y float64
}

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

func (a Vec2) LengthSq() float64 { return a.Dot(a) }
func (a Vec2) Length() float64   { return math.Sqrt(a.LengthSq()) }

func (a Vec2) DistanceTo(b Vec2) float64 { return a.Sub(b).Length() }

// Cross2 returns the scalar (z-component) cross product of two 2D vectors,
// used throughout the pipeline to test triangle winding.
func Cross2(a, b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

// TriArea2 returns the signed area of the 2D triangle (a,b,c); positive
// for CCW winding.
func TriArea2(a, b, c Vec2) float64 {
	return 0.5 * Cross2(b.Sub(a), c.Sub(a))
}

// Finite reports whether v has no NaN/Inf component.
func (a Vec2) Finite() bool {
	return !math.IsNaN(a.X) && !math.IsNaN(a.Y) && !math.IsInf(a.X, 0) && !math.IsInf(a.Y, 0)
}
