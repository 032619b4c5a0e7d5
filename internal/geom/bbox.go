package geom

import "math"

// Box3 is an axis-aligned bounding box in 3D, storing min/max corners
// rather than center/extent since every caller here wants a diameter
// or a per-axis span.
type Box3 struct {
	Min, Max Vec3
}

// EmptyBox3 returns a box ready for Encapsulate calls.
func EmptyBox3() Box3 {
	return Box3{
		Min: Vec3{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64},
		Max: Vec3{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64},
	}
}

func (b *Box3) Encapsulate(p Vec3) {
	b.Min = Vec3{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)}
	b.Max = Vec3{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)}
}

// Diagonal returns the length of the box's main diagonal.
func (b Box3) Diagonal() float64 { return b.Max.Sub(b.Min).Length() }

// Size returns per-axis extents.
func (b Box3) Size() Vec3 { return b.Max.Sub(b.Min) }

// LongestAxis returns 0/1/2 for X/Y/Z, whichever extent is largest.
func (b Box3) LongestAxis() int {
	s := b.Size()
	axis := 0
	best := s.X
	if s.Y > best {
		axis, best = 1, s.Y
	}
	if s.Z > best {
		axis = 2
	}
	return axis
}

// Box2 is an axis-aligned bounding box in the 2D UV plane.
type Box2 struct {
	Min, Max Vec2
}

func EmptyBox2() Box2 {
	return Box2{
		Min: Vec2{math.MaxFloat64, math.MaxFloat64},
		Max: Vec2{-math.MaxFloat64, -math.MaxFloat64},
	}
}

func (b *Box2) Encapsulate(p Vec2) {
	b.Min = Vec2{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y)}
	b.Max = Vec2{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y)}
}

func (b Box2) Width() float64  { return b.Max.X - b.Min.X }
func (b Box2) Height() float64 { return b.Max.Y - b.Min.Y }

// Overlaps reports whether two boxes' interiors intersect.
func (b Box2) Overlaps(o Box2) bool {
	if b.Max.X <= o.Min.X || o.Max.X <= b.Min.X {
		return false
	}
	if b.Max.Y <= o.Min.Y || o.Max.Y <= b.Min.Y {
		return false
	}
	return true
}
