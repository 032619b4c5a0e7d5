// Package pack implements shelf packing of flattened patches into a
// normalized UV domain: a row-cursor, row-height-tracking guillotine
// layout over patch bounding boxes instead of stock-sheet parts.
package pack

import "github.com/patterncut/unfold/internal/geom"

// DefaultRowWidth and DefaultPadding are the packer's documented
// defaults.
const (
	DefaultRowWidth = 4.0
	DefaultPadding  = 0.02
)

// Patch is the packer's view of a flattened patch: its UV positions,
// translated in place by Pack.
type Patch struct {
	UV []geom.Vec2
}

// Bounds is the packed result's overall axis-aligned extent.
type Bounds struct {
	Min, Max geom.Vec2
}

// Pack lays patches out shelf-style: patches are placed left to right
// within a row until the row width would be exceeded, then a new row
// starts above the tallest patch seen so far in the current row.
// Patches are packed in the order given — already deterministic, since
// the pipeline hands them over sorted by descending face count.
func Pack(patches []Patch, rowWidth, padding float64) ([]Patch, Bounds, float64) {
	if rowWidth <= 0 {
		rowWidth = DefaultRowWidth
	}
	if padding < 0 {
		padding = DefaultPadding
	}

	bounds := geom.EmptyBox2()
	var totalArea float64

	var x, y0, rowHeight float64
	for i := range patches {
		box := boxOf(patches[i].UV)
		w, h := box.Width(), box.Height()

		if x+w > rowWidth && x > 0 {
			y0 += rowHeight + padding
			x, rowHeight = 0, 0
		}

		offset := geom.Vec2{X: x - box.Min.X, Y: y0 - box.Min.Y}
		for j := range patches[i].UV {
			patches[i].UV[j] = patches[i].UV[j].Add(offset)
		}

		placedBox := boxOf(patches[i].UV)
		bounds.Encapsulate(placedBox.Min)
		bounds.Encapsulate(placedBox.Max)
		totalArea += w * h

		x += w + padding
		if h > rowHeight {
			rowHeight = h
		}
	}

	if len(patches) == 0 {
		bounds = geom.Box2{}
	}

	return patches, Bounds{Min: bounds.Min, Max: bounds.Max}, totalArea
}

func boxOf(uv []geom.Vec2) geom.Box2 {
	box := geom.EmptyBox2()
	for _, p := range uv {
		box.Encapsulate(p)
	}
	return box
}
