package pack

import (
	"testing"

	"github.com/patterncut/unfold/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectPatch(w, h float64) Patch {
	return Patch{UV: []geom.Vec2{
		{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h},
	}}
}

func patchBox(p Patch) geom.Box2 {
	box := geom.EmptyBox2()
	for _, v := range p.UV {
		box.Encapsulate(v)
	}
	return box
}

func TestPack_NonOverlapping(t *testing.T) {
	patches := []Patch{rectPatch(1, 1), rectPatch(1.5, 0.8), rectPatch(2, 2), rectPatch(0.5, 3)}
	packed, _, _ := Pack(patches, 3.0, 0.1)

	for i := 0; i < len(packed); i++ {
		for j := i + 1; j < len(packed); j++ {
			bi, bj := patchBox(packed[i]), patchBox(packed[j])
			assert.False(t, bi.Overlaps(bj), "patches %d and %d must not overlap", i, j)
		}
	}
}

func TestPack_WrapsToNewRowOnOverflow(t *testing.T) {
	patches := []Patch{rectPatch(2, 1), rectPatch(2, 1), rectPatch(2, 1)}
	packed, bounds, _ := Pack(patches, 3.0, 0.0)

	require.Len(t, packed, 3)
	assert.Greater(t, bounds.Max.Y, 1.0, "third patch should have wrapped to a new row")
}

func TestPack_TotalAreaSumsPatchAreas(t *testing.T) {
	patches := []Patch{rectPatch(1, 2), rectPatch(3, 1)}
	_, _, total := Pack(patches, DefaultRowWidth, DefaultPadding)
	assert.InDelta(t, 1*2+3*1, total, 1e-9)
}

func TestPack_Empty(t *testing.T) {
	packed, bounds, total := Pack(nil, DefaultRowWidth, DefaultPadding)
	assert.Empty(t, packed)
	assert.Zero(t, total)
	assert.Equal(t, Bounds{}, bounds)
}
