package pipeline

import (
	"context"
	"math"
	"testing"

	"github.com/patterncut/unfold/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lowThresholdConfig() []Option {
	return []Option{
		WithMinComponentFaces(1),
		WithMinPatchFaces(1),
		WithRelaxationIterations(40),
	}
}

func TestRun_EmptyMesh_ReturnsEmptyResultNoError(t *testing.T) {
	p := New()
	res, err := p.Run(context.Background(), PlaneGrid(0, 1, -1))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Empty(t, res.Patches)
}

func TestRun_PlanarRedStrip_TwoPatches(t *testing.T) {
	// 4x4 grid, red row at y==2, vertex-aligned.
	m := PlaneGrid(4, 4, 2)
	p := New(lowThresholdConfig()...)

	res, err := p.Run(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, res.Patches, 2)
	for _, patch := range res.Patches {
		for _, uv := range patch.UV {
			assert.True(t, math.IsNaN(uv.X) == false && math.IsNaN(uv.Y) == false)
		}
	}
}

func TestRun_Cylinder_NoColor_SinglePatchDisk(t *testing.T) {
	m := OpenCylinder(16, 6, 1.0, 3.0)
	p := New(lowThresholdConfig()...)

	res, err := p.Run(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, res.Patches, 1)
	assert.False(t, res.Patches[0].TopologyError, "cylinder should be cut to a disk before flattening")
}

func TestRun_Icosphere_TopologyErrorPatchStillEmitted(t *testing.T) {
	m := Icosphere(1.0, 2)
	p := New(lowThresholdConfig()...)

	res, err := p.Run(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, res.Patches, 1)
	assert.True(t, res.Patches[0].TopologyError)
	assert.NotEmpty(t, res.Warnings)
}

func TestRun_TaperedSleeve_RedRing_TwoElongatedPatches(t *testing.T) {
	m := TaperedSleeve(16, 10, 1.0, 0.6, 4.0)
	p := New(lowThresholdConfig()...)

	res, err := p.Run(context.Background(), m)
	require.NoError(t, err)
	assert.Len(t, res.Patches, 2)
}

func TestRun_FragmentedMesh_SpeckDropped(t *testing.T) {
	main := PlaneGrid(6, 6, -1)
	m := FragmentedMesh(main, 4, geom.Vec3{X: 10, Y: 10, Z: 0})
	p := New(WithMinComponentFaces(20), WithMinPatchFaces(1), WithRelaxationIterations(20))

	res, err := p.Run(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, res.Patches, 1)
	assert.Equal(t, main.FaceCount(), len(res.Patches[0].LocalFaces))
}

func TestRunConcurrent_MatchesSequentialPatchCount(t *testing.T) {
	m := PlaneGrid(4, 4, 2)
	p := New(lowThresholdConfig()...)

	seqRes, err := p.Run(context.Background(), m)
	require.NoError(t, err)
	concRes, err := p.RunConcurrent(context.Background(), m)
	require.NoError(t, err)

	assert.Equal(t, len(seqRes.Patches), len(concRes.Patches))
}

func TestRun_PackedPatchesDoNotOverlap(t *testing.T) {
	m := PlaneGrid(4, 4, 2)
	p := New(lowThresholdConfig()...)

	res, err := p.Run(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, res.Patches, 2)
	assert.False(t, res.Patches[0].Bounds.Overlaps(res.Patches[1].Bounds))
}

func TestRun_Cancellation_ReturnsNoPartialPatches(t *testing.T) {
	m := TaperedSleeve(16, 10, 1.0, 0.6, 4.0)
	p := New(lowThresholdConfig()...)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := p.Run(ctx, m)
	assert.Error(t, err)
	assert.Empty(t, res.Patches)
}
