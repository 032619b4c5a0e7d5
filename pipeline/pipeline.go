// Package pipeline implements the orchestrator that sequences mesh
// conditioning, seam extraction, flood segmentation, and the per-patch
// surgery→unfold→relax sub-pipeline, then packs the result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/patterncut/unfold/internal/geom"
	"github.com/patterncut/unfold/internal/logx"
	"github.com/patterncut/unfold/mesh"
	"github.com/patterncut/unfold/pack"
	"github.com/patterncut/unfold/relax"
	"github.com/patterncut/unfold/seam"
	"github.com/patterncut/unfold/segment"
	"github.com/patterncut/unfold/surgery"
	"github.com/patterncut/unfold/topology"
	"github.com/patterncut/unfold/unfold"
	"golang.org/x/sync/errgroup"
)

// Pipeline runs the full mesh-to-pattern conversion for a fixed Config.
type Pipeline struct {
	cfg    Config
	logger *slog.Logger
}

// New constructs a Pipeline from options layered over DefaultConfig.
func New(opts ...Option) *Pipeline {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Pipeline{cfg: cfg, logger: logx.Logger()}
}

// condition runs weld + component filtering + seam extraction, the
// shared prefix of both Run and RunConcurrent.
func (p *Pipeline) condition(m mesh.Mesh) (*mesh.ArrayMesh, *seam.Result, error) {
	if isEmptyMesh(m) {
		return nil, nil, ErrEmptyMesh
	}

	welded, _, _ := mesh.Weld(m, p.cfg.WeldTolerance)
	p.logger.Debug("welded mesh", "vertices", welded.VertexCount(), "faces", welded.FaceCount())

	before := welded.FaceCount()
	welded = mesh.RetainComponents(welded, p.cfg.MinComponentFaces)
	if dropped := before - welded.FaceCount(); dropped > 0 {
		p.logger.Debug("dropped small components", "faces_dropped", dropped)
	}

	sres := seam.Extract(welded, p.cfg.Seam)
	p.logger.Debug("seam extraction", "red_vertices", len(sres.Red), "barrier_edges", len(sres.Barriers))

	return welded, sres, nil
}

// Run sequences every stage in series: the default, easiest-to-reason-
// about mode.
func (p *Pipeline) Run(ctx context.Context, m mesh.Mesh) (*Result, error) {
	welded, sres, err := p.condition(m)
	if errors.Is(err, ErrEmptyMesh) {
		return &Result{}, nil
	}
	if err != nil {
		return nil, err
	}

	adj := mesh.BuildMesh(welded)
	subMeshes := segment.Flood(welded, adj, sres.Barriers, sres.Red, p.cfg.MinPatchFaces)
	p.logger.Debug("flood segmentation", "patches", len(subMeshes))

	var patches []Patch
	var warnings []string
	for i, sm := range subMeshes {
		if ctx.Err() != nil {
			break
		}
		patch, warn := p.flattenPatch(sm, i)
		patches = append(patches, patch)
		if warn != "" {
			warnings = append(warnings, warn)
		}
	}

	return p.assemble(patches, sres, warnings, ctx.Err())
}

// RunConcurrent fans the per-patch surgery→unfold→relax sub-pipeline
// out across an errgroup bounded by GOMAXPROCS, preserving patch order
// via index-addressed writes rather than append.
func (p *Pipeline) RunConcurrent(ctx context.Context, m mesh.Mesh) (*Result, error) {
	welded, sres, err := p.condition(m)
	if errors.Is(err, ErrEmptyMesh) {
		return &Result{}, nil
	}
	if err != nil {
		return nil, err
	}

	adj := mesh.BuildMesh(welded)
	subMeshes := segment.Flood(welded, adj, sres.Barriers, sres.Red, p.cfg.MinPatchFaces)
	p.logger.Debug("flood segmentation", "patches", len(subMeshes))

	patches := make([]Patch, len(subMeshes))
	warningSlots := make([]string, len(subMeshes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, sm := range subMeshes {
		i, sm := i, sm
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			patch, warn := p.flattenPatch(sm, i)
			patches[i] = patch
			warningSlots[i] = warn
			return nil
		})
	}
	groupErr := g.Wait()

	var warnings []string
	for _, w := range warningSlots {
		if w != "" {
			warnings = append(warnings, w)
		}
	}

	runErr := ctx.Err()
	if runErr == nil {
		runErr = groupErr
	}
	if runErr != nil {
		// Drop any patch slot a goroutine never got to run: partial
		// patch state is never returned to the caller.
		completed := patches[:0]
		for _, pt := range patches {
			if pt.UV != nil {
				completed = append(completed, pt)
			}
		}
		patches = completed
	}
	return p.assemble(patches, sres, warnings, runErr)
}

func (p *Pipeline) assemble(patches []Patch, sres *seam.Result, warnings []string, runErr error) (*Result, error) {
	packed := make([]pack.Patch, len(patches))
	for i, pt := range patches {
		packed[i] = pack.Patch{UV: pt.UV}
	}
	_, bounds, totalArea := pack.Pack(packed, p.cfg.PackerRowWidth, p.cfg.PackerPadding)
	for i := range patches {
		patches[i].UV = packed[i].UV
		patches[i].Bounds = patchBounds(patches[i].UV)
	}

	res := &Result{
		Patches:   patches,
		Bounds:    bounds,
		TotalArea: totalArea,
		Seams:     sres.Clusters,
		Warnings:  warnings,
	}

	if runErr != nil {
		return res, runErr
	}
	return res, nil
}

// flattenPatch runs the per-patch sub-pipeline: internal-seam surgery,
// cylinder repair, initial embedding selection, and relaxation.
func (p *Pipeline) flattenPatch(sm *mesh.SubMesh, index int) (Patch, string) {
	adj := mesh.BuildSubMesh(sm)
	var warning string

	if surgery.HasInternalSeam(sm, adj) {
		sm = surgery.CutInternalSeams(sm, adj)
		adj = mesh.BuildSubMesh(sm)
	}

	topo := topology.Inspect(sm, adj)
	wasCylinder := false
	if topo.Euler == 0 && len(topo.BoundaryLoops) >= 2 {
		if cut, err := surgery.CutCylinder(sm, adj, topo); err == nil {
			sm = cut
			adj = mesh.BuildSubMesh(sm)
			wasCylinder = true
			topo = topology.Inspect(sm, adj)
		} else {
			warning = fmt.Sprintf("patch %d: cylinder cut failed: %v", index, err)
		}
	}

	topologyError := sm.TopologyError || topo.Class != topology.Disk

	elongated := unfold.IsElongated(sm)
	strategy := unfold.Choose(sm, wasCylinder, elongated)
	if topologyError {
		// Non-disk patches are flattened by the BFS fan first.
		strategy = unfold.BFSFan
	}
	ucfg := unfold.Config{LSCMIterations: p.cfg.LSCMIterations, LSCMAlpha: p.cfg.LSCMAlpha}

	initial, usedStrategy, err := unfold.Initial(sm, adj, strategy, ucfg)
	if err != nil {
		initial = make([]geom.Vec2, sm.VertexCount())
		topologyError = true
		warning = fmt.Sprintf("patch %d: no valid initial embedding", index)
	} else if topologyError && warning == "" {
		warning = fmt.Sprintf("patch %d: %s topology, %s embedding used", index, topo.Class, usedStrategy)
	}

	rp := relax.Params{
		Iterations:  p.cfg.RelaxationIterations,
		BoundaryK:   p.cfg.BoundaryStiffness,
		InteriorK:   p.cfg.InteriorStiffness,
		Dt:          1.0 / 60.0,
		Mass:        1.0,
		Damping:     p.cfg.Damping,
		PinBoundary: p.cfg.PinBoundary,
	}
	uv := relax.Relax(sm, initial, adj, adj.BoundaryEdges, rp)

	return Patch{
		UV:            uv,
		LocalFaces:    sm.Faces,
		GlobalFaces:   sm.GlobalFaces,
		VertexMap:     sm.VertexMap,
		Bounds:        patchBounds(uv),
		TopologyError: topologyError,
	}, warning
}
