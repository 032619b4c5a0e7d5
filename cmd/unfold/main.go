// Command unfold is a demonstration CLI that builds a handful of
// procedural meshes and runs them through the unfolding pipeline,
// printing a patch summary. It is a harness, not a file-format
// importer/exporter — it never parses OBJ or writes SVG.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/patterncut/unfold/internal/logx"
	"github.com/patterncut/unfold/mesh"
	"github.com/patterncut/unfold/pipeline"
	"github.com/spf13/cobra"
)

var scenario string

func main() {
	rootCmd := &cobra.Command{
		Use:   "unfold",
		Short: "Unfold a 3D garment mesh into flattened 2D patches",
		Long:  "Demonstration CLI for the garment mesh unfolding pipeline: plane, cylinder, icosphere, and sleeve scenarios.",
		RunE:  run,
	}
	rootCmd.Flags().StringVar(&scenario, "scenario", "plane", "demo scenario: plane|cylinder|sphere|sleeve")
	rootCmd.Flags().Bool("verbose", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	m := buildScenario(scenario)
	if m == nil {
		return fmt.Errorf("unknown scenario %q", scenario)
	}

	p := pipeline.New(
		pipeline.WithMinComponentFaces(1),
		pipeline.WithMinPatchFaces(1),
	)

	res, err := p.Run(context.Background(), m)
	if err != nil {
		return fmt.Errorf("pipeline run: %w", err)
	}

	fmt.Printf("scenario %q: %d patches, total area %.4f\n", scenario, len(res.Patches), res.TotalArea)
	for i, patch := range res.Patches {
		fmt.Printf("  patch %d: %d faces, bounds [%.3f,%.3f]-[%.3f,%.3f], topology_error=%v\n",
			i, len(patch.LocalFaces),
			patch.Bounds.Min.X, patch.Bounds.Min.Y, patch.Bounds.Max.X, patch.Bounds.Max.Y,
			patch.TopologyError)
	}
	for _, w := range res.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
	return nil
}

func buildScenario(name string) mesh.Mesh {
	switch name {
	case "plane":
		return pipeline.PlaneGrid(4, 4, 2)
	case "cylinder":
		return pipeline.OpenCylinder(32, 8, 1.0, 3.0)
	case "sphere":
		return pipeline.Icosphere(1.0, 2)
	case "sleeve":
		return pipeline.TaperedSleeve(24, 10, 1.0, 0.6, 4.0)
	default:
		return nil
	}
}
