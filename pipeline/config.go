package pipeline

import "github.com/patterncut/unfold/seam"

// Config holds every tunable of the pipeline, constructed via
// DefaultConfig and overridden with functional options.
type Config struct {
	WeldTolerance     float64
	MinPatchFaces     int
	MinComponentFaces int
	Seam              seam.Config

	RelaxationIterations int
	BoundaryStiffness    float64
	InteriorStiffness    float64
	PinBoundary          bool
	Damping              float64

	PackerRowWidth float64
	PackerPadding  float64

	LSCMIterations int
	LSCMAlpha      float64
}

// DefaultConfig returns the documented default tuning for every stage.
func DefaultConfig() Config {
	return Config{
		WeldTolerance:        1e-5,
		MinPatchFaces:        500,
		MinComponentFaces:    100,
		Seam:                 seam.DefaultConfig(),
		RelaxationIterations: 200,
		BoundaryStiffness:    50.0,
		InteriorStiffness:    0.2,
		PinBoundary:          false,
		Damping:              0.995,
		PackerRowWidth:       4.0,
		PackerPadding:        0.02,
		LSCMIterations:       30,
		LSCMAlpha:            0.4,
	}
}

// Option mutates a Config; applied in New.
type Option func(*Config)

func WithWeldTolerance(t float64) Option     { return func(c *Config) { c.WeldTolerance = t } }
func WithMinPatchFaces(n int) Option         { return func(c *Config) { c.MinPatchFaces = n } }
func WithMinComponentFaces(n int) Option     { return func(c *Config) { c.MinComponentFaces = n } }
func WithSeamConfig(cfg seam.Config) Option  { return func(c *Config) { c.Seam = cfg } }
func WithRelaxationIterations(n int) Option  { return func(c *Config) { c.RelaxationIterations = n } }
func WithBoundaryStiffness(k float64) Option { return func(c *Config) { c.BoundaryStiffness = k } }
func WithInteriorStiffness(k float64) Option { return func(c *Config) { c.InteriorStiffness = k } }
func WithPinBoundary(b bool) Option          { return func(c *Config) { c.PinBoundary = b } }
func WithDamping(d float64) Option           { return func(c *Config) { c.Damping = d } }
func WithPackerRowWidth(w float64) Option    { return func(c *Config) { c.PackerRowWidth = w } }
func WithPackerPadding(p float64) Option      { return func(c *Config) { c.PackerPadding = p } }
func WithLSCMIterations(n int) Option        { return func(c *Config) { c.LSCMIterations = n } }
func WithLSCMAlpha(a float64) Option         { return func(c *Config) { c.LSCMAlpha = a } }
