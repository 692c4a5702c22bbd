package waves

import (
	"fmt"
	"image/color"
	"math"
	"time"
)

// Gradient is a vertical two-stop background fill spanning the surface.
type Gradient struct {
	Top, Bottom color.NRGBA
}

// StrokeStyle is the outline drawn over every band.
type StrokeStyle struct {
	Color color.NRGBA
	Width float64
}

// Shape is one band ready to paint: a closed polygon filled opaque with Fill
// and then outlined with Stroke.
type Shape struct {
	Points []Point
	Fill   color.NRGBA
	Stroke StrokeStyle
}

// Frame is the command list for one animation frame. Background is painted
// over the whole surface first, then Shapes in order, later ones on top.
type Frame struct {
	Timestamp  time.Duration
	Width      float64
	Height     float64
	Background Gradient
	Shapes     []Shape
}

// Scene owns the band registry and produces one Frame per Tick. It is not
// safe for concurrent use; the animation loop is its only caller.
type Scene struct {
	cfg     Config
	rng     Source
	palette []color.NRGBA
	bands   []Band

	width, height float64

	background Gradient
	stroke     StrokeStyle

	frame Frame
}

// NewScene validates cfg and creates its bands with rng. Call Resize before
// the first Tick.
func NewScene(cfg Config, rng Source) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid wave config: %w", err)
	}
	palette, err := ParsePalette(cfg.Palette)
	if err != nil {
		return nil, err
	}
	top, err := ParseColor(cfg.GradientTop)
	if err != nil {
		return nil, err
	}
	bottom, err := ParseColor(cfg.GradientBottom)
	if err != nil {
		return nil, err
	}
	s := &Scene{
		cfg:        cfg,
		rng:        rng,
		palette:    palette,
		bands:      Initialize(cfg.WaveCount, palette, cfg, rng),
		background: Gradient{Top: top, Bottom: bottom},
		stroke:     StrokeStyle{Color: cfg.strokeColor(), Width: cfg.StrokeWidth},
	}
	s.frame.Shapes = make([]Shape, len(s.bands))
	return s, nil
}

// Resize records the logical surface size and recomputes every baseline.
func (s *Scene) Resize(width, height float64) {
	s.width, s.height = width, height
	Relayout(s.bands, height)
}

// Size returns the logical surface size last passed to Resize.
func (s *Scene) Size() (float64, float64) {
	return s.width, s.height
}

// Bands exposes the registry. Callers must not add or remove entries.
func (s *Scene) Bands() []Band {
	return s.bands
}

// Swatches returns every colour the scene can paint: band fills, the two
// background stops and the stroke colour.
func (s *Scene) Swatches() (fills []color.NRGBA, stroke color.NRGBA) {
	fills = make([]color.NRGBA, 0, len(s.palette)+2)
	fills = append(fills, s.palette...)
	fills = append(fills, s.background.Top, s.background.Bottom)
	return fills, s.stroke.Color
}

// ShockLevel is the strongest band intensity at the last Tick's timestamp.
func (s *Scene) ShockLevel() float64 {
	level := 0.0
	for i := range s.bands {
		level = math.Max(level, s.bands[i].Intensity(s.frame.Timestamp))
	}
	return level
}

// Tick advances every band's shock state to now and synthesizes the frame.
// The returned Frame and its point slices are reused by the next Tick.
func (s *Scene) Tick(now time.Duration) *Frame {
	outline := Outline{
		Width:       s.width,
		Height:      s.height,
		Step:        s.cfg.SampleStep,
		EdgeMargin:  s.cfg.EdgeMargin,
		CloseMargin: s.cfg.CloseMargin,
	}
	s.frame.Timestamp = now
	s.frame.Width = s.width
	s.frame.Height = s.height
	s.frame.Background = s.background
	for i := range s.bands {
		band := &s.bands[i]
		shock := band.AdvanceShock(now, s.rng, s.cfg.ShockProbability)
		shape := &s.frame.Shapes[i]
		shape.Points = outline.AppendOutline(shape.Points[:0], band.params(), now, shock)
		shape.Fill = band.Color
		shape.Stroke = s.stroke
	}
	return &s.frame
}
