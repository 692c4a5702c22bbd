package waves

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Config holds the tunables of the band animation. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	WaveCount int      `toml:"wave_count"`
	Palette   []string `toml:"palette"`

	AmplitudeMin float64 `toml:"amplitude_min"`
	AmplitudeMax float64 `toml:"amplitude_max"`
	FrequencyMin float64 `toml:"frequency_min"`
	FrequencyMax float64 `toml:"frequency_max"`

	ShockProbability float64  `toml:"shock_probability"`
	ShockDuration    Duration `toml:"shock_duration"`

	SampleStep    float64 `toml:"sample_step"`
	EdgeMargin    float64 `toml:"edge_margin"`
	CloseMargin   float64 `toml:"close_margin"`
	StrokeWidth   float64 `toml:"stroke_width"`
	StrokeAlpha   float64 `toml:"stroke_alpha"`
	StrokeColor   string  `toml:"stroke_color"`
	StrokeOpacity float64 `toml:"stroke_opacity"`

	GradientTop    string `toml:"gradient_top"`
	GradientBottom string `toml:"gradient_bottom"`
}

// Duration is a time.Duration that decodes from strings such as "1100ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultPalette is the pastel rainbow the bands cycle through.
var DefaultPalette = []string{
	"#ffd4ea", // pink
	"#ffeaa0", // yellow
	"#c9f6cf", // mint
	"#c0e1ff", // blue
	"#e5cffc", // lilac
	"#fff6d9", // cream
}

// DefaultConfig returns the stock animation settings.
func DefaultConfig() Config {
	return Config{
		WaveCount:        10,
		Palette:          append([]string(nil), DefaultPalette...),
		AmplitudeMin:     40,
		AmplitudeMax:     65,
		FrequencyMin:     0.040,
		FrequencyMax:     0.042,
		ShockProbability: 0.029,
		ShockDuration:    Duration{1100 * time.Millisecond},
		SampleStep:       8,
		EdgeMargin:       60,
		CloseMargin:      80,
		StrokeWidth:      4.6,
		StrokeAlpha:      0.9,
		StrokeColor:      "#263547",
		StrokeOpacity:    0.25,
		GradientTop:      "#fffaf0",
		GradientBottom:   "#f3f7ff",
	}
}

// Validate reports the first setting that cannot drive a scene.
func (c Config) Validate() error {
	switch {
	case c.WaveCount <= 0:
		return fmt.Errorf("wave_count must be positive, got %d", c.WaveCount)
	case len(c.Palette) == 0:
		return errors.New("palette must contain at least one colour")
	case c.AmplitudeMin < 0 || c.AmplitudeMax < c.AmplitudeMin:
		return fmt.Errorf("invalid amplitude range [%g, %g]", c.AmplitudeMin, c.AmplitudeMax)
	case c.FrequencyMin < 0 || c.FrequencyMax < c.FrequencyMin:
		return fmt.Errorf("invalid frequency range [%g, %g]", c.FrequencyMin, c.FrequencyMax)
	case c.ShockProbability < 0 || c.ShockProbability > 1:
		return fmt.Errorf("shock_probability must be within [0, 1], got %g", c.ShockProbability)
	case c.ShockDuration.Duration <= 0:
		return fmt.Errorf("shock_duration must be positive, got %s", c.ShockDuration)
	case c.SampleStep <= 0:
		return fmt.Errorf("sample_step must be positive, got %g", c.SampleStep)
	case c.StrokeWidth < 0:
		return fmt.Errorf("stroke_width must not be negative, got %g", c.StrokeWidth)
	case c.StrokeAlpha < 0 || c.StrokeAlpha > 1:
		return fmt.Errorf("stroke_alpha must be within [0, 1], got %g", c.StrokeAlpha)
	case c.StrokeOpacity < 0 || c.StrokeOpacity > 1:
		return fmt.Errorf("stroke_opacity must be within [0, 1], got %g", c.StrokeOpacity)
	}
	if _, err := ParsePalette(c.Palette); err != nil {
		return err
	}
	for _, hex := range []string{c.StrokeColor, c.GradientTop, c.GradientBottom} {
		if _, err := ParseColor(hex); err != nil {
			return err
		}
	}
	return nil
}

// ParseColor converts a "#rrggbb" or "#rgb" string to an opaque colour.
func ParseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parsing colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// ParsePalette converts every entry of hexes with ParseColor.
func ParsePalette(hexes []string) ([]color.NRGBA, error) {
	out := make([]color.NRGBA, 0, len(hexes))
	for _, hex := range hexes {
		c, err := ParseColor(hex)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// strokeColor folds the stroke opacity and the global stroke alpha into one
// non-premultiplied colour.
func (c Config) strokeColor() color.NRGBA {
	base, err := ParseColor(c.StrokeColor)
	if err != nil {
		return color.NRGBA{}
	}
	base.A = uint8(clamp01(c.StrokeOpacity*c.StrokeAlpha)*255 + 0.5)
	return base
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
