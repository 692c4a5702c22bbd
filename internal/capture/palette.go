package capture

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// BuildPalette derives a GIF palette from the colours a scene paints: each
// fill, each fill under the translucent stroke at increasing coverage, and
// blends between every pair of fills for anti-aliased edges and the
// background gradient. The result never exceeds 256 entries.
func BuildPalette(fills []color.NRGBA, stroke color.NRGBA) color.Palette {
	const (
		strokeSteps = 8
		pairSteps   = 6
	)
	seen := make(map[color.RGBA]bool)
	var out color.Palette
	add := func(c colorful.Color) {
		if len(out) >= 256 {
			return
		}
		r, g, b := c.Clamped().RGB255()
		rgba := color.RGBA{R: r, G: g, B: b, A: 0xff}
		if seen[rgba] {
			return
		}
		seen[rgba] = true
		out = append(out, rgba)
	}

	base := make([]colorful.Color, 0, len(fills))
	for _, f := range fills {
		f.A = 0xff
		c, _ := colorful.MakeColor(f)
		base = append(base, c)
		add(c)
	}

	opaqueStroke := stroke
	opaqueStroke.A = 0xff
	ink, _ := colorful.MakeColor(opaqueStroke)
	coverage := float64(stroke.A) / 255
	for _, c := range base {
		for i := 1; i <= strokeSteps; i++ {
			add(c.BlendRgb(ink, coverage*float64(i)/strokeSteps))
		}
	}

	for i := range base {
		for j := i + 1; j < len(base); j++ {
			for k := 1; k < pairSteps; k++ {
				add(base[i].BlendRgb(base[j], float64(k)/pairSteps))
			}
		}
	}
	add(ink)
	return out
}
