package waves

import (
	"math"
	"time"
)

// WaveParams are the inputs of Displacement that come from a band.
type WaveParams struct {
	BaselineY float64
	Amplitude float64
	Frequency float64
	Phase     float64
}

// Point is a position in logical surface units.
type Point struct {
	X, Y float64
}

// Displacement returns the y coordinate of a band at horizontal position x
// and frame timestamp t, given the current shock intensity. It is pure.
func Displacement(x float64, p WaveParams, t time.Duration, shock float64) float64 {
	static := math.Sin(x*p.Frequency+p.Phase)*(p.Amplitude*0.75) +
		math.Cos(x*p.Frequency*0.1+p.Phase*1.7)*(p.Amplitude*0.22)
	return p.BaselineY + static + ShockOffset(x, p, t, shock)
}

// ShockOffset is the shock-driven part of Displacement. Its magnitude never
// exceeds Amplitude*0.9*shock and it is exactly 0 without a shock.
func ShockOffset(x float64, p WaveParams, t time.Duration, shock float64) float64 {
	if shock == 0 {
		return 0
	}
	ms := float64(t) / float64(time.Millisecond)
	return math.Sin(x*p.Frequency*2.5+ms*0.02) * (p.Amplitude * 0.9 * shock)
}

// Outline describes how a band ripple is sampled and closed.
type Outline struct {
	Width, Height float64
	Step          float64
	EdgeMargin    float64
	CloseMargin   float64
}

// AppendOutline appends the closed band shape to dst: the ripple sampled from
// -EdgeMargin to Width+EdgeMargin inclusive, then the two corners below the
// surface so the band covers everything under its ripple.
func (o Outline) AppendOutline(dst []Point, p WaveParams, t time.Duration, shock float64) []Point {
	if o.Step <= 0 {
		return dst
	}
	end := o.Width + o.EdgeMargin
	for i := 0; ; i++ {
		x := -o.EdgeMargin + float64(i)*o.Step
		if x > end {
			break
		}
		dst = append(dst, Point{X: x, Y: Displacement(x, p, t, shock)})
	}
	bottom := o.Height + o.CloseMargin
	return append(dst,
		Point{X: o.Width + o.CloseMargin, Y: bottom},
		Point{X: -o.CloseMargin, Y: bottom},
	)
}

// SampleCount is the number of ripple samples AppendOutline emits.
func (o Outline) SampleCount() int {
	if o.Step <= 0 {
		return 0
	}
	span := o.Width + 2*o.EdgeMargin
	if span < 0 {
		return 0
	}
	return int(math.Floor(span/o.Step+1e-9)) + 1
}
