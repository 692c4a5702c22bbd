// Package raster paints wave frames into a CPU pixel buffer.
package raster

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"pastelwaves/internal/waves"
)

// Surface is a device-pixel RGBA buffer addressed in logical units. The
// buffer is shared: every Paint overwrites it.
type Surface struct {
	img    *image.RGBA
	dc     *gg.Context
	width  float64
	height float64
	scale  float64
}

// NewSurface allocates a surface of width x height logical units at the
// given pixel density.
func NewSurface(width, height, scale float64) *Surface {
	s := &Surface{}
	s.Resize(width, height, scale)
	return s
}

// Resize reallocates the pixel buffer at width*scale x height*scale and
// rescales the coordinate system so drawing keeps using logical units.
func (s *Surface) Resize(width, height, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	pw, ph := DeviceSize(width, height, scale)
	s.img = image.NewRGBA(image.Rect(0, 0, pw, ph))
	s.dc = gg.NewContextForRGBA(s.img)
	s.dc.Scale(scale, scale)
	s.width, s.height, s.scale = width, height, scale
}

// DeviceSize converts a logical size to whole device pixels.
func DeviceSize(width, height, scale float64) (int, int) {
	pw := int(math.Ceil(width * scale))
	ph := int(math.Ceil(height * scale))
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}
	return pw, ph
}

// Size returns the logical size and pixel density.
func (s *Surface) Size() (width, height, scale float64) {
	return s.width, s.height, s.scale
}

// Image returns the pixel buffer. It is overwritten by the next Paint.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Paint renders f: the background gradient over the whole surface, then each
// band shape filled and outlined in order.
func (s *Surface) Paint(f *waves.Frame) {
	dc := s.dc

	// gg evaluates gradients in device pixels, not in the scaled user space.
	grad := gg.NewLinearGradient(0, 0, 0, float64(s.img.Bounds().Dy()))
	grad.AddColorStop(0, f.Background.Top)
	grad.AddColorStop(1, f.Background.Bottom)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, s.width, s.height)
	dc.Fill()

	for i := range f.Shapes {
		shape := &f.Shapes[i]
		if len(shape.Points) == 0 {
			continue
		}
		dc.MoveTo(shape.Points[0].X, shape.Points[0].Y)
		for _, p := range shape.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()

		dc.SetColor(shape.Fill)
		dc.FillPreserve()

		// Line width is not affected by the context transform.
		dc.SetColor(shape.Stroke.Color)
		dc.SetLineWidth(shape.Stroke.Width * s.scale)
		dc.Stroke()
	}
}
