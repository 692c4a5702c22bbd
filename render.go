package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	buttonIdleColor      = color.NRGBA{R: 0x26, G: 0x35, B: 0x47, A: 0xb0}
	buttonRecordingColor = color.NRGBA{R: 0xc0, G: 0x39, B: 0x2b, A: 0xd0}
	alertColor           = color.NRGBA{R: 0x26, G: 0x35, B: 0x47, A: 0xe0}
)

// Draw copies the painted raster to the screen and overlays the record button
// and any pending alert.
func (g *Game) Draw(screen *ebiten.Image) {
	img := g.driver.Surface().Image()
	b := img.Bounds()
	if b.Dx() == g.screenW && b.Dy() == g.screenH {
		screen.WritePixels(img.Pix)
	}

	g.drawButton(screen)
	if msg, ok := g.hud.activeAlert(); ok {
		g.drawAlert(screen, msg)
	}
}

func (g *Game) drawButton(screen *ebiten.Image) {
	r := g.buttonRect()
	fill := buttonIdleColor
	if g.driver.Recording() {
		fill = buttonRecordingColor
	}
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), fill, true)
	ebitenutil.DebugPrintAt(screen, g.hud.status, r.Min.X+int(8*g.scale), r.Min.Y+(r.Dy()-16)/2)
}

// drawAlert renders a banner across the top centre of the screen.
func (g *Game) drawAlert(screen *ebiten.Image, msg string) {
	const charWidth, lineHeight = 6, 16
	pad := int(8 * g.scale)
	w := len(msg)*charWidth + 2*pad
	h := lineHeight + 2*pad
	x := (g.screenW - w) / 2
	y := int(buttonMargin*g.scale) + int(buttonHeight*g.scale) + pad
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), alertColor, true)
	ebitenutil.DebugPrintAt(screen, msg, x+pad, y+pad)
}
