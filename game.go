package main

import (
	"errors"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"pastelwaves/internal/capture"
	"pastelwaves/internal/driver"
	"pastelwaves/internal/raster"
)

// Game adapts the animation driver to ebiten's loop. Ebiten calls Layout
// before every Update, so a resize always lands before the next frame is
// painted.
type Game struct {
	driver *driver.Driver
	hud    *hud
	log    logrus.FieldLogger

	start time.Time
	now   time.Duration

	scale            float64
	screenW, screenH int

	// pendingTrigger starts a clip on the next Update, after the first Layout.
	pendingTrigger bool

	audioStream *shockAudioStream
	audioPlayer *audio.Player
}

// newGame wires a Game around d. The animation clock starts now.
func newGame(d *driver.Driver, h *hud, log logrus.FieldLogger) *Game {
	return &Game{
		driver: d,
		hud:    h,
		log:    log,
		start:  time.Now(),
		scale:  1,
	}
}

// Update advances the clock, handles the record trigger and renders the frame
// for the new timestamp.
func (g *Game) Update() error {
	g.now = time.Since(g.start)
	g.hud.tick(g.now)

	if g.triggerPressed() {
		if err := g.driver.Trigger(g.now); err != nil && !errors.Is(err, capture.ErrAlreadyRecording) {
			g.log.WithError(err).Warn("Capture not started")
		}
	}

	g.driver.Step(g.now)
	if g.audioStream != nil {
		g.audioStream.SetLevel(g.driver.Scene().ShockLevel())
	}
	return nil
}

// triggerPressed reports a click on the record button, a press of R or a
// trigger queued from the command line.
func (g *Game) triggerPressed() bool {
	if g.pendingTrigger {
		g.pendingTrigger = false
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return true
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	x, y := ebiten.CursorPosition()
	return image.Pt(x, y).In(g.buttonRect())
}

// buttonRect is the record button in screen pixels, anchored top-left.
func (g *Game) buttonRect() image.Rectangle {
	x0 := int(buttonMargin * g.scale)
	y0 := int(buttonMargin * g.scale)
	return image.Rect(x0, y0, x0+int(buttonWidth*g.scale), y0+int(buttonHeight*g.scale))
}

// Layout resizes the drawing surface to the window and returns a screen in
// device pixels so the raster is copied without resampling.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	if scale <= 0 {
		scale = 1
	}
	g.scale = scale
	w, h := float64(outsideWidth), float64(outsideHeight)
	g.driver.Resize(w, h, scale)
	g.screenW, g.screenH = raster.DeviceSize(w, h, scale)
	return g.screenW, g.screenH
}

// hud is the capture feedback surface: the record button label and a
// transient alert banner.
type hud struct {
	log logrus.FieldLogger

	now        time.Duration
	status     string
	alert      string
	alertUntil time.Duration
}

func (h *hud) tick(now time.Duration) { h.now = now }

// SetStatus updates the record button label.
func (h *hud) SetStatus(text string) {
	h.status = text
	h.log.WithField("status", text).Debug("Status changed")
}

// Alert shows message for alertDuration.
func (h *hud) Alert(message string) {
	h.alert = message
	h.alertUntil = h.now + alertDuration
	h.log.Warn(message)
}

// activeAlert returns the alert text while it is still due to be shown.
func (h *hud) activeAlert() (string, bool) {
	if h.alert == "" || h.now >= h.alertUntil {
		return "", false
	}
	return h.alert, true
}
