// Package driver runs one animation frame at a time: shock update and
// synthesis, compositing into the raster, and capture observation.
package driver

import (
	"time"

	"github.com/sirupsen/logrus"

	"pastelwaves/internal/capture"
	"pastelwaves/internal/raster"
	"pastelwaves/internal/waves"
)

// Driver owns the scene, the drawing surface and the recorder. All methods
// must be called from the single animation loop.
type Driver struct {
	scene    *waves.Scene
	surface  *raster.Surface
	recorder *capture.Recorder
	log      logrus.FieldLogger

	sized  bool
	frames uint64
	last   time.Duration
}

// New wires a driver. The surface starts at 1x1 until the first Resize.
func New(scene *waves.Scene, recorder *capture.Recorder, log logrus.FieldLogger) *Driver {
	return &Driver{
		scene:    scene,
		surface:  raster.NewSurface(1, 1, 1),
		recorder: recorder,
		log:      log,
	}
}

// Resize applies a new logical size and pixel density. Baselines are
// recomputed immediately so the next Step never paints a stale layout.
func (d *Driver) Resize(width, height, scale float64) {
	w, h, s := d.surface.Size()
	if d.sized && w == width && h == height && s == scale {
		return
	}
	d.sized = true
	d.scene.Resize(width, height)
	d.surface.Resize(width, height, scale)
	d.log.WithFields(logrus.Fields{"width": width, "height": height, "scale": scale}).Debug("Surface resized")
}

// Step renders the frame for timestamp now and forwards it to the recorder.
func (d *Driver) Step(now time.Duration) {
	frame := d.scene.Tick(now)
	d.surface.Paint(frame)
	d.recorder.Observe(now, d.surface.Image())
	d.frames++
	d.last = now
}

// Trigger asks the recorder to start a clip of the current surface.
func (d *Driver) Trigger(now time.Duration) error {
	w, h := d.scene.Size()
	return d.recorder.Trigger(now, w, h)
}

// Recording reports whether a clip is in progress.
func (d *Driver) Recording() bool {
	return d.recorder.State() == capture.Recording
}

// Surface exposes the raster painted by the last Step.
func (d *Driver) Surface() *raster.Surface { return d.surface }

// Scene exposes the band registry.
func (d *Driver) Scene() *waves.Scene { return d.scene }

// Recorder exposes the capture state machine.
func (d *Driver) Recorder() *capture.Recorder { return d.recorder }

// Frames is the number of frames rendered so far.
func (d *Driver) Frames() uint64 { return d.frames }

// LastTimestamp is the timestamp of the most recent Step.
func (d *Driver) LastTimestamp() time.Duration { return d.last }
