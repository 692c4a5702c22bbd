package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"pastelwaves/internal/driver"
)

type headlessOptions struct {
	Width, Height  float64
	Duration       time.Duration
	FPS            int
	CaptureOnStart bool
}

// runHeadless drives d from a fixed-timestep clock instead of the display.
// The clock keeps running past Duration while a clip is still recording, and
// returns once every finished clip has reached the sink.
func runHeadless(d *driver.Driver, h *hud, opts headlessOptions, log logrus.FieldLogger) error {
	if opts.FPS <= 0 {
		return fmt.Errorf("headless fps must be positive, got %d", opts.FPS)
	}
	step := time.Second / time.Duration(opts.FPS)
	d.Resize(opts.Width, opts.Height, 1)

	if opts.CaptureOnStart {
		if err := d.Trigger(0); err != nil {
			return fmt.Errorf("starting capture: %w", err)
		}
	}

	start := time.Now()
	for now := time.Duration(0); now <= opts.Duration || d.Recording(); now += step {
		h.tick(now)
		d.Step(now)
	}
	d.Recorder().Wait()

	log.WithFields(logrus.Fields{
		"frames":    d.Frames(),
		"clock":     d.LastTimestamp(),
		"wall_time": time.Since(start).Round(time.Millisecond),
	}).Info("Headless run finished")
	return nil
}
