package main

import (
	"flag"
	"time"
)

// Command-line flags controlling the window, capture and runtime behaviour.
var (
	// configFlag points at an optional TOML file layered over the defaults.
	configFlag = flag.String("config", "", "path to a TOML config file")

	// outputDirFlag overrides where recorded clips are written.
	outputDirFlag = flag.String("output-dir", "", "directory for recorded GIFs (overrides config)")

	seedFlag = flag.Uint("seed", 0, "random seed for band parameters and shocks (0 picks one from the clock)")

	// headlessFlag runs the animation offscreen on a fixed-timestep clock.
	headlessFlag         = flag.Bool("headless", false, "render offscreen without opening a window")
	headlessDurationFlag = flag.Duration("headless-duration", 3*time.Second, "how long the headless clock runs")
	headlessFPSFlag      = flag.Int("headless-fps", defaultHeadlessFPS, "frames per second of the headless clock")

	// captureOnStartFlag starts a recording on the first frame.
	captureOnStartFlag = flag.Bool("capture-on-start", false, "start recording a GIF immediately")

	gifWorkersFlag = flag.Int("gif-workers", 0, "goroutines quantizing GIF frames (0 uses the config value)")

	// enableAudioFlag plays a low thump that follows the active shock pulses.
	enableAudioFlag = flag.Bool("enable-audio", false, "play a low thump while shock pulses are active")

	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this file")

	logLevelFlag = flag.String("log-level", "info", "log level (debug, info, warn, error)")
)
