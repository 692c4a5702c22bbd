package main

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"pastelwaves/internal/capture"
	"pastelwaves/internal/waves"
)

// Window, overlay and audio constants.
const (
	windowWidth         = 1280
	windowHeight        = 720
	windowTitle         = "Pastel Waves"
	defaultHeadlessFPS  = 60
	alertDuration       = 3 * time.Second
	buttonMargin        = 16
	buttonWidth         = 120
	buttonHeight        = 32
	audioSampleRate     = 48000
	audioBufferDuration = 80 * time.Millisecond
	thumpFrequencyHz    = 55.0
	thumpGain           = 0.35
	pcm16MaxValue       = 32767
)

// fileConfig mirrors the optional TOML file passed with -config. Anything the
// file leaves out keeps its default.
type fileConfig struct {
	Waves   waves.Config  `toml:"waves"`
	Capture captureConfig `toml:"capture"`
}

type captureConfig struct {
	Duration  waves.Duration `toml:"duration"`
	FrameRate float64        `toml:"frame_rate"`
	OutputDir string         `toml:"output_dir"`
	Workers   int            `toml:"workers"`
}

func defaultFileConfig() fileConfig {
	opts := capture.DefaultOptions()
	return fileConfig{
		Waves: waves.DefaultConfig(),
		Capture: captureConfig{
			Duration:  waves.Duration{Duration: opts.Duration},
			FrameRate: opts.FrameRate,
			OutputDir: ".",
			Workers:   2,
		},
	}
}

// loadConfig decodes path over the defaults. An empty path returns the
// defaults unchanged.
func loadConfig(path string, log logrus.FieldLogger) (fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("reading config %q: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.WithField("key", key.String()).Warn("Unknown config key ignored")
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func (c fileConfig) validate() error {
	if err := c.Waves.Validate(); err != nil {
		return err
	}
	switch {
	case c.Capture.Duration.Duration <= 0:
		return fmt.Errorf("capture duration must be positive, got %s", c.Capture.Duration.Duration)
	case c.Capture.FrameRate <= 0:
		return fmt.Errorf("capture frame_rate must be positive, got %g", c.Capture.FrameRate)
	case c.Capture.Workers < 1:
		return fmt.Errorf("capture workers must be at least 1, got %d", c.Capture.Workers)
	}
	return nil
}

// recorderOptions applies the file settings to the default recorder options.
func (c captureConfig) recorderOptions() capture.Options {
	opts := capture.DefaultOptions()
	opts.Duration = c.Duration.Duration
	opts.FrameRate = c.FrameRate
	return opts
}
