package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"pastelwaves/internal/capture"
	"pastelwaves/internal/driver"
	"pastelwaves/internal/waves"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "waves.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("", quietLogger())
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Waves.WaveCount != 10 {
		t.Errorf("Expected 10 bands, got %d", cfg.Waves.WaveCount)
	}
	if opts := cfg.Capture.recorderOptions(); opts.Duration != 2500*time.Millisecond || opts.FrameRate != 20 {
		t.Errorf("Unexpected capture defaults %+v", opts)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := writeConfig(t, `
[waves]
wave_count = 4
shock_duration = "900ms"

[capture]
duration = "1s"
output_dir = "clips"
`)
	cfg, err := loadConfig(path, quietLogger())
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Waves.WaveCount != 4 {
		t.Errorf("Expected 4 bands, got %d", cfg.Waves.WaveCount)
	}
	if cfg.Waves.ShockDuration.Duration != 900*time.Millisecond {
		t.Errorf("Expected 900ms shocks, got %s", cfg.Waves.ShockDuration.Duration)
	}
	if cfg.Capture.Duration.Duration != time.Second || cfg.Capture.OutputDir != "clips" {
		t.Errorf("Unexpected capture config %+v", cfg.Capture)
	}
	if cfg.Capture.FrameRate != 20 {
		t.Errorf("Expected the default frame rate to survive, got %g", cfg.Capture.FrameRate)
	}
	if len(cfg.Waves.Palette) != len(waves.DefaultPalette) {
		t.Errorf("Expected the default palette to survive, got %v", cfg.Waves.Palette)
	}
}

func TestLoadConfig_Rejects(t *testing.T) {
	cases := map[string]string{
		"bad toml":      "[waves\n",
		"zero bands":    "[waves]\nwave_count = 0\n",
		"bad colour":    "[waves]\nstroke_color = \"nope\"\n",
		"zero workers":  "[capture]\nworkers = 0\n",
		"negative rate": "[capture]\nframe_rate = -1.0\n",
		"bad duration":  "[capture]\nduration = \"soon\"\n",
		"missing file":  "",
		"zero duration": "[capture]\nduration = \"0s\"\n",
	}
	for name, body := range cases {
		path := filepath.Join(t.TempDir(), "absent.toml")
		if body != "" {
			path = writeConfig(t, body)
		}
		if _, err := loadConfig(path, quietLogger()); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestHUD_AlertExpires(t *testing.T) {
	h := &hud{log: quietLogger()}
	h.tick(time.Second)
	h.Alert("no encoder")

	if msg, ok := h.activeAlert(); !ok || msg != "no encoder" {
		t.Errorf("Expected the alert to show, got %q %v", msg, ok)
	}
	h.tick(time.Second + alertDuration - time.Millisecond)
	if _, ok := h.activeAlert(); !ok {
		t.Error("Expected the alert to still show")
	}
	h.tick(time.Second + alertDuration)
	if _, ok := h.activeAlert(); ok {
		t.Error("Expected the alert to expire")
	}
}

func TestRunHeadless_CapturesOnStart(t *testing.T) {
	dir := t.TempDir()
	log := quietLogger()
	scene, err := waves.NewScene(waves.DefaultConfig(), waves.NewSeededSource(3))
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	fills, stroke := scene.Swatches()
	h := &hud{log: log}
	rec := capture.NewRecorder(capture.DefaultOptions(),
		capture.NewGIFFactory(capture.BuildPalette(fills, stroke), 2),
		h, capture.FileSink{Dir: dir}, log)
	d := driver.New(scene, rec, log)

	opts := headlessOptions{Width: 120, Height: 80, Duration: time.Second, FPS: 30, CaptureOnStart: true}
	if err := runHeadless(d, h, opts, log); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	if d.LastTimestamp() < 2500*time.Millisecond {
		t.Errorf("Expected the clock to run until the clip finished, stopped at %s", d.LastTimestamp())
	}
	if rec.Finalized() != 1 {
		t.Errorf("Expected one finalize, got %d", rec.Finalized())
	}
	if _, err := os.Stat(filepath.Join(dir, capture.GIFName)); err != nil {
		t.Errorf("Expected %s to be written: %v", capture.GIFName, err)
	}
	if h.status != "Record GIF" {
		t.Errorf("Expected the idle status after the clip, got %q", h.status)
	}
}

func TestRunHeadless_RejectsFPS(t *testing.T) {
	scene, err := waves.NewScene(waves.DefaultConfig(), waves.NewSeededSource(1))
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	log := quietLogger()
	h := &hud{log: log}
	d := driver.New(scene, capture.NewRecorder(capture.DefaultOptions(), nil, h, capture.FileSink{Dir: t.TempDir()}, log), log)
	if err := runHeadless(d, h, headlessOptions{Width: 10, Height: 10, FPS: 0}, log); err == nil {
		t.Error("Expected an error for zero fps")
	}
}

func TestShockAudioStream_FollowsLevel(t *testing.T) {
	s := newShockAudioStream()
	buf := make([]byte, 4*audioSampleRate/10)

	if _, err := s.Read(buf); err != nil {
		t.Fatalf("Read: %v", err)
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("Expected silence with no shock, byte %d = %d", i, b)
		}
	}

	s.SetLevel(2)
	n, err := s.Read(buf[:len(buf)-1])
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n%4 != 0 {
		t.Errorf("Expected whole stereo frames, got %d bytes", n)
	}
	var peak int16
	for i := 0; i+3 < n; i += 4 {
		l := int16(uint16(buf[i]) | uint16(buf[i+1])<<8)
		r := int16(uint16(buf[i+2]) | uint16(buf[i+3])<<8)
		if l != r {
			t.Fatalf("frame %d: channels differ (%d vs %d)", i/4, l, r)
		}
		if l > peak {
			peak = l
		}
	}
	if peak == 0 || float64(peak) > thumpGain*pcm16MaxValue+1 {
		t.Errorf("Expected a bounded non-zero thump, peak %d", peak)
	}
}

func TestCPUProfile_WritesOnStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu.pprof")
	p, err := startCPUProfile(path, quietLogger())
	if err != nil {
		t.Fatalf("startCPUProfile: %v", err)
	}
	p.Stop()
	p.Stop()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected a non-empty profile")
	}
}

func TestCPUProfile_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "cpu.pprof")
	if _, err := startCPUProfile(path, quietLogger()); err == nil {
		t.Error("Expected an error for a missing directory")
	}
}
