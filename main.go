package main

import (
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"pastelwaves/internal/capture"
	"pastelwaves/internal/driver"
	"pastelwaves/internal/waves"
)

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.WithError(err).Warn("Unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

func main() {
	flag.Parse()
	log := newLogger(*logLevelFlag)

	if *cpuProfileFlag != "" {
		profile, err := startCPUProfile(*cpuProfileFlag, log)
		if err != nil {
			log.Fatalf("CPU profiling failed: %v", err)
		}
		defer profile.Stop()
	}

	cfg, err := loadConfig(*configFlag, log)
	if err != nil {
		log.Fatalf("Loading config failed: %v", err)
	}
	if *outputDirFlag != "" {
		cfg.Capture.OutputDir = *outputDirFlag
	}
	if *gifWorkersFlag > 0 {
		cfg.Capture.Workers = *gifWorkersFlag
	}

	seed := uint32(*seedFlag)
	if seed == 0 {
		seed = uint32(time.Now().UnixNano())
	}
	scene, err := waves.NewScene(cfg.Waves, waves.NewSeededSource(seed))
	if err != nil {
		log.Fatalf("Scene setup failed: %v", err)
	}
	log.WithFields(logrus.Fields{"seed": seed, "bands": len(scene.Bands())}).Info("Scene ready")

	fills, stroke := scene.Swatches()
	factory := capture.NewGIFFactory(capture.BuildPalette(fills, stroke), cfg.Capture.Workers)
	notifier := &hud{log: log.WithField("component", "hud")}
	recorder := capture.NewRecorder(
		cfg.Capture.recorderOptions(),
		factory,
		notifier,
		capture.FileSink{Dir: cfg.Capture.OutputDir},
		log.WithField("component", "capture"),
	)
	d := driver.New(scene, recorder, log.WithField("component", "driver"))

	if *headlessFlag {
		opts := headlessOptions{
			Width:          windowWidth,
			Height:         windowHeight,
			Duration:       *headlessDurationFlag,
			FPS:            *headlessFPSFlag,
			CaptureOnStart: *captureOnStartFlag,
		}
		if err := runHeadless(d, notifier, opts, log); err != nil {
			log.Fatalf("Headless run failed: %v", err)
		}
		return
	}

	g := newGame(d, notifier, log)
	if *enableAudioFlag {
		g.startShockAudio()
	}
	if *captureOnStartFlag {
		g.pendingTrigger = true
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("Game loop failed: %v", err)
	}
	recorder.Wait()
}
