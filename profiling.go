package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// cpuProfile is an in-progress pprof CPU recording.
type cpuProfile struct {
	file    *os.File
	started time.Time
	log     logrus.FieldLogger
	once    sync.Once
}

// startCPUProfile begins writing a CPU profile to path.
func startCPUProfile(path string, log logrus.FieldLogger) (*cpuProfile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating profile %q: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("starting cpu profile: %w", err)
	}
	p := &cpuProfile{file: f, started: time.Now(), log: log.WithField("path", path)}
	p.log.Info("CPU profiling enabled")
	return p, nil
}

// Stop flushes the profile and closes the file. Later calls do nothing.
func (p *cpuProfile) Stop() {
	p.once.Do(func() {
		pprof.StopCPUProfile()
		entry := p.log.WithField("duration", time.Since(p.started).Round(time.Millisecond))
		if err := p.file.Sync(); err != nil {
			entry.WithError(err).Error("Flushing CPU profile failed")
		}
		if err := p.file.Close(); err != nil {
			entry.WithError(err).Error("Closing CPU profile failed")
			return
		}
		entry.Info("CPU profile written")
	})
}
