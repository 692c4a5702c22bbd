package main

import (
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/sirupsen/logrus"
)

// shockAudioStream is an endless stereo 16-bit stream carrying a low sine
// whose loudness follows the strongest active shock pulse.
type shockAudioStream struct {
	mu    sync.Mutex
	level float64

	// Only touched by the audio goroutine.
	gain  float64
	phase float64
}

func newShockAudioStream() *shockAudioStream {
	return &shockAudioStream{}
}

// SetLevel sets the target loudness in [0, 1].
func (s *shockAudioStream) SetLevel(v float64) {
	if v > 1 {
		v = 1
	} else if v < 0 {
		v = 0
	}
	s.mu.Lock()
	s.level = v
	s.mu.Unlock()
}

func (s *shockAudioStream) Read(p []byte) (int, error) {
	// Whole stereo frames only (4 bytes per frame).
	frameBytes := len(p) - len(p)%4
	if frameBytes == 0 {
		return 0, nil
	}
	s.mu.Lock()
	target := s.level
	s.mu.Unlock()

	const step = 2 * math.Pi * thumpFrequencyHz / audioSampleRate
	// Per-sample smoothing keeps level changes from clicking.
	const smoothing = 0.002
	for i := 0; i < frameBytes; i += 4 {
		s.gain += (target - s.gain) * smoothing
		v := int16(math.Sin(s.phase) * s.gain * thumpGain * pcm16MaxValue)
		s.phase += step
		if s.phase >= 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}
	return frameBytes, nil
}

func (s *shockAudioStream) Close() error {
	return nil
}

// startShockAudio opens the audio device and starts playing the thump stream.
// Failures are logged and leave the game silent.
func (g *Game) startShockAudio() {
	ctx := audio.NewContext(audioSampleRate)
	stream := newShockAudioStream()
	player, err := ctx.NewPlayer(stream)
	if err != nil {
		g.log.WithError(err).Error("Audio player creation failed")
		return
	}
	player.SetBufferSize(audioBufferDuration)
	player.Play()
	g.audioStream = stream
	g.audioPlayer = player
	g.log.WithFields(logrus.Fields{"rate": audioSampleRate, "hz": thumpFrequencyHz}).Info("Shock audio enabled")
}
