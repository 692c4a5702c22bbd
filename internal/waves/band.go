package waves

import (
	"image/color"
	"math"
	"time"
)

// Band is one wavy horizontal stripe. Shape parameters are fixed at creation;
// BaselineY follows the surface height and the shock fields change every frame.
type Band struct {
	Color     color.NRGBA
	BaselineY float64
	Amplitude float64
	Frequency float64
	Phase     float64

	ShockActive   bool
	ShockStart    time.Duration
	ShockDuration time.Duration
}

// Initialize creates count bands. Colours cycle through palette, amplitude,
// frequency and phase are drawn from rng within the configured ranges.
// BaselineY stays zero until Relayout runs.
func Initialize(count int, palette []color.NRGBA, cfg Config, rng Source) []Band {
	bands := make([]Band, count)
	for i := range bands {
		bands[i] = Band{
			Color:         palette[i%len(palette)],
			Amplitude:     uniform(rng, cfg.AmplitudeMin, cfg.AmplitudeMax),
			Frequency:     uniform(rng, cfg.FrequencyMin, cfg.FrequencyMax),
			Phase:         uniform(rng, 0, 2*math.Pi),
			ShockDuration: cfg.ShockDuration.Duration,
		}
	}
	return bands
}

// Relayout spreads the baselines evenly over surfaceHeight, index 0 on top.
func Relayout(bands []Band, surfaceHeight float64) {
	spacing := surfaceHeight / float64(len(bands)+1)
	for i := range bands {
		bands[i].BaselineY = spacing * float64(i+1)
	}
}

// AdvanceShock runs one frame of the shock state machine at timestamp now and
// returns the pulse intensity in [0, 1].
//
// An idle band consumes exactly one draw from rng and starts a pulse when the
// draw is below probability. The chance is per call, so the trigger rate
// follows the frame rate. A pulse ends once now reaches
// ShockStart+ShockDuration; a new one cannot start while it runs.
func (b *Band) AdvanceShock(now time.Duration, rng Source, probability float64) float64 {
	if !b.ShockActive && rng.Float64() < probability {
		b.ShockActive = true
		b.ShockStart = now
	}
	if !b.ShockActive {
		return 0
	}
	progress := b.shockProgress(now)
	if progress >= 1 {
		b.ShockActive = false
		return 0
	}
	return ShockEnvelope(progress)
}

// Intensity reports the pulse intensity at now without mutating the band.
func (b *Band) Intensity(now time.Duration) float64 {
	if !b.ShockActive {
		return 0
	}
	progress := b.shockProgress(now)
	if progress >= 1 {
		return 0
	}
	return ShockEnvelope(progress)
}

func (b *Band) shockProgress(now time.Duration) float64 {
	if b.ShockDuration <= 0 {
		return 1
	}
	return float64(now-b.ShockStart) / float64(b.ShockDuration)
}

// ShockEnvelope is the half-sine pulse shape: 0 at the ends, 1 at progress 0.5.
func ShockEnvelope(progress float64) float64 {
	if progress <= 0 || progress >= 1 {
		return 0
	}
	return math.Sin(progress * math.Pi)
}

// params extracts the synthesis inputs of the band.
func (b *Band) params() WaveParams {
	return WaveParams{
		BaselineY: b.BaselineY,
		Amplitude: b.Amplitude,
		Frequency: b.Frequency,
		Phase:     b.Phase,
	}
}
