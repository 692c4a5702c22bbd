package waves

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

// constSource always returns the same draw; 0 forces a shock, 1 suppresses it.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

// countingSource wraps a Source and counts draws.
type countingSource struct {
	Source
	draws int
}

func (c *countingSource) Float64() float64 {
	c.draws++
	return c.Source.Float64()
}

func seededBands(t *testing.T) []Band {
	t.Helper()
	palette, err := ParsePalette(DefaultPalette)
	if err != nil {
		t.Fatalf("ParsePalette: %v", err)
	}
	return Initialize(25, palette, DefaultConfig(), rand.New(rand.NewSource(7)))
}

func TestInitialize_RangesAndColours(t *testing.T) {
	bands := seededBands(t)
	palette, _ := ParsePalette(DefaultPalette)

	if len(bands) != 25 {
		t.Fatalf("Expected 25 bands, got %d", len(bands))
	}
	for i, b := range bands {
		if b.Color != palette[i%len(palette)] {
			t.Errorf("band %d: expected colour %v, got %v", i, palette[i%len(palette)], b.Color)
		}
		if b.Amplitude < 40 || b.Amplitude >= 65 {
			t.Errorf("band %d: amplitude %f outside [40, 65)", i, b.Amplitude)
		}
		if b.Frequency < 0.040 || b.Frequency >= 0.042 {
			t.Errorf("band %d: frequency %f outside [0.040, 0.042)", i, b.Frequency)
		}
		if b.Phase < 0 || b.Phase >= 2*math.Pi {
			t.Errorf("band %d: phase %f outside [0, 2pi)", i, b.Phase)
		}
		if b.ShockActive {
			t.Errorf("band %d: expected no shock at creation", i)
		}
		if b.ShockDuration != 1100*time.Millisecond {
			t.Errorf("band %d: expected shock duration 1100ms, got %s", i, b.ShockDuration)
		}
	}
}

func TestInitialize_SeededSourceIsReproducible(t *testing.T) {
	palette, _ := ParsePalette(DefaultPalette)
	a := Initialize(10, palette, DefaultConfig(), NewSeededSource(42))
	b := Initialize(10, palette, DefaultConfig(), NewSeededSource(42))
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("band %d differs between identical seeds: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestInitialize_ExactValuesFromSource(t *testing.T) {
	palette, _ := ParsePalette(DefaultPalette)
	bands := Initialize(1, palette, DefaultConfig(), constSource(0.5))
	b := bands[0]
	if b.Amplitude != 52.5 {
		t.Errorf("Expected amplitude 52.5, got %f", b.Amplitude)
	}
	if math.Abs(b.Frequency-0.041) > 1e-12 {
		t.Errorf("Expected frequency 0.041, got %f", b.Frequency)
	}
	if math.Abs(b.Phase-math.Pi) > 1e-12 {
		t.Errorf("Expected phase pi, got %f", b.Phase)
	}
}

func TestRelayout_TenBandsOn900(t *testing.T) {
	palette, _ := ParsePalette(DefaultPalette)
	bands := Initialize(10, palette, DefaultConfig(), NewSeededSource(1))
	Relayout(bands, 900)

	prev := 0.0
	for i, b := range bands {
		expected := 900.0 / 11 * float64(i+1)
		if math.Abs(b.BaselineY-expected) > 1e-9 {
			t.Errorf("band %d: expected baseline %f, got %f", i, expected, b.BaselineY)
		}
		if b.BaselineY <= prev {
			t.Errorf("band %d: baseline %f not above previous %f", i, b.BaselineY, prev)
		}
		if b.BaselineY <= 0 || b.BaselineY >= 900 {
			t.Errorf("band %d: baseline %f outside (0, 900)", i, b.BaselineY)
		}
		prev = b.BaselineY
	}
}

func TestRelayout_FollowsLatestHeight(t *testing.T) {
	bands := seededBands(t)
	for _, height := range []float64{900, 300, 1440} {
		Relayout(bands, height)
		for i, b := range bands {
			expected := height / float64(len(bands)+1) * float64(i+1)
			if math.Abs(b.BaselineY-expected) > 1e-9 {
				t.Errorf("height %f band %d: expected %f, got %f", height, i, expected, b.BaselineY)
			}
		}
	}
}

func TestAdvanceShock_PulseLifetime(t *testing.T) {
	b := Band{ShockDuration: 1100 * time.Millisecond}
	t0 := 5 * time.Second

	if got := b.AdvanceShock(t0, constSource(0), 0.029); got != 0 {
		t.Errorf("Expected zero intensity on the trigger frame, got %f", got)
	}
	if !b.ShockActive || b.ShockStart != t0 {
		t.Fatalf("Expected active shock started at %s, got active=%v start=%s", t0, b.ShockActive, b.ShockStart)
	}

	peak := b.AdvanceShock(t0+550*time.Millisecond, constSource(0), 0.029)
	if math.Abs(peak-1) > 1e-9 {
		t.Errorf("Expected peak intensity 1 at half duration, got %f", peak)
	}
	if b.ShockStart != t0 {
		t.Errorf("Active shock was re-triggered: start moved to %s", b.ShockStart)
	}

	if got := b.AdvanceShock(t0+1099*time.Millisecond, constSource(1), 0.029); got <= 0 || !b.ShockActive {
		t.Errorf("Expected shock still active just before duration, intensity %f active %v", got, b.ShockActive)
	}

	if got := b.AdvanceShock(t0+1100*time.Millisecond, constSource(1), 0.029); got != 0 || b.ShockActive {
		t.Errorf("Expected shock to end exactly at duration, intensity %f active %v", got, b.ShockActive)
	}
}

func TestAdvanceShock_DrawsOnlyWhenIdle(t *testing.T) {
	src := &countingSource{Source: constSource(0)}
	b := Band{ShockDuration: time.Second}

	b.AdvanceShock(0, src, 0.5)
	b.AdvanceShock(100*time.Millisecond, src, 0.5)
	b.AdvanceShock(200*time.Millisecond, src, 0.5)

	if src.draws != 1 {
		t.Errorf("Expected a single draw while the pulse runs, got %d", src.draws)
	}
}

func TestAdvanceShock_IntensityBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	b := Band{ShockDuration: 1100 * time.Millisecond}
	frame := time.Second / 60
	for i := 0; i < 5000; i++ {
		now := time.Duration(i) * frame
		got := b.AdvanceShock(now, rng, 0.029)
		if got < 0 || got > 1 {
			t.Fatalf("frame %d: intensity %f outside [0, 1]", i, got)
		}
		if !b.ShockActive && got != 0 {
			t.Fatalf("frame %d: idle band reported intensity %f", i, got)
		}
		if b.Intensity(now) != got {
			t.Fatalf("frame %d: Intensity %f disagrees with AdvanceShock %f", i, b.Intensity(now), got)
		}
	}
}

func TestShockEnvelope(t *testing.T) {
	cases := []struct {
		progress float64
		want     float64
	}{
		{-0.1, 0},
		{0, 0},
		{0.5, 1},
		{1, 0},
		{1.5, 0},
		{1.0 / 6, 0.5},
	}
	for _, c := range cases {
		if got := ShockEnvelope(c.progress); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("ShockEnvelope(%f) = %f, want %f", c.progress, got, c.want)
		}
	}
}
