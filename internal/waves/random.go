package waves

// Source supplies uniformly distributed values in [0, 1). *math/rand.Rand
// satisfies it.
type Source interface {
	Float64() float64
}

// SeededSource is a Mulberry32 generator. It produces the same sequence for
// the same seed, which makes scenes reproducible in tests and headless runs.
type SeededSource struct {
	state uint32
}

// NewSeededSource returns a generator starting at seed.
func NewSeededSource(seed uint32) *SeededSource {
	return &SeededSource{state: seed}
}

// Float64 returns the next value in [0, 1).
func (s *SeededSource) Float64() float64 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// uniform maps the next draw of rng onto [lo, hi).
func uniform(rng Source, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

