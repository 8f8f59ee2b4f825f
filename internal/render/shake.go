package render

import "math/rand/v2"

// Shake is a decaying random camera offset. The amplitude falls linearly
// from the intensity to zero over the duration.
type Shake struct {
	rng       *rand.Rand
	intensity float64
	duration  float64
	remaining float64
	x, y      float64
}

// NewShake creates an idle shake. rng may be nil for a time-seeded source.
func NewShake(rng *rand.Rand) *Shake {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Shake{rng: rng}
}

// Apply starts a new shake, replacing any running one.
func (s *Shake) Apply(intensity float64, durationMs float64) {
	if durationMs <= 0 {
		s.Stop()
		return
	}
	s.intensity = intensity
	s.duration = durationMs
	s.remaining = durationMs
}

// Update advances the timer and picks the next offset.
func (s *Shake) Update(dtMs float64) {
	if s.remaining <= 0 {
		s.x, s.y = 0, 0
		return
	}
	s.remaining -= dtMs
	if s.remaining <= 0 {
		s.Stop()
		return
	}
	amp := s.intensity * s.remaining / s.duration
	s.x = (s.rng.Float64()*2 - 1) * amp
	s.y = (s.rng.Float64()*2 - 1) * amp
}

// Stop ends the shake immediately.
func (s *Shake) Stop() {
	s.remaining = 0
	s.x, s.y = 0, 0
}

// Offset returns the current offset in pixels.
func (s *Shake) Offset() (float64, float64) { return s.x, s.y }

// Active reports whether the shake still has time left.
func (s *Shake) Active() bool { return s.remaining > 0 }
