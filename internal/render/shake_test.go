package render

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestShakeDecaysToExactZero(t *testing.T) {
	cases := []struct {
		name      string
		intensity float64
		duration  float64
		steps     []float64
	}{
		{"player hit", 8, 350, []float64{16, 16, 100, 250}},
		{"huge", 1e6, 50, []float64{49.9, 0.2}},
		{"exact end", 3, 100, []float64{50, 50}},
		{"single long tick", 20, 10, []float64{1000}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewShake(rand.New(rand.NewPCG(1, 2)))
			s.Apply(tc.intensity, tc.duration)
			if !s.Active() {
				t.Fatalf("Shake should be active after Apply")
			}

			elapsed := 0.0
			for _, dt := range tc.steps {
				s.Update(dt)
				elapsed += dt
				x, y := s.Offset()
				amp := tc.intensity * math.Max(0, tc.duration-elapsed) / tc.duration
				if math.Abs(x) > amp || math.Abs(y) > amp {
					t.Errorf("Offset (%v, %v) exceeds amplitude %v", x, y, amp)
				}
			}

			x, y := s.Offset()
			if x != 0 || y != 0 {
				t.Errorf("Offset = (%v, %v) after timer ran out, want exactly 0", x, y)
			}
			if s.Active() {
				t.Errorf("Shake still active")
			}
		})
	}
}

func TestShakeIdleAndStop(t *testing.T) {
	s := NewShake(nil)
	s.Update(16)
	if x, y := s.Offset(); x != 0 || y != 0 {
		t.Errorf("Idle shake moved: (%v, %v)", x, y)
	}

	s.Apply(8, 350)
	s.Update(16)
	s.Stop()
	if x, y := s.Offset(); x != 0 || y != 0 || s.Active() {
		t.Errorf("Stop did not reset the shake")
	}

	s.Apply(8, 0)
	if s.Active() {
		t.Errorf("Zero duration should not start a shake")
	}
}
