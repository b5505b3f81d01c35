package force

import (
	"testing"
	"time"

	"milsim.dev/internal/sim/catalogs"
	"milsim.dev/internal/sim/tuning"
)

func testClock() Clock {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func newTestRegistry(t *testing.T, rng Rand) *Registry {
	t.Helper()
	cats, err := catalogs.Load("../../../configs")
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	return New(Config{Rand: rng, Now: testClock()}, cats, tuning.Defaults())
}

// scriptRand replays fixed draws so stepper branches can be pinned. An
// exhausted script yields draws that miss every probability gate.
type scriptRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *scriptRand) Float64() float64 {
	if s.fi >= len(s.floats) {
		return 0.999999
	}
	v := s.floats[s.fi]
	s.fi++
	return v
}

func (s *scriptRand) Intn(n int) int {
	if s.ii >= len(s.ints) {
		return 0
	}
	v := s.ints[s.ii]
	s.ii++
	if v >= n {
		v = n - 1
	}
	return v
}
