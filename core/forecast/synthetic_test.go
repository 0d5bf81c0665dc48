package forecast

import (
	"math"
	"testing"
)

func TestSyntheticSolarCurve(t *testing.T) {
	s := NewSynthetic(SyntheticConfig{})
	solar := s.Solar(24)
	if len(solar) != 24 {
		t.Fatalf("length %d", len(solar))
	}
	for _, h := range []int{0, 5, 18, 23} {
		if solar[h] != 0 {
			t.Fatalf("hour %d should be dark: %v", h, solar[h])
		}
	}
	if math.Abs(solar[12]-240) > 1e-9 {
		t.Fatalf("noon peak: %v", solar[12])
	}
	if solar[9] <= 0 || solar[9] >= solar[12] {
		t.Fatalf("morning ramp: %v", solar[9])
	}
}

func TestSyntheticLoadBands(t *testing.T) {
	s := NewSynthetic(SyntheticConfig{BaseLoadKW: 60, PeakLoadKW: 230})
	load := s.Load(24)
	if load[2] != 60 {
		t.Fatalf("overnight base: %v", load[2])
	}
	if load[19] != 230 {
		t.Fatalf("evening peak: %v", load[19])
	}
	if load[12] <= load[2] || load[12] >= load[19] {
		t.Fatalf("daytime band: %v", load[12])
	}
	if load[7] <= load[2] || load[7] >= load[12] {
		t.Fatalf("morning band: %v", load[7])
	}
}

func TestSyntheticStartHourShiftsCurves(t *testing.T) {
	s := NewSynthetic(SyntheticConfig{StartHour: 12})
	solar := s.Solar(2)
	if math.Abs(solar[0]-240) > 1e-9 {
		t.Fatalf("first entry should be the noon value: %v", solar[0])
	}
}

func TestSyntheticDeterministicPerSeed(t *testing.T) {
	cfg := SyntheticConfig{JitterPct: 0.1, Seed: 7}
	a := NewSynthetic(cfg).Solar(24)
	b := NewSynthetic(cfg).Solar(24)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed must repeat at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSyntheticJitterBounded(t *testing.T) {
	cfg := SyntheticConfig{JitterPct: 0.1, Seed: 3}
	jittered := NewSynthetic(cfg).Load(48)
	clean := NewSynthetic(SyntheticConfig{}).Load(48)
	for i := range jittered {
		lo, hi := clean[i]*0.9, clean[i]*1.1
		if jittered[i] < lo-1e-9 || jittered[i] > hi+1e-9 {
			t.Fatalf("jitter out of bounds at %d: %v not in [%v,%v]", i, jittered[i], lo, hi)
		}
	}
}
