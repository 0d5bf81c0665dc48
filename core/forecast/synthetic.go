package forecast

import (
	"math"
	"math/rand"
)

// SyntheticConfig shapes the synthetic forecast curves.
type SyntheticConfig struct {
	// SolarPeakKW is the midday generation peak.
	SolarPeakKW float64 `json:"solar_peak_kw"`
	// BaseLoadKW is the overnight load floor.
	BaseLoadKW float64 `json:"base_load_kw"`
	// PeakLoadKW is the evening load peak.
	PeakLoadKW float64 `json:"peak_load_kw"`
	// StartHour is the hour of day of the first forecast entry.
	StartHour int `json:"start_hour"`
	// JitterPct adds bounded random variation to every sample. Zero keeps
	// the curves fully deterministic.
	JitterPct float64 `json:"jitter_pct"`
	Seed      int64   `json:"seed"`
}

// SetDefaults applies fallback values for optional fields.
func (c *SyntheticConfig) SetDefaults() {
	if c.SolarPeakKW == 0 {
		c.SolarPeakKW = 240
	}
	if c.BaseLoadKW == 0 {
		c.BaseLoadKW = 60
	}
	if c.PeakLoadKW == 0 {
		c.PeakLoadKW = 230
	}
}

// Synthetic produces repeatable solar and load curves: generation follows a
// half-sine between 06:00 and 18:00, load sits at the base overnight and
// peaks in the evening window.
type Synthetic struct {
	cfg  SyntheticConfig
	rand *rand.Rand
}

// NewSynthetic creates a Synthetic source seeded from the configuration.
func NewSynthetic(cfg SyntheticConfig) *Synthetic {
	cfg.SetDefaults()
	return &Synthetic{cfg: cfg, rand: rand.New(rand.NewSource(cfg.Seed))}
}

// Solar implements Source.
func (s *Synthetic) Solar(n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		hod := (s.cfg.StartHour + i) % 24
		if hod >= 6 && hod < 18 {
			// Half-sine over the daylight window, peaking at noon.
			out[i] = s.cfg.SolarPeakKW * math.Sin(math.Pi*float64(hod-6)/12)
		}
		out[i] = s.jitter(out[i])
	}
	return out
}

// Load implements Source.
func (s *Synthetic) Load(n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		hod := (s.cfg.StartHour + i) % 24
		load := s.cfg.BaseLoadKW
		switch {
		case hod >= 18 && hod < 22:
			load = s.cfg.PeakLoadKW
		case hod >= 8 && hod < 18:
			load = s.cfg.BaseLoadKW + (s.cfg.PeakLoadKW-s.cfg.BaseLoadKW)*0.6
		case hod >= 6 && hod < 8:
			load = s.cfg.BaseLoadKW + (s.cfg.PeakLoadKW-s.cfg.BaseLoadKW)*0.3
		}
		out[i] = s.jitter(load)
	}
	return out
}

func (s *Synthetic) jitter(v float64) float64 {
	if s.cfg.JitterPct <= 0 || v == 0 {
		return v
	}
	f := 1 + s.cfg.JitterPct*(2*s.rand.Float64()-1)
	out := v * f
	if out < 0 {
		return 0
	}
	return out
}
